package auth

import (
	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/routing"
)

type Reason string

const (
	ReasonNone                       Reason = ""
	ReasonAuthenticatedOnPublic      Reason = "authenticated_on_public"
	ReasonUnauthenticatedOnProtected Reason = "unauthenticated_on_protected"
)

// Decision is the gate's verdict for one request. The zero value allows it.
type Decision struct {
	Redirect bool
	Location string
	App      apps.App
	Locale   routing.Locale
	Reason   Reason
}

// Gate decides whether a request may reach its page, must sign in first, or
// is already signed in and should go to its dashboard.
type Gate struct {
	sessions         *Sessions
	table            *routing.Table
	classifier       *routing.Classifier
	activationBypass bool
}

type GateOption func(*Gate)

// WithActivationAllowed stops signed-in users from being redirected away from
// account activation links.
func WithActivationAllowed(allowed bool) GateOption {
	return func(g *Gate) {
		g.activationBypass = allowed
	}
}

func NewGate(sessions *Sessions, table *routing.Table, opts ...GateOption) *Gate {
	g := &Gate{
		sessions:   sessions,
		table:      table,
		classifier: routing.NewClassifier(table),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide checks each application independently and returns the first redirect.
func (g *Gate) Decide(path string, jar CookieJar) Decision {
	for _, app := range apps.All() {
		if d := g.decideFor(app, path, jar); d.Redirect {
			return d
		}
	}
	return Decision{}
}

func (g *Gate) decideFor(app apps.App, path string, jar CookieJar) Decision {
	cl := g.classifier.ClassifyFor(app, path)
	if !cl.Matched() {
		return Decision{}
	}
	_, authenticated := g.sessions.Current(jar, app)

	switch {
	case authenticated && cl.IsPublic:
		if g.activationBypass && g.classifier.IsActivation(app, path) {
			return Decision{}
		}
		return g.redirect(app, cl.Locale, g.table.DashboardRoute(app), ReasonAuthenticatedOnPublic)
	case !authenticated && !cl.IsPublic:
		return g.redirect(app, cl.Locale, g.table.LoginRoute(app), ReasonUnauthenticatedOnProtected)
	}
	return Decision{}
}

func (g *Gate) redirect(app apps.App, locale routing.Locale, route *routing.Route, reason Reason) Decision {
	return Decision{
		Redirect: true,
		Location: route.Paths[locale],
		App:      app,
		Locale:   locale,
		Reason:   reason,
	}
}
