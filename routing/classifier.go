package routing

import "github.com/jrsteele09/go-care-portal/apps"

// Classification tells which application a path belongs to and whether it can
// be reached without a session. App is empty for paths outside both applications.
type Classification struct {
	App      apps.App
	Locale   Locale
	IsPublic bool
}

func (c Classification) Matched() bool {
	return c.App != ""
}

// publicPattern is one (application, locale, pattern) entry of the allow-list.
type publicPattern struct {
	locale     Locale
	template   pathTemplate
	activation bool
}

type appPatterns struct {
	prefixes map[Locale]string
	public   []publicPattern
}

// Classifier maps request paths to applications. It is derived from a Table
// and is read-only afterwards.
type Classifier struct {
	apps map[apps.App]appPatterns
}

func NewClassifier(t *Table) *Classifier {
	c := &Classifier{apps: make(map[apps.App]appPatterns, len(t.prefixes))}
	for app, prefixes := range t.prefixes {
		patterns := appPatterns{prefixes: prefixes}
		for _, route := range t.routes {
			if route.App != app || !route.Public {
				continue
			}
			for _, locale := range Locales() {
				patterns.public = append(patterns.public, publicPattern{
					locale:     locale,
					template:   route.templates[locale],
					activation: route.Activation,
				})
			}
		}
		c.apps[app] = patterns
	}
	return c
}

// Classify checks every application in order and returns the first match.
func (c *Classifier) Classify(path string) Classification {
	for _, app := range apps.All() {
		if cl := c.ClassifyFor(app, path); cl.Matched() {
			return cl
		}
	}
	return Classification{}
}

// ClassifyFor classifies path against a single application. Both the Spanish
// and the English prefix are tested; the one that matched sets Locale.
func (c *Classifier) ClassifyFor(app apps.App, path string) Classification {
	cl, _ := c.classify(app, path)
	return cl
}

// IsActivation reports whether path is an account activation link of app.
func (c *Classifier) IsActivation(app apps.App, path string) bool {
	_, activation := c.classify(app, path)
	return activation
}

func (c *Classifier) classify(app apps.App, path string) (Classification, bool) {
	patterns, ok := c.apps[app]
	if !ok {
		return Classification{}, false
	}

	var (
		locale  Locale
		matched bool
	)
	for _, l := range Locales() {
		if hasSegmentPrefix(path, patterns.prefixes[l]) {
			locale, matched = l, true
			break
		}
	}
	if !matched {
		return Classification{}, false
	}

	segs := splitPath(path)
	for _, p := range patterns.public {
		if p.locale != locale {
			continue
		}
		if _, ok := p.template.matchPrefix(segs); ok {
			return Classification{App: app, Locale: locale, IsPublic: true}, p.activation
		}
	}
	return Classification{App: app, Locale: locale}, false
}
