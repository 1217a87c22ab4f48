package routing

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"gopkg.in/yaml.v3"
)

//go:embed routes.yaml
var defaultRoutes []byte

type Role string

const (
	RoleNone      Role = ""
	RoleLogin     Role = "login"
	RoleDashboard Role = "dashboard"
)

// Route is one abstract page and its concrete path in every locale.
type Route struct {
	Key        Key
	App        apps.App // empty for pages outside both applications
	Public     bool
	Role       Role
	Activation bool
	Paths      map[Locale]string
	Titles     map[Locale]string

	templates map[Locale]pathTemplate
}

// Params returns the names of the route's positional parameters.
func (r *Route) Params() []string {
	return append([]string(nil), r.templates[DefaultLocale].params...)
}

func (r *Route) Title(locale Locale) string {
	if title, ok := r.Titles[locale]; ok && title != "" {
		return title
	}
	return r.Titles[DefaultLocale]
}

// Resolution is the outcome of matching an incoming path against the table.
type Resolution struct {
	Path    string
	Locale  Locale
	Key     Key
	Params  []string
	Matched bool
}

// Table is the immutable route table. Build it once with Load or Parse.
type Table struct {
	routes    []*Route
	byKey     map[Key]*Route
	prefixes  map[apps.App]map[Locale]string
	login     map[apps.App]*Route
	dashboard map[apps.App]*Route
}

type document struct {
	Apps   map[string]appDocument `yaml:"apps"`
	Routes []routeDocument        `yaml:"routes"`
}

type appDocument struct {
	Prefixes map[string]string `yaml:"prefixes"`
}

type routeDocument struct {
	Key        string            `yaml:"key"`
	App        string            `yaml:"app"`
	Public     bool              `yaml:"public"`
	Role       string            `yaml:"role"`
	Activation bool              `yaml:"activation"`
	Paths      map[string]string `yaml:"paths"`
	Titles     map[string]string `yaml:"titles"`
}

// Load parses the embedded route table.
func Load() (*Table, error) {
	return Parse(defaultRoutes)
}

// Parse builds a table from a YAML document and validates it.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("[routing Parse] %w: %v", errors.ErrInvalidRouteTable, err)
	}

	t := &Table{
		byKey:     make(map[Key]*Route, len(doc.Routes)),
		prefixes:  make(map[apps.App]map[Locale]string, len(doc.Apps)),
		login:     make(map[apps.App]*Route),
		dashboard: make(map[apps.App]*Route),
	}

	for name, appDoc := range doc.Apps {
		app, err := apps.Parse(name)
		if err != nil {
			return nil, invalid("apps: %v", err)
		}
		prefixes, err := localeMap(appDoc.Prefixes)
		if err != nil {
			return nil, invalid("app %s prefixes: %v", app, err)
		}
		t.prefixes[app] = prefixes
	}

	for i, rd := range doc.Routes {
		route, err := t.buildRoute(rd)
		if err != nil {
			return nil, invalid("route #%d (%s): %v", i, rd.Key, err)
		}
		t.routes = append(t.routes, route)
		t.byKey[route.Key] = route
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("[routing Parse] %w: %s", errors.ErrInvalidRouteTable, fmt.Sprintf(format, args...))
}

func localeMap(in map[string]string) (map[Locale]string, error) {
	out := make(map[Locale]string, len(in))
	for name, value := range in {
		locale, err := ParseLocale(name)
		if err != nil {
			return nil, err
		}
		out[locale] = value
	}
	for _, locale := range Locales() {
		if out[locale] == "" {
			return nil, fmt.Errorf("missing locale %s", locale)
		}
	}
	return out, nil
}

func (t *Table) buildRoute(rd routeDocument) (*Route, error) {
	if rd.Key == "" {
		return nil, fmt.Errorf("missing key")
	}
	key := Key(rd.Key)
	if _, dup := t.byKey[key]; dup {
		return nil, fmt.Errorf("duplicate key")
	}

	route := &Route{
		Key:        key,
		Public:     rd.Public,
		Role:       Role(rd.Role),
		Activation: rd.Activation,
		templates:  make(map[Locale]pathTemplate, len(Locales())),
	}
	if rd.App != "" {
		app, err := apps.Parse(rd.App)
		if err != nil {
			return nil, err
		}
		route.App = app
	}

	paths, err := localeMap(rd.Paths)
	if err != nil {
		return nil, fmt.Errorf("paths: %w", err)
	}
	route.Paths = paths
	route.Titles = make(map[Locale]string, len(rd.Titles))
	for name, title := range rd.Titles {
		locale, err := ParseLocale(name)
		if err != nil {
			return nil, fmt.Errorf("titles: %w", err)
		}
		route.Titles[locale] = title
	}

	for locale, raw := range paths {
		tmpl, err := parseTemplate(raw)
		if err != nil {
			return nil, err
		}
		route.templates[locale] = tmpl
	}
	want := strings.Join(route.templates[DefaultLocale].params, ",")
	for locale, tmpl := range route.templates {
		if got := strings.Join(tmpl.params, ","); got != want {
			return nil, fmt.Errorf("locale %s has parameters [%s], want [%s]", locale, got, want)
		}
	}

	switch route.Role {
	case RoleNone:
	case RoleLogin, RoleDashboard:
		if route.App == "" {
			return nil, fmt.Errorf("role %s requires an app", route.Role)
		}
		if len(route.templates[DefaultLocale].params) > 0 {
			return nil, fmt.Errorf("role %s cannot take parameters", route.Role)
		}
	default:
		return nil, fmt.Errorf("unknown role %q", rd.Role)
	}
	if route.Public && route.App == "" {
		return nil, fmt.Errorf("public routes must belong to an app")
	}
	if route.Activation && !route.Public {
		return nil, fmt.Errorf("activation routes must be public")
	}
	return route, nil
}

func (t *Table) validate() error {
	for _, app := range apps.All() {
		if _, ok := t.prefixes[app]; !ok {
			return invalid("app %s has no prefixes", app)
		}
	}

	for _, route := range t.routes {
		if route.App != "" {
			for locale, tmpl := range route.templates {
				prefix := t.prefixes[route.App][locale]
				if !hasSegmentPrefix(tmpl.raw, prefix) {
					return invalid("%s (%s) %s is outside prefix %s", route.Key, locale, tmpl.raw, prefix)
				}
			}
		}
		switch route.Role {
		case RoleLogin:
			if t.login[route.App] != nil {
				return invalid("app %s has two login routes", route.App)
			}
			t.login[route.App] = route
		case RoleDashboard:
			if t.dashboard[route.App] != nil {
				return invalid("app %s has two dashboard routes", route.App)
			}
			t.dashboard[route.App] = route
		}
	}

	for _, app := range apps.All() {
		if t.login[app] == nil || t.dashboard[app] == nil {
			return invalid("app %s needs a login and a dashboard route", app)
		}
		if !t.login[app].Public || t.dashboard[app].Public {
			return invalid("app %s: login must be public and dashboard protected", app)
		}
	}

	for _, locale := range Locales() {
		for i, a := range t.routes {
			for _, b := range t.routes[i+1:] {
				if a.templates[locale].overlaps(b.templates[locale]) {
					return invalid("%s and %s collide in locale %s", a.Key, b.Key, locale)
				}
			}
		}
	}

	for _, key := range referencedKeys() {
		if _, ok := t.byKey[key]; !ok {
			return invalid("missing route %s", key)
		}
	}
	return nil
}

// Route returns the route registered under key.
func (t *Table) Route(key Key) (*Route, error) {
	route, ok := t.byKey[key]
	if !ok {
		return nil, fmt.Errorf("%q: %w", key, errors.ErrUnknownRoute)
	}
	return route, nil
}

// Routes returns all routes in table order.
func (t *Table) Routes() []*Route {
	return append([]*Route(nil), t.routes...)
}

// Keys returns every route key, sorted.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, len(t.byKey))
	for k := range t.byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Prefix returns the path prefix of app in locale.
func (t *Table) Prefix(app apps.App, locale Locale) string {
	return t.prefixes[app][locale]
}

// LoginRoute and DashboardRoute return the redirect targets of app.
func (t *Table) LoginRoute(app apps.App) *Route {
	return t.login[app]
}

func (t *Table) DashboardRoute(app apps.App) *Route {
	return t.dashboard[app]
}

// Localize returns the concrete path of key in locale with params substituted
// in positional order.
func (t *Table) Localize(key Key, locale Locale, params ...string) (string, error) {
	route, err := t.Route(key)
	if err != nil {
		return "", err
	}
	tmpl, ok := route.templates[locale]
	if !ok {
		return "", fmt.Errorf("%q: %w", locale, errors.ErrUnknownLocale)
	}
	return tmpl.fill(params)
}

// MustLocalize panics on configuration errors. Use it only with keys known to
// exist, such as the Key constants, which Load already checked.
func (t *Table) MustLocalize(key Key, locale Locale, params ...string) string {
	p, err := t.Localize(key, locale, params...)
	if err != nil {
		panic(err)
	}
	return p
}

// ResolveIncoming finds the locale and route of a request path. Paths that are
// not a localized form of any route resolve to the default locale and are
// returned unchanged.
func (t *Table) ResolveIncoming(path string) Resolution {
	segs := splitPath(path)
	for _, locale := range Locales() {
		for _, route := range t.routes {
			if params, ok := route.templates[locale].match(segs); ok {
				return Resolution{Path: path, Locale: locale, Key: route.Key, Params: params, Matched: true}
			}
		}
	}
	return Resolution{Path: path, Locale: DefaultLocale}
}

// Alternate returns the path of the same page in another locale, or path
// unchanged if it is not a known page.
func (t *Table) Alternate(path string, locale Locale) string {
	res := t.ResolveIncoming(path)
	if !res.Matched {
		return path
	}
	alt, err := t.Localize(res.Key, locale, res.Params...)
	if err != nil {
		return path
	}
	return alt
}
