package routing_test

import (
	"os"
	"strings"
	"testing"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/routing"
	"github.com/stretchr/testify/require"
)

func loadTable(t *testing.T) *routing.Table {
	t.Helper()
	table, err := routing.Load()
	require.NoError(t, err)
	return table
}

func TestLoad_EveryRouteHasEveryLocale(t *testing.T) {
	table := loadTable(t)
	for _, route := range table.Routes() {
		for _, locale := range routing.Locales() {
			p, err := table.Localize(route.Key, locale, placeholderParams(route)...)
			require.NoError(t, err, "%s/%s", route.Key, locale)
			require.True(t, strings.HasPrefix(p, "/"))
			require.NotEmpty(t, route.Title(locale))
		}
	}
}

func TestTable_KeysAreSortedAndResolvable(t *testing.T) {
	table := loadTable(t)
	keys := table.Keys()
	require.Len(t, keys, len(table.Routes()))
	for i, key := range keys {
		if i > 0 {
			require.Less(t, string(keys[i-1]), string(key))
		}
		route, err := table.Route(key)
		require.NoError(t, err)
		require.Equal(t, key, route.Key)
	}
}

func placeholderParams(route *routing.Route) []string {
	params := make([]string, len(route.Params()))
	for i := range params {
		params[i] = "x"
	}
	return params
}

func TestLocalize(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		key    routing.Key
		locale routing.Locale
		params []string
		want   string
	}{
		{routing.KeyMedicalProfile, routing.Spanish, nil, "/portal-medico/perfil"},
		{routing.KeyMedicalProfile, routing.English, nil, "/medical-portal/profile"},
		{routing.KeyMedicalLogin, routing.Spanish, nil, "/portal-medico/inicio-sesion"},
		{routing.KeyMedicalPatientRecord, routing.Spanish, []string{"42"}, "/portal-medico/pacientes/42"},
		{routing.KeyMedicalPatientRecord, routing.English, []string{"42"}, "/medical-portal/patients/42"},
		{routing.KeyHealthActivate, routing.English, []string{"abc-123"}, "/health-platform/activate-account/abc-123"},
		{routing.KeyHealthActivate, routing.Spanish, []string{"a b"}, "/plataforma-salud/activar-cuenta/a%20b"},
		{routing.KeyHome, routing.English, nil, "/"},
	}
	for _, tc := range tests {
		t.Run(string(tc.key)+"/"+string(tc.locale), func(t *testing.T) {
			got, err := table.Localize(tc.key, tc.locale, tc.params...)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestLocalize_ConfigurationErrors(t *testing.T) {
	table := loadTable(t)

	_, err := table.Localize("medical.unknown", routing.Spanish)
	require.ErrorIs(t, err, errors.ErrUnknownRoute)

	_, err = table.Localize(routing.KeyMedicalProfile, routing.Locale("fr"))
	require.ErrorIs(t, err, errors.ErrUnknownLocale)

	_, err = table.Localize(routing.KeyMedicalPatientRecord, routing.English)
	require.ErrorIs(t, err, errors.ErrMissingRouteParam)

	_, err = table.Localize(routing.KeyMedicalPatientRecord, routing.English, "")
	require.ErrorIs(t, err, errors.ErrMissingRouteParam)

	require.Panics(t, func() { table.MustLocalize("nope", routing.Spanish) })
}

func TestResolveIncoming(t *testing.T) {
	table := loadTable(t)

	tests := []struct {
		path    string
		locale  routing.Locale
		key     routing.Key
		params  []string
		matched bool
	}{
		{"/", routing.Spanish, routing.KeyHome, nil, true},
		{"/portal-medico/perfil", routing.Spanish, routing.KeyMedicalProfile, nil, true},
		{"/medical-portal/profile", routing.English, routing.KeyMedicalProfile, nil, true},
		{"/medical-portal/patients/7", routing.English, routing.KeyMedicalPatientRecord, []string{"7"}, true},
		{"/plataforma-salud/activar-cuenta/xyz", routing.Spanish, routing.KeyHealthActivate, []string{"xyz"}, true},
		{"/about-us", routing.DefaultLocale, "", nil, false},
		{"/medical-portal/patients/7/notes", routing.DefaultLocale, "", nil, false},
		{"/medical-portal//profile", routing.DefaultLocale, "", nil, false},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			res := table.ResolveIncoming(tc.path)
			require.Equal(t, tc.matched, res.Matched)
			require.Equal(t, tc.locale, res.Locale)
			require.Equal(t, tc.key, res.Key)
			require.Equal(t, tc.params, res.Params)
			require.Equal(t, tc.path, res.Path)
		})
	}
}

func TestResolveIncoming_RoundTripsLocalize(t *testing.T) {
	table := loadTable(t)
	for _, route := range table.Routes() {
		for _, locale := range routing.Locales() {
			params := placeholderParams(route)
			p := table.MustLocalize(route.Key, locale, params...)
			res := table.ResolveIncoming(p)
			require.True(t, res.Matched, p)
			require.Equal(t, route.Key, res.Key, p)
			if p != "/" {
				require.Equal(t, locale, res.Locale, p)
			}
		}
	}
}

func TestAlternate(t *testing.T) {
	table := loadTable(t)
	require.Equal(t, "/medical-portal/patients/9", table.Alternate("/portal-medico/pacientes/9", routing.English))
	require.Equal(t, "/plataforma-salud/historial", table.Alternate("/health-platform/history", routing.Spanish))
	require.Equal(t, "/about-us", table.Alternate("/about-us", routing.English))
}

func TestLoginAndDashboardRoutes(t *testing.T) {
	table := loadTable(t)
	for _, app := range apps.All() {
		keys := routing.KeysFor(app)
		require.Equal(t, keys.Login, table.LoginRoute(app).Key)
		require.Equal(t, keys.Dashboard, table.DashboardRoute(app).Key)
	}
	require.Equal(t, "/health-platform", table.Prefix(apps.HealthPlatform, routing.English))
	require.Equal(t, "/portal-medico", table.Prefix(apps.MedicalPortal, routing.Spanish))
}

const validApps = `
apps:
  health-platform:
    prefixes: {es: /ps, en: /hp}
  medical-portal:
    prefixes: {es: /pm, en: /mp}
`

const validRoutes = `
  - {key: health.login, app: health-platform, public: true, role: login, paths: {es: /ps/entrar, en: /hp/login}}
  - {key: health.profile, app: health-platform, role: dashboard, paths: {es: /ps/perfil, en: /hp/profile}}
  - {key: medical.login, app: medical-portal, public: true, role: login, paths: {es: /pm/entrar, en: /mp/login}}
  - {key: medical.profile, app: medical-portal, role: dashboard, paths: {es: /pm/perfil, en: /mp/profile}}
`

func TestParse_RejectsBrokenTables(t *testing.T) {
	base, err := os.ReadFile("routes.yaml")
	require.NoError(t, err)

	_, err = routing.Parse(base)
	require.NoError(t, err)

	extraRoutes := map[string]string{
		"missing locale":     `{key: x, paths: {es: /x}}`,
		"unknown locale":     `{key: x, paths: {es: /x, en: /y, fr: /z}}`,
		"collision":          `{key: x, app: medical-portal, paths: {es: /portal-medico/perfil, en: /medical-portal/other}}`,
		"param collision":    `{key: x, app: medical-portal, paths: {es: "/portal-medico/[id]", en: /medical-portal/other}}`,
		"param mismatch":     `{key: x, app: medical-portal, paths: {es: "/portal-medico/p/[id]", en: /medical-portal/p/x}}`,
		"outside prefix":     `{key: x, app: medical-portal, paths: {es: /plataforma-salud/x, en: /medical-portal/x}}`,
		"duplicate key":      `{key: medical.login, paths: {es: /a, en: /b}}`,
		"unknown app":        `{key: x, app: admin, paths: {es: /a, en: /b}}`,
		"public without app": `{key: x, public: true, paths: {es: /a, en: /b}}`,
		"relative path":      `{key: x, paths: {es: a, en: /b}}`,
		"unknown role":       `{key: x, app: medical-portal, role: admin, paths: {es: /portal-medico/x, en: /medical-portal/x}}`,
		"second login":       `{key: x, app: medical-portal, public: true, role: login, paths: {es: /portal-medico/x, en: /medical-portal/x}}`,
		"private activation": `{key: x, app: medical-portal, activation: true, paths: {es: /portal-medico/x, en: /medical-portal/x}}`,
	}
	for name, route := range extraRoutes {
		t.Run(name, func(t *testing.T) {
			doc := string(base) + "  - " + route + "\n"
			_, err := routing.Parse([]byte(doc))
			require.ErrorIs(t, err, errors.ErrInvalidRouteTable)
		})
	}

	t.Run("not yaml", func(t *testing.T) {
		_, err := routing.Parse([]byte("routes: ["))
		require.ErrorIs(t, err, errors.ErrInvalidRouteTable)
	})

	t.Run("no prefixes", func(t *testing.T) {
		_, err := routing.Parse([]byte("routes:\n" + validRoutes))
		require.ErrorIs(t, err, errors.ErrInvalidRouteTable)
	})
}

func TestParse_RequiresReferencedKeys(t *testing.T) {
	_, err := routing.Parse([]byte(validApps + "routes:\n" + validRoutes))
	require.ErrorIs(t, err, errors.ErrInvalidRouteTable)
	require.Contains(t, err.Error(), "missing route")
}
