package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/internal/config"
	"github.com/jrsteele09/go-care-portal/routing"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/jrsteele09/go-care-portal/token"
	"github.com/stretchr/testify/require"
)

const (
	healthSecret  = "health-test-secret"
	medicalSecret = "medical-test-secret"
)

type gateFixture struct {
	table    *routing.Table
	sessions *auth.Sessions
	gate     *auth.Gate
}

func newGateFixture(t *testing.T, opts ...auth.GateOption) *gateFixture {
	t.Helper()
	table, err := routing.Load()
	require.NoError(t, err)

	s := newSessions(healthSecret, medicalSecret)
	return &gateFixture{
		table:    table,
		sessions: s,
		gate:     auth.NewGate(s, table, opts...),
	}
}

func newSessions(health, medical string) *auth.Sessions {
	keyring := token.NewKeyring(config.NewSession(map[apps.App]string{
		apps.HealthPlatform: health,
		apps.MedicalPortal:  medical,
	}))
	return auth.NewSessions(keyring, false)
}

func signedCookie(t *testing.T, app apps.App, secret string) *http.Cookie {
	t.Helper()
	raw, err := token.NewCodec(app, secret).Sign(sessions.Payload{ID: "user-1", Email: "user@example.com"})
	require.NoError(t, err)
	return &http.Cookie{Name: app.CookieName(), Value: raw}
}

// signedCookieAt signs a cookie as if issued at the given time. The real
// clock is back in place before the cookie is verified.
func signedCookieAt(t *testing.T, app apps.App, secret string, at time.Time) *http.Cookie {
	t.Helper()
	previous := token.NowTimeFunc
	t.Cleanup(func() { token.NowTimeFunc = previous })
	token.NowTimeFunc = func() time.Time { return at }
	cookie := signedCookie(t, app, secret)
	token.NowTimeFunc = previous
	return cookie
}

func request(path string, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestGate_Quadrants(t *testing.T) {
	f := newGateFixture(t)
	medical := signedCookie(t, apps.MedicalPortal, medicalSecret)

	tests := []struct {
		name     string
		path     string
		cookies  []*http.Cookie
		redirect bool
		location string
		reason   auth.Reason
	}{
		{"authenticated public", "/medical-portal/login", []*http.Cookie{medical}, true, "/medical-portal/profile", auth.ReasonAuthenticatedOnPublic},
		{"authenticated protected", "/medical-portal/patients/3", []*http.Cookie{medical}, false, "", auth.ReasonNone},
		{"unauthenticated public", "/medical-portal/register", nil, false, "", auth.ReasonNone},
		{"unauthenticated protected", "/medical-portal/patients/3", nil, true, "/medical-portal/login", auth.ReasonUnauthenticatedOnProtected},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := request(tc.path, tc.cookies...)
			d := f.gate.Decide(r.URL.Path, r)
			require.Equal(t, tc.redirect, d.Redirect)
			require.Equal(t, tc.location, d.Location)
			require.Equal(t, tc.reason, d.Reason)
		})
	}
}

func TestGate_Scenarios(t *testing.T) {
	f := newGateFixture(t)

	t.Run("protected spanish path without cookie goes to spanish login", func(t *testing.T) {
		d := f.gate.Decide("/portal-medico/perfil", request("/portal-medico/perfil"))
		require.True(t, d.Redirect)
		require.Equal(t, "/portal-medico/inicio-sesion", d.Location)
		require.Equal(t, apps.MedicalPortal, d.App)
		require.Equal(t, routing.Spanish, d.Locale)
	})

	t.Run("english login with valid session goes to english profile", func(t *testing.T) {
		r := request("/medical-portal/login", signedCookie(t, apps.MedicalPortal, medicalSecret))
		d := f.gate.Decide(r.URL.Path, r)
		require.True(t, d.Redirect)
		require.Equal(t, "/medical-portal/profile", d.Location)
		require.Equal(t, routing.English, d.Locale)
	})

	t.Run("public registration without cookie passes", func(t *testing.T) {
		d := f.gate.Decide("/health-platform/register", request("/health-platform/register"))
		require.False(t, d.Redirect)
	})

	t.Run("cookie signed with the other app's secret is rejected", func(t *testing.T) {
		forged := signedCookie(t, apps.HealthPlatform, medicalSecret)
		r := request("/plataforma-salud/historial", forged)
		d := f.gate.Decide(r.URL.Path, r)
		require.True(t, d.Redirect)
		require.Equal(t, "/plataforma-salud/inicio-sesion", d.Location)
	})

	t.Run("path outside both applications passes", func(t *testing.T) {
		d := f.gate.Decide("/about-us", request("/about-us"))
		require.Equal(t, auth.Decision{}, d)
	})

	t.Run("secret rotation invalidates outstanding sessions", func(t *testing.T) {
		cookie := signedCookie(t, apps.HealthPlatform, healthSecret)
		rotated := auth.NewGate(newSessions("rotated-secret", medicalSecret), f.table)

		r := request("/health-platform/history", cookie)
		require.False(t, f.gate.Decide(r.URL.Path, r).Redirect)

		d := rotated.Decide(r.URL.Path, r)
		require.True(t, d.Redirect)
		require.Equal(t, "/health-platform/login", d.Location)
	})
}

func TestGate_ApplicationsAreIsolated(t *testing.T) {
	f := newGateFixture(t)

	t.Run("medical session does not open the health platform", func(t *testing.T) {
		r := request("/health-platform/profile", signedCookie(t, apps.MedicalPortal, medicalSecret))
		d := f.gate.Decide(r.URL.Path, r)
		require.True(t, d.Redirect)
		require.Equal(t, "/health-platform/login", d.Location)
		require.Equal(t, apps.HealthPlatform, d.App)
	})

	t.Run("medical token in the health cookie is rejected", func(t *testing.T) {
		medical := signedCookie(t, apps.MedicalPortal, medicalSecret)
		r := request("/health-platform/profile", &http.Cookie{Name: apps.HealthPlatform.CookieName(), Value: medical.Value})
		require.True(t, f.gate.Decide(r.URL.Path, r).Redirect)
	})

	t.Run("health session does not skip the medical login page", func(t *testing.T) {
		r := request("/medical-portal/login", signedCookie(t, apps.HealthPlatform, healthSecret))
		require.False(t, f.gate.Decide(r.URL.Path, r).Redirect)
	})
}

func TestGate_RedirectsKeepPrefixLanguage(t *testing.T) {
	f := newGateFixture(t)
	health := signedCookie(t, apps.HealthPlatform, healthSecret)

	tests := []struct {
		path     string
		cookies  []*http.Cookie
		location string
	}{
		{"/plataforma-salud/citas", nil, "/plataforma-salud/inicio-sesion"},
		{"/health-platform/appointments", nil, "/health-platform/login"},
		{"/plataforma-salud", nil, "/plataforma-salud/inicio-sesion"},
		{"/plataforma-salud/registro", []*http.Cookie{health}, "/plataforma-salud/perfil"},
		{"/health-platform/forgot-password", []*http.Cookie{health}, "/health-platform/profile"},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			r := request(tc.path, tc.cookies...)
			d := f.gate.Decide(r.URL.Path, r)
			require.True(t, d.Redirect)
			require.Equal(t, tc.location, d.Location)
		})
	}
}

func TestGate_ExpiredSessionIsUnauthenticated(t *testing.T) {
	f := newGateFixture(t)

	cookie := signedCookieAt(t, apps.MedicalPortal, medicalSecret, time.Now().Add(-31*24*time.Hour))

	r := request("/medical-portal/profile", cookie)
	d := f.gate.Decide(r.URL.Path, r)
	require.True(t, d.Redirect)
	require.Equal(t, "/medical-portal/login", d.Location)
}

func TestGate_ActivationOption(t *testing.T) {
	cookie := signedCookie(t, apps.HealthPlatform, healthSecret)
	path := "/health-platform/activate-account/abc"

	t.Run("redirected by default", func(t *testing.T) {
		d := newGateFixture(t).gate.Decide(path, request(path, cookie))
		require.True(t, d.Redirect)
		require.Equal(t, "/health-platform/profile", d.Location)
	})

	t.Run("allowed when enabled", func(t *testing.T) {
		d := newGateFixture(t, auth.WithActivationAllowed(true)).gate.Decide(path, request(path, cookie))
		require.False(t, d.Redirect)
	})

	t.Run("other public pages still redirect", func(t *testing.T) {
		d := newGateFixture(t, auth.WithActivationAllowed(true)).gate.Decide("/health-platform/login", request("/health-platform/login", cookie))
		require.True(t, d.Redirect)
	})
}

func TestGate_DecideIsIdempotent(t *testing.T) {
	f := newGateFixture(t)
	r := request("/medical-portal/login", signedCookie(t, apps.MedicalPortal, medicalSecret))
	require.Equal(t, f.gate.Decide(r.URL.Path, r), f.gate.Decide(r.URL.Path, r))
}
