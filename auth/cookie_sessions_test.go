package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/auth"
	"github.com/jrsteele09/go-care-portal/internal/config"
	"github.com/jrsteele09/go-care-portal/internal/utils"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/jrsteele09/go-care-portal/token"
	"github.com/stretchr/testify/require"
)

func TestSessions_CreateThenCurrent(t *testing.T) {
	s := newSessions(healthSecret, medicalSecret)
	payload := sessions.Payload{ID: "doc-1", Email: "doc@example.com", Name: "Luis", SessionID: utils.Ptr("s-1")}

	rec := httptest.NewRecorder()
	require.NoError(t, s.Create(rec, apps.MedicalPortal, payload))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	c := cookies[0]
	require.Equal(t, "medical_portal_session", c.Name)
	require.Equal(t, "/", c.Path)
	require.True(t, c.HttpOnly)
	require.False(t, c.Secure)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, 30*24*60*60, c.MaxAge)

	got, ok := s.Current(request("/", c), apps.MedicalPortal)
	require.True(t, ok)
	require.Equal(t, payload, *got)

	_, ok = s.Current(request("/", c), apps.HealthPlatform)
	require.False(t, ok)
}

func TestSessions_SecureCookies(t *testing.T) {
	keyring := token.NewKeyring(config.NewSession(nil))
	s := auth.NewSessions(keyring, true)

	rec := httptest.NewRecorder()
	require.NoError(t, s.Create(rec, apps.HealthPlatform, sessions.Payload{ID: "p"}))
	require.True(t, rec.Result().Cookies()[0].Secure)
}

func TestSessions_CurrentTreatsInvalidAsAbsent(t *testing.T) {
	s := newSessions(healthSecret, medicalSecret)

	tests := map[string]*http.Request{
		"no cookie":    request("/"),
		"empty cookie": request("/", &http.Cookie{Name: apps.HealthPlatform.CookieName(), Value: ""}),
		"garbage":      request("/", &http.Cookie{Name: apps.HealthPlatform.CookieName(), Value: "abc.def.ghi"}),
		"wrong secret": request("/", signedCookie(t, apps.HealthPlatform, "other")),
	}
	for name, r := range tests {
		t.Run(name, func(t *testing.T) {
			payload, ok := s.Current(r, apps.HealthPlatform)
			require.False(t, ok)
			require.Nil(t, payload)
		})
	}

	_, ok := s.Current(nil, apps.HealthPlatform)
	require.False(t, ok)
}

func TestSessions_Destroy(t *testing.T) {
	s := newSessions(healthSecret, medicalSecret)
	rec := httptest.NewRecorder()
	s.Destroy(rec, apps.HealthPlatform)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "health_platform_session", cookies[0].Name)
	require.Equal(t, "", cookies[0].Value)
	require.Less(t, cookies[0].MaxAge, 0)
}
