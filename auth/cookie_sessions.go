package auth

import (
	"fmt"
	"net/http"

	"github.com/jrsteele09/go-care-portal/apps"
	"github.com/jrsteele09/go-care-portal/sessions"
	"github.com/jrsteele09/go-care-portal/token"
	"github.com/rs/zerolog/log"
)

// CookieJar is the read side of a request's cookies. *http.Request satisfies it.
type CookieJar interface {
	Cookie(name string) (*http.Cookie, error)
}

// Sessions reads and writes the per-application session cookies. The request
// pipeline and page handlers both use Current, independently of each other.
type Sessions struct {
	keyring *token.Keyring
	secure  bool
}

func NewSessions(keyring *token.Keyring, secureCookies bool) *Sessions {
	return &Sessions{
		keyring: keyring,
		secure:  secureCookies,
	}
}

// Current returns the verified session of app carried by jar. A missing,
// malformed, forged or expired token all report false.
func (s *Sessions) Current(jar CookieJar, app apps.App) (*sessions.Payload, bool) {
	if jar == nil {
		return nil, false
	}
	cookie, err := jar.Cookie(app.CookieName())
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	codec, err := s.keyring.Codec(app)
	if err != nil {
		return nil, false
	}
	payload, err := codec.Verify(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Str("app", app.String()).Msg("Ignoring session cookie")
		return nil, false
	}
	return payload, true
}

// Create signs payload and sets it as the session cookie of app.
func (s *Sessions) Create(w http.ResponseWriter, app apps.App, payload sessions.Payload) error {
	codec, err := s.keyring.Codec(app)
	if err != nil {
		return fmt.Errorf("[Sessions Create] %w", err)
	}
	signed, err := codec.Sign(payload)
	if err != nil {
		return fmt.Errorf("[Sessions Create] %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     app.CookieName(),
		Value:    signed,
		Path:     "/",
		MaxAge:   int(token.SessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy deletes the session cookie of app.
func (s *Sessions) Destroy(w http.ResponseWriter, app apps.App) {
	http.SetCookie(w, &http.Cookie{
		Name:     app.CookieName(),
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
