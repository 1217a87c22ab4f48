package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/jrsteele09/go-care-portal/apps"
	apperrors "github.com/jrsteele09/go-care-portal/internal/errors"
	"github.com/jrsteele09/go-care-portal/sessions"
)

// SessionTTL is the fixed lifetime of a session token. There is no refresh;
// signing in again is the only way to renew a session.
const SessionTTL = 30 * 24 * time.Hour

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// sessionClaims is the wire form of a session token.
type sessionClaims struct {
	sessions.Payload
	jwtlib.RegisteredClaims
}

// Codec signs and verifies the session tokens of one application.
type Codec struct {
	app    apps.App
	signer Signer
}

// NewCodec creates a codec for app. The app is written to and checked against
// the issuer claim so that tokens never cross applications, even if two apps
// were configured with the same secret.
func NewCodec(app apps.App, secret string) *Codec {
	return &Codec{
		app:    app,
		signer: NewHMACSigner(secret),
	}
}

func (c *Codec) App() apps.App {
	return c.app
}

// Sign issues a token for payload valid for SessionTTL from now.
func (c *Codec) Sign(payload sessions.Payload) (string, error) {
	now := NowTimeFunc()
	claims := sessionClaims{
		Payload: payload,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    string(c.app),
			Subject:   payload.ID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	if payload.HasSessionID() {
		claims.RegisteredClaims.ID = *payload.SessionID
	}

	signed, err := c.signer.Sign(claims)
	if err != nil {
		return "", fmt.Errorf("[Codec Sign] %s: %w", c.app, err)
	}
	return signed, nil
}

// Verify returns the payload of a token signed by this codec. Every failure
// wraps ErrInvalidToken; expired tokens also wrap ErrTokenExpired.
func (c *Codec) Verify(raw string) (*sessions.Payload, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("empty token: %w", apperrors.ErrInvalidToken)
	}

	claims := &sessionClaims{}
	_, err := jwtlib.ParseWithClaims(raw, claims, c.signer.GetVerificationKey,
		jwtlib.WithValidMethods([]string{c.signer.GetSigningMethod().Alg()}),
		jwtlib.WithIssuer(string(c.app)),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithIssuedAt(),
		jwtlib.WithTimeFunc(NowTimeFunc),
	)
	if err != nil {
		if errors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrInvalidToken, apperrors.ErrTokenExpired)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidToken, err)
	}
	if claims.Payload.ID == "" || claims.Payload.ID != claims.RegisteredClaims.Subject {
		return nil, fmt.Errorf("subject mismatch: %w", apperrors.ErrInvalidToken)
	}

	payload := claims.Payload
	return &payload, nil
}
