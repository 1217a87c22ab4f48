package config

import (
	"github.com/jrsteele09/go-care-portal/apps"
)

// Development fallbacks. They are public knowledge and must never be used in production.
var defaultSecrets = map[apps.App]string{
	apps.HealthPlatform: "health-platform-development-secret-do-not-use",
	apps.MedicalPortal:  "medical-portal-development-secret-do-not-use",
}

type SessionConfig interface {
	GetSigningSecret(app apps.App) string
	IsDefaultSecret(app apps.App) bool
}

type Session struct {
	secrets  map[apps.App]string
	defaults map[apps.App]bool
}

var _ SessionConfig = Session{}

func loadSession() Session {
	s := Session{
		secrets:  make(map[apps.App]string, len(apps.All())),
		defaults: make(map[apps.App]bool, len(apps.All())),
	}
	for _, app := range apps.All() {
		secret := GetEnv(app.SecretEnvVar(), "")
		if secret == "" {
			secret = defaultSecrets[app]
			s.defaults[app] = true
		}
		s.secrets[app] = secret
	}
	return s
}

func (s Session) GetSigningSecret(app apps.App) string {
	if secret, ok := s.secrets[app]; ok {
		return secret
	}
	return defaultSecrets[app]
}

// IsDefaultSecret reports whether the app fell back to its development secret.
func (s Session) IsDefaultSecret(app apps.App) bool {
	if s.secrets == nil {
		return true
	}
	return s.defaults[app]
}

// NewSession builds a SessionConfig from explicit secrets. Apps missing from
// the map use their development default.
func NewSession(secrets map[apps.App]string) Session {
	s := Session{
		secrets:  make(map[apps.App]string, len(apps.All())),
		defaults: make(map[apps.App]bool, len(apps.All())),
	}
	for _, app := range apps.All() {
		secret, ok := secrets[app]
		if !ok || secret == "" {
			secret = defaultSecrets[app]
			s.defaults[app] = true
		}
		s.secrets[app] = secret
	}
	return s
}
