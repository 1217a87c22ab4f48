// Package apps identifies the two independently authenticated sections of the
// portal: the patient facing health platform and the doctor facing medical portal.
package apps

import (
	"fmt"

	"github.com/jrsteele09/go-care-portal/internal/errors"
)

type App string

const (
	HealthPlatform App = "health-platform"
	MedicalPortal  App = "medical-portal"
)

var all = []App{HealthPlatform, MedicalPortal}

// All returns every application in a fixed order.
func All() []App {
	out := make([]App, len(all))
	copy(out, all)
	return out
}

func Parse(s string) (App, error) {
	for _, app := range all {
		if string(app) == s {
			return app, nil
		}
	}
	return "", fmt.Errorf("%q: %w", s, errors.ErrUnknownApp)
}

func (a App) String() string {
	return string(a)
}

func (a App) Valid() bool {
	return a == HealthPlatform || a == MedicalPortal
}

// CookieName is the HTTP-only cookie carrying the app's session token.
func (a App) CookieName() string {
	switch a {
	case HealthPlatform:
		return "health_platform_session"
	case MedicalPortal:
		return "medical_portal_session"
	}
	return ""
}

// SecretEnvVar names the environment variable holding the app's signing secret.
func (a App) SecretEnvVar() string {
	switch a {
	case HealthPlatform:
		return "HEALTH_PLATFORM_SECRET"
	case MedicalPortal:
		return "MEDICAL_PORTAL_SECRET"
	}
	return ""
}
