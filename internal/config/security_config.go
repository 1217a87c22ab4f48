package config

import "strings"

type SecurityConfig interface {
	GetSecureCookies() bool
	GetActivationAllowsSession() bool
}

type Security struct {
	secureCookies           bool
	activationAllowsSession bool
}

var _ SecurityConfig = Security{}

func loadSecurity() Security {
	return Security{
		secureCookies:           GetEnvBool("SECURE_COOKIES", strings.ToUpper(GetEnv(envVar, "DEV")) == productionEnv),
		activationAllowsSession: GetEnvBool("ACTIVATION_ALLOWS_SESSION", false),
	}
}

// GetSecureCookies defaults to true in production only.
func (s Security) GetSecureCookies() bool {
	return s.secureCookies
}

// GetActivationAllowsSession lets signed-in users open account activation links
// instead of being sent to their dashboard.
func (s Security) GetActivationAllowsSession() bool {
	return s.activationAllowsSession
}
