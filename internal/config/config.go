package config

import "github.com/jrsteele09/go-care-portal/apps"

type Config interface {
	EnvConfig
	SessionConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
	IsProduction() bool
	GetSeedAccount(app apps.App) (email, password string)
}

type mainConfig struct {
	EnvVars
	Session
	Security
}

// New reads the environment once. The returned value is immutable and safe to
// share between requests.
func New() Config {
	env := loadEnvVars()
	return mainConfig{
		EnvVars:  env,
		Session:  loadSession(),
		Security: loadSecurity(),
	}
}
