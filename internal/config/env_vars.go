package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/jrsteele09/go-care-portal/apps"
)

const (
	portEnvVar    = "PORT"
	appNameVar    = "APP_NAME"
	envVar        = "ENV"
	productionEnv = "PROD"
)

// EnvVars is a snapshot of the process environment taken at startup.
type EnvVars struct {
	port    string
	appName string
	env     string
	seeds   map[apps.App]seedAccount
}

type seedAccount struct {
	email    string
	password string
}

var _ EnvConfig = EnvVars{}

func loadEnvVars() EnvVars {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return EnvVars{
		port:    port,
		appName: GetEnv(appNameVar, "Care Portal"),
		env:     strings.ToUpper(GetEnv(envVar, "DEV")),
		seeds: map[apps.App]seedAccount{
			apps.HealthPlatform: {
				email:    GetEnv("SEED_PATIENT_EMAIL", ""),
				password: GetEnv("SEED_PATIENT_PASSWORD", ""),
			},
			apps.MedicalPortal: {
				email:    GetEnv("SEED_DOCTOR_EMAIL", ""),
				password: GetEnv("SEED_DOCTOR_PASSWORD", ""),
			},
		},
	}
}

func (e EnvVars) GetPort() string {
	return e.port
}

func (e EnvVars) GetAppName() string {
	return e.appName
}

func (e EnvVars) GetEnv() string {
	return e.env
}

func (e EnvVars) IsProduction() bool {
	return e.env == productionEnv
}

// GetSeedAccount returns the account created at startup for the given app.
// Both values are empty when no seed is configured.
func (e EnvVars) GetSeedAccount(app apps.App) (string, string) {
	seed := e.seeds[app]
	return seed.email, seed.password
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

// GetEnvBool parses common truthy spellings; anything else yields defaultValue.
func GetEnvBool(envVar string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(envVar)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return defaultValue
}
