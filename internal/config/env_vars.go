package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar  = "PORT"
	appNameVar  = "APP_NAME"
	databaseVar = "DATABASE_DSN"
	appEnvVar   = "APP_ENV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Blood Donation Service")
}

func (EnvVars) GetDatabaseDSN() string {
	return GetEnv(databaseVar, "file:bloodcare.db?cache=shared&mode=rwc")
}

func (EnvVars) GetEnv() string {
	return GetEnv(appEnvVar, "development")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
