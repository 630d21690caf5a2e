package config

import (
	"github.com/bloodcare/bloodcare/auth"
)

type Config interface {
	EnvConfig
	auth.Config
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDatabaseDSN() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	Security
}

func New() Config {
	return mainConfig{}
}
