package config

import "time"

type Config interface {
	EnvConfig
	BackendConfig
	GuardConfig
	CorsConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetEnv() string
}

type BackendConfig interface {
	GetBackendBaseURL() string
	GetRequestTimeout() time.Duration
}

type GuardConfig interface {
	GetLoginPath() string
	GetLandingPath() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
}

func New() Config {
	return mainConfig{}
}
