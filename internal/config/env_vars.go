package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	portEnvVar            = "PORT"
	appNameVar            = "APP_NAME"
	folderEnvVar          = "FOLDER"
	backendURLVar         = "BACKEND_URL"
	requestTimeoutVar     = "REQUEST_TIMEOUT_SECONDS"
	loginPathEnvVar       = "LOGIN_PATH"
	landingPathVar        = "LANDING_PATH"
	defaultTimeoutSeconds = 20
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}
var _ BackendConfig = EnvVars{}
var _ GuardConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8081")
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Session Gateway")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetBackendBaseURL() string {
	return GetEnv(backendURLVar, "http://localhost:8000")
}

func (EnvVars) GetRequestTimeout() time.Duration {
	seconds, err := strconv.Atoi(GetEnv(requestTimeoutVar, ""))
	if err != nil || seconds <= 0 {
		seconds = defaultTimeoutSeconds
	}
	return time.Duration(seconds) * time.Second
}

func (EnvVars) GetLoginPath() string {
	return GetEnv(loginPathEnvVar, "/login")
}

func (EnvVars) GetLandingPath() string {
	return GetEnv(landingPathVar, "/dashboard")
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
