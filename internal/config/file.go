package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileSettings are the optional YAML overrides. Anything left zero falls
// back to the environment-backed defaults.
type FileSettings struct {
	Port                  string   `yaml:"port"`
	AppName               string   `yaml:"app_name"`
	DataFolder            string   `yaml:"data_folder"`
	BackendURL            string   `yaml:"backend_url"`
	RequestTimeoutSeconds int      `yaml:"request_timeout_seconds"`
	LoginPath             string   `yaml:"login_path"`
	LandingPath           string   `yaml:"landing_path"`
	AllowedOrigins        []string `yaml:"allowed_origins"`
}

type fileConfig struct {
	mainConfig
	settings FileSettings
}

// Load builds the Config, overlaying the YAML file at path when given.
func Load(path string) (Config, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "[config.Load] os.ReadFile")
	}

	var settings FileSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, errors.Wrap(err, "[config.Load] yaml.Unmarshal")
	}

	return fileConfig{settings: settings}, nil
}

func (fc fileConfig) GetPort() string {
	if fc.settings.Port != "" {
		port := fc.settings.Port
		if port[0] != ':' {
			port = ":" + port
		}
		return port
	}
	return fc.mainConfig.GetPort()
}

func (fc fileConfig) GetAppName() string {
	if fc.settings.AppName != "" {
		return fc.settings.AppName
	}
	return fc.mainConfig.GetAppName()
}

func (fc fileConfig) GetDataFolder() string {
	if fc.settings.DataFolder != "" {
		return fc.settings.DataFolder
	}
	return fc.mainConfig.GetDataFolder()
}

func (fc fileConfig) GetBackendBaseURL() string {
	if fc.settings.BackendURL != "" {
		return fc.settings.BackendURL
	}
	return fc.mainConfig.GetBackendBaseURL()
}

func (fc fileConfig) GetRequestTimeout() time.Duration {
	if fc.settings.RequestTimeoutSeconds > 0 {
		return time.Duration(fc.settings.RequestTimeoutSeconds) * time.Second
	}
	return fc.mainConfig.GetRequestTimeout()
}

func (fc fileConfig) GetLoginPath() string {
	if fc.settings.LoginPath != "" {
		return fc.settings.LoginPath
	}
	return fc.mainConfig.GetLoginPath()
}

func (fc fileConfig) GetLandingPath() string {
	if fc.settings.LandingPath != "" {
		return fc.settings.LandingPath
	}
	return fc.mainConfig.GetLandingPath()
}

func (fc fileConfig) GetAllowedOrigins() AllowedOrigins {
	if len(fc.settings.AllowedOrigins) > 0 {
		return NewAllowedOrigins(fc.settings.AllowedOrigins...)
	}
	return fc.mainConfig.GetAllowedOrigins()
}
