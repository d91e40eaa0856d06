package config

import (
	"os"
	"strconv"
	"strings"
)

// Source records where a setting's value came from.
type Source string

const (
	SourceEnv     Source = "env"
	SourceConfig  Source = "config"
	SourceDefault Source = "default"
)

// SettingStatus describes one environment-suppliable setting.
type SettingStatus struct {
	Name   string `json:"name"`
	EnvVar string `json:"env_var"`
	Value  string `json:"value"`
	Source Source `json:"source"`
}

// Describe reports the deployment settings and where each came from.
func Describe(cfg *Config) []SettingStatus {
	return []SettingStatus{
		describe("Listen port", strconv.Itoa(cfg.API.Port), strconv.Itoa(DefaultPort),
			EnvPort, envName("api.port")),
		describe("Allowed origins", strings.Join(cfg.API.CORSOrigins, ","), DefaultCORSOrigin,
			EnvFrontendURL, envName("api.cors_origins")),
		describe("SEC User-Agent", cfg.SEC.UserAgent, DefaultUserAgent,
			EnvSECUserAgent, envName("sec.user_agent")),
	}
}

// describe attributes value to the first env var that is set, then to the
// config file when it differs from the default.
func describe(name, value, def string, envVars ...string) SettingStatus {
	status := SettingStatus{Name: name, EnvVar: envVars[0], Value: value, Source: SourceDefault}
	for _, ev := range envVars {
		if os.Getenv(ev) != "" {
			status.EnvVar = ev
			status.Source = SourceEnv
			return status
		}
	}
	if value != def {
		status.Source = SourceConfig
	}
	return status
}

// envName returns the prefixed variable viper reads for key.
func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}
