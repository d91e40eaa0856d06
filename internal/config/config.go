// Package config handles configuration loading for secfilings.
// It supports YAML config files, a .env file and environment variable
// overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable viper reads.
const EnvPrefix = "SECFILINGS"

// Deployment variables honoured without the prefix.
const (
	EnvPort         = "PORT"
	EnvFrontendURL  = "FRONTEND_URL"
	EnvSECUserAgent = "SEC_USER_AGENT"
)

// Defaults.
const (
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 3001
	DefaultCORSOrigin     = "http://localhost:3000"
	DefaultUserAgent      = "SEC Filings Search (open-source-project)"
	DefaultTickersURL     = "https://www.sec.gov/files/company_tickers.json"
	DefaultSubmissionsURL = "https://data.sec.gov/submissions"
	DefaultFeedURL        = "https://www.sec.gov/cgi-bin/browse-edgar"
	DefaultTimeoutSec     = 30
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)

// Config represents the complete application configuration.
type Config struct {
	API     APIConfig     `mapstructure:"api"     yaml:"api"`
	SEC     SECConfig     `mapstructure:"sec"     yaml:"sec"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig holds HTTP server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// Addr returns the listen address.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// SECConfig holds upstream EDGAR settings.
type SECConfig struct {
	UserAgent      string `mapstructure:"user_agent"      yaml:"user_agent"` // sent on every EDGAR request
	TickersURL     string `mapstructure:"tickers_url"     yaml:"tickers_url"`
	SubmissionsURL string `mapstructure:"submissions_url" yaml:"submissions_url"`
	FeedURL        string `mapstructure:"feed_url"        yaml:"feed_url"` // current filings Atom feed
	TimeoutSec     int    `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
}

// Timeout returns the upstream request timeout.
func (c SECConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.secfilings/config.yaml (home directory)
//  3. /etc/secfilings/config.yaml (system)
//
// A .env file in the working directory is loaded first; it never replaces
// variables already set in the process environment.
// Environment variables override config file values.
// Format: SECFILINGS_<SECTION>_<KEY>, e.g., SECFILINGS_SEC_USER_AGENT
func Load() (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".secfilings"))
	v.AddConfigPath("/etc/secfilings")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return decode(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	return decode(v)
}

// LoadDotEnv loads the given .env files, or ./.env when none are named.
// Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("error loading %s: %w", p, err)
		}
	}
	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := overrideFromEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults sets defaults for all config values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("api.host", DefaultHost)
	v.SetDefault("api.port", DefaultPort)
	v.SetDefault("api.cors_origins", []string{DefaultCORSOrigin})

	v.SetDefault("sec.user_agent", DefaultUserAgent)
	v.SetDefault("sec.tickers_url", DefaultTickersURL)
	v.SetDefault("sec.submissions_url", DefaultSubmissionsURL)
	v.SetDefault("sec.feed_url", DefaultFeedURL)
	v.SetDefault("sec.timeout_sec", DefaultTimeoutSec)

	v.SetDefault("logging.level", DefaultLogLevel)
	v.SetDefault("logging.format", DefaultLogFormat)
}

// overrideFromEnv applies the unprefixed deployment variables.
func overrideFromEnv(cfg *Config) error {
	if p := os.Getenv(EnvPort); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil || port <= 0 || port > 65535 {
			return fmt.Errorf("invalid %s %q", EnvPort, p)
		}
		cfg.API.Port = port
	}
	if origin := strings.TrimRight(os.Getenv(EnvFrontendURL), "/"); origin != "" {
		if !slices.Contains(cfg.API.CORSOrigins, origin) {
			cfg.API.CORSOrigins = append(cfg.API.CORSOrigins, origin)
		}
	}
	if ua := os.Getenv(EnvSECUserAgent); ua != "" {
		cfg.SEC.UserAgent = ua
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
