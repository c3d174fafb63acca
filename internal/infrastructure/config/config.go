// Package config loads backend configuration from environment variables.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Logging LogConfig
	Export  ExportConfig
	Restore RestoreConfig
	Storage StorageConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// ExportConfig holds export defaults stamped into documents.
type ExportConfig struct {
	AppVersion string `envconfig:"APP_VERSION" default:"1.0.0"`
	DeviceInfo string `envconfig:"DEVICE_INFO" default:""`
}

// RestoreConfig holds restore pacing configuration.
type RestoreConfig struct {
	IntervalMS int `envconfig:"RESTORE_INTERVAL_MS" default:"200"`
}

// StorageConfig holds filesystem paths for companion artifacts.
type StorageConfig struct {
	DebugLogDir string `envconfig:"DEBUG_LOG_DIR" default:"/tmp/workspace-exports"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns defaults.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8000", Host: "0.0.0.0"},
		Logging: LogConfig{Level: "info", Development: false},
		Export:  ExportConfig{AppVersion: "1.0.0"},
		Restore: RestoreConfig{IntervalMS: 200},
		Storage: StorageConfig{DebugLogDir: "/tmp/workspace-exports"},
	}
}
