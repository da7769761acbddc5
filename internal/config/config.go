// Package config handles service configuration loading and management.
package config

import "time"

// Config holds all meshconv settings.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Convert ConvertConfig `yaml:"convert"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	MaxUploadMiB    int           `yaml:"max_upload_mib"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects where conversion artifacts are kept.
type StorageConfig struct {
	// Type is "memory" or "disk".
	Type string `yaml:"type"`
	// Dir is the artifact directory for disk storage.
	Dir string `yaml:"dir"`
}

// ConvertConfig holds conversion defaults.
type ConvertConfig struct {
	// DefaultMethod is used when an upload does not select one.
	DefaultMethod string `yaml:"default_method"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxUploadMiB:    10,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			Type: "memory",
		},
		Convert: ConvertConfig{
			DefaultMethod: "library",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
