// Package config loads exdiff settings from the environment and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix prefixes every environment variable, e.g. EXDIFF_SERVER_PORT.
const EnvPrefix = "EXDIFF"

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server" envconfig:"SERVER"`
	Logging LoggingConfig `yaml:"logging" envconfig:"LOGGING"`
	Limits  LimitsConfig  `yaml:"limits" envconfig:"LIMITS"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST" default:"127.0.0.1"`
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"30s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// LimitsConfig bounds uploads
type LimitsConfig struct {
	MaxUploadBytes int64   `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES" default:"33554432" validate:"gt=0"`
	RPS            float64 `yaml:"rps" envconfig:"RPS" default:"10" validate:"gt=0"`
	Burst          int     `yaml:"burst" envconfig:"BURST" default:"20" validate:"gt=0"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads the environment, then fills unset values from the YAML file at
// path when path is not empty. Environment values take precedence.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		fileConfig, err := loadFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// mergeConfigs lets the file override values the environment left at their
// defaults. A variable set explicitly in the environment always wins.
func mergeConfigs(fileConfig, envConfig Config) Config {
	pick := func(key string) bool {
		_, set := os.LookupEnv(EnvPrefix + "_" + key)
		return !set
	}

	if pick("SERVER_HOST") && fileConfig.Server.Host != "" {
		envConfig.Server.Host = fileConfig.Server.Host
	}
	if pick("SERVER_PORT") && fileConfig.Server.Port != 0 {
		envConfig.Server.Port = fileConfig.Server.Port
	}
	if pick("SERVER_READ_TIMEOUT") && fileConfig.Server.ReadTimeout != 0 {
		envConfig.Server.ReadTimeout = fileConfig.Server.ReadTimeout
	}
	if pick("SERVER_WRITE_TIMEOUT") && fileConfig.Server.WriteTimeout != 0 {
		envConfig.Server.WriteTimeout = fileConfig.Server.WriteTimeout
	}
	if pick("SERVER_SHUTDOWN_TIMEOUT") && fileConfig.Server.ShutdownTimeout != 0 {
		envConfig.Server.ShutdownTimeout = fileConfig.Server.ShutdownTimeout
	}
	if pick("LOGGING_LEVEL") && fileConfig.Logging.Level != "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if pick("LOGGING_FORMAT") && fileConfig.Logging.Format != "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if pick("LIMITS_MAX_UPLOAD_BYTES") && fileConfig.Limits.MaxUploadBytes != 0 {
		envConfig.Limits.MaxUploadBytes = fileConfig.Limits.MaxUploadBytes
	}
	if pick("LIMITS_RPS") && fileConfig.Limits.RPS != 0 {
		envConfig.Limits.RPS = fileConfig.Limits.RPS
	}
	if pick("LIMITS_BURST") && fileConfig.Limits.Burst != 0 {
		envConfig.Limits.Burst = fileConfig.Limits.Burst
	}

	return envConfig
}
