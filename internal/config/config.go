// Copyright (c) 2026 WSO2 LLC. (https://www.wso2.com).
//
// WSO2 LLC. licenses this file to you under the Apache License,
// Version 2.0 (the "License"); you may not use this file except
// in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Package config provides configuration management for the QR code application.
// Values start from defaults, are overlaid by an optional YAML file and finally by
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	PortKey            = "PORT"
	ReadTimeoutKey     = "READ_TIMEOUT"
	WriteTimeoutKey    = "WRITE_TIMEOUT"
	ShutdownTimeoutKey = "SHUTDOWN_TIMEOUT"
	MaxBodySizeKey     = "MAX_BODY_SIZE"
	MinSizeKey         = "MIN_SIZE"
	MaxSizeKey         = "MAX_SIZE"
	DefaultSizeKey     = "DEFAULT_SIZE"

	WebPortKey          = "WEB_PORT"
	BackendAddressKey   = "BACKEND_ADDRESS"
	WebClientTimeoutKey = "WEB_CLIENT_TIMEOUT"
)

// Config holds application configuration for both the REST service and the web application.
type Config struct {
	Port            string   `yaml:"port"`
	ReadTimeout     Duration `yaml:"read_timeout"`
	WriteTimeout    Duration `yaml:"write_timeout"`
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`
	MaxBodySize     int64    `yaml:"max_body_size"`
	MinSize         int      `yaml:"min_size"`
	MaxSize         int      `yaml:"max_size"`
	DefaultSize     int      `yaml:"default_size"`

	Web WebConfig `yaml:"web"`
}

// WebConfig holds settings of the HTML front end and its backend client.
type WebConfig struct {
	Port           string   `yaml:"port"`
	BackendAddress string   `yaml:"backend_address"`
	ClientTimeout  Duration `yaml:"client_timeout"`
}

// Duration wraps time.Duration so it can be written as "5s" or "1m" in YAML.
type Duration struct {
	time.Duration
}

// UnmarshalYAML implements the yaml.Unmarshaler interface for Duration.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	d.Duration = parsed
	return nil
}

// MarshalYAML implements the yaml.Marshaler interface for Duration.
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		Port:            "8080",
		ReadTimeout:     Duration{5 * time.Second},
		WriteTimeout:    Duration{10 * time.Second},
		ShutdownTimeout: Duration{5 * time.Second},
		MaxBodySize:     524288,
		MinSize:         100,
		MaxSize:         500,
		DefaultSize:     300,
		Web: WebConfig{
			Port:           "8081",
			BackendAddress: "http://localhost:8080",
			ClientTimeout:  Duration{10 * time.Second},
		},
	}
}

// LoadConfig builds the configuration from defaults, the YAML file at path (skipped when
// path is empty or the file does not exist) and environment variable overrides.
func LoadConfig(path string, logger *zap.Logger) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
			logger.Debug("Config file not found, using defaults", zap.String("path", path))
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
			logger.Info("Config file loaded", zap.String("path", path))
		}
	}

	applyEnvOverrides(cfg, logger)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the cross-field constraints of the configuration.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("%s must not be empty", PortKey)
	}
	if c.Web.Port == "" {
		return fmt.Errorf("%s must not be empty", WebPortKey)
	}
	if c.Web.BackendAddress == "" {
		return fmt.Errorf("%s must not be empty", BackendAddressKey)
	}
	if c.MinSize <= 0 || c.MinSize > c.MaxSize {
		return fmt.Errorf("invalid size bounds: min %d, max %d", c.MinSize, c.MaxSize)
	}
	if c.DefaultSize < c.MinSize || c.DefaultSize > c.MaxSize {
		return fmt.Errorf("default size %d must be between %d and %d", c.DefaultSize, c.MinSize, c.MaxSize)
	}
	if c.MaxBodySize <= 0 {
		return fmt.Errorf("%s must be > 0", MaxBodySizeKey)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
func applyEnvOverrides(cfg *Config, logger *zap.Logger) {
	cfg.Port = getEnv(PortKey, cfg.Port)
	cfg.ReadTimeout.Duration = getEnvDuration(logger, ReadTimeoutKey, cfg.ReadTimeout.Duration)
	cfg.WriteTimeout.Duration = getEnvDuration(logger, WriteTimeoutKey, cfg.WriteTimeout.Duration)
	cfg.ShutdownTimeout.Duration = getEnvDuration(logger, ShutdownTimeoutKey, cfg.ShutdownTimeout.Duration)
	cfg.MaxBodySize = getEnvInt64(logger, MaxBodySizeKey, cfg.MaxBodySize)
	cfg.MinSize = getEnvInt(logger, MinSizeKey, cfg.MinSize)
	cfg.MaxSize = getEnvInt(logger, MaxSizeKey, cfg.MaxSize)
	cfg.DefaultSize = getEnvInt(logger, DefaultSizeKey, cfg.DefaultSize)

	cfg.Web.Port = getEnv(WebPortKey, cfg.Web.Port)
	cfg.Web.BackendAddress = getEnv(BackendAddressKey, cfg.Web.BackendAddress)
	cfg.Web.ClientTimeout.Duration = getEnvDuration(logger, WebClientTimeoutKey, cfg.Web.ClientTimeout.Duration)
}

// getEnv retrieves a string environment variable or returns fallback if not set.
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvDuration retrieves a positive duration environment variable or returns fallback.
func getEnvDuration(logger *zap.Logger, key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		logger.Warn(fmt.Sprintf("Invalid %s, using default", key),
			zap.String("value", value),
			zap.Duration("default", fallback),
			zap.Error(err))
		return fallback
	}
	return d
}

// getEnvInt retrieves an int environment variable or returns fallback (only accepts positive values).
func getEnvInt(logger *zap.Logger, key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil || i <= 0 {
		logger.Warn(fmt.Sprintf("Invalid %s, using default", key),
			zap.String("value", value),
			zap.Int("default", fallback),
			zap.Error(err))
		return fallback
	}
	return i
}

// getEnvInt64 retrieves an int64 environment variable or returns fallback (only accepts positive values).
func getEnvInt64(logger *zap.Logger, key string, fallback int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	i, err := strconv.ParseInt(value, 10, 64)
	if err != nil || i <= 0 {
		logger.Warn(fmt.Sprintf("Invalid %s, using default", key),
			zap.String("value", value),
			zap.Int64("default", fallback),
			zap.Error(err))
		return fallback
	}
	return i
}
