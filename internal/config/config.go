package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/zgpcy/stopwatch/internal/logger"
	"gopkg.in/yaml.v3"
)

// Configuration validation constants
const (
	MinPort            = 1     // Minimum valid port number
	MaxPort            = 65535 // Maximum valid port number
	MaxShutdownTimeout = 300   // Maximum graceful shutdown timeout in seconds

	// Default values
	DefaultHTTPPort        = 8080
	DefaultLogLevel        = "info"
	DefaultShutdownTimeout = 30 // seconds
)

// Config represents the application configuration
type Config struct {
	HTTPPort        int    `yaml:"http_port"`
	LogLevel        string `yaml:"log_level"`
	Autostart       bool   `yaml:"autostart"`        // start the stopwatch on boot
	ShutdownTimeout int    `yaml:"shutdown_timeout"` // seconds
}

// Default returns a configuration with only defaults and environment overrides applied
func Default() (*Config, error) {
	var cfg Config
	return finish(&cfg)
}

// Load loads configuration from a YAML file and applies environment variable overrides
func Load(path string) (*Config, error) {
	// #nosec G304 -- Config file path is provided by administrator via CLI flag, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(&cfg)
}

// LoadOrDefault behaves like Load but falls back to Default when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default()
	}
	return cfg, err
}

func finish(cfg *Config) (*Config, error) {
	applyDefaults(cfg)

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("environment variable error: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// applyDefaults sets default values for configuration
func applyDefaults(cfg *Config) {
	if cfg.HTTPPort == 0 {
		cfg.HTTPPort = DefaultHTTPPort
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// applyEnvOverrides applies environment variable overrides to configuration
func applyEnvOverrides(cfg *Config) error {
	if val := os.Getenv("STOPWATCH_HTTP_PORT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid STOPWATCH_HTTP_PORT: must be an integer, got %q", val)
		}
		cfg.HTTPPort = i
	}

	if val := os.Getenv("STOPWATCH_LOG_LEVEL"); val != "" {
		cfg.LogLevel = val
	}

	if val := os.Getenv("STOPWATCH_AUTOSTART"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid STOPWATCH_AUTOSTART: must be a boolean, got %q", val)
		}
		cfg.Autostart = b
	}

	if val := os.Getenv("STOPWATCH_SHUTDOWN_TIMEOUT"); val != "" {
		i, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid STOPWATCH_SHUTDOWN_TIMEOUT: must be an integer, got %q", val)
		}
		cfg.ShutdownTimeout = i
	}

	return nil
}

// validate validates the configuration
func validate(cfg *Config) error {
	if cfg.HTTPPort < MinPort || cfg.HTTPPort > MaxPort {
		return fmt.Errorf("http_port must be between %d and %d", MinPort, MaxPort)
	}

	if !logger.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got %d", cfg.ShutdownTimeout)
	}

	if cfg.ShutdownTimeout > MaxShutdownTimeout {
		return fmt.Errorf("shutdown_timeout should not exceed %d seconds, got %d", MaxShutdownTimeout, cfg.ShutdownTimeout)
	}

	return nil
}
