/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ssargent/memod/pkg/logger"
)

// Config represents the memod configuration
type Config struct {
	Port     int      `yaml:"port" mapstructure:"port"`
	Bind     string   `yaml:"bind" mapstructure:"bind"`
	Security Security `yaml:"security" mapstructure:"security"`
	Logging  Logging  `yaml:"logging" mapstructure:"logging"`
	Metrics  Metrics  `yaml:"metrics" mapstructure:"metrics"`
	Server   Server   `yaml:"server" mapstructure:"server"`
}

// Security contains security-related configuration
type Security struct {
	ClientAPIKey string `yaml:"client_api_key" mapstructure:"client_api_key"`
	RequireAuth  bool   `yaml:"require_auth" mapstructure:"require_auth"`
}

// Logging contains logging configuration
type Logging struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Metrics contains Prometheus configuration
type Metrics struct {
	Enabled        bool          `yaml:"enabled" mapstructure:"enabled"`
	UpdateInterval time.Duration `yaml:"update_interval" mapstructure:"update_interval"`
}

// Server contains HTTP server timeouts
type Server struct {
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Port: 8080,
		Bind: "127.0.0.1",
		Security: Security{
			ClientAPIKey: "",
			RequireAuth:  false,
		},
		Logging: Logging{
			Level: "info",
		},
		Metrics: Metrics{
			Enabled:        true,
			UpdateInterval: 30 * time.Second,
		},
		Server: Server{
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
	}
}

// Address returns the host:port the server listens on
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Bind, c.Port)
}

// Validate checks the configuration for values the server cannot start with
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := logger.ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	if c.Security.RequireAuth && c.Security.ClientAPIKey == "" {
		return errors.New("security.client_api_key is required when security.require_auth is enabled")
	}
	if c.Metrics.Enabled && c.Metrics.UpdateInterval <= 0 {
		return fmt.Errorf("invalid metrics update interval %s", c.Metrics.UpdateInterval)
	}
	return nil
}

// LoadConfig loads configuration from the specified path
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// envBindings maps config keys to the environment variables that can override them.
var envBindings = map[string][]string{
	"port":                    {"MEMOD_PORT"},
	"bind":                    {"MEMOD_BIND"},
	"security.client_api_key": {"MEMOD_CLIENT_API_KEY", "MEMOD_API_KEY"},
	"security.require_auth":   {"MEMOD_REQUIRE_AUTH"},
	"logging.level":           {"MEMOD_LOG_LEVEL"},
	"metrics.enabled":         {"MEMOD_METRICS_ENABLED"},
	"metrics.update_interval": {"MEMOD_METRICS_UPDATE_INTERVAL"},
	"server.read_timeout":     {"MEMOD_READ_TIMEOUT"},
	"server.write_timeout":    {"MEMOD_WRITE_TIMEOUT"},
	"server.shutdown_timeout": {"MEMOD_SHUTDOWN_TIMEOUT"},
}

// LoadWithEnv loads the config file at configPath (if it exists) and applies
// MEMOD_* environment overrides on top. Missing files fall back to defaults.
func LoadWithEnv(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	if err := bindEnvs(v); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configPath != "" && ConfigExists(configPath) {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("port", c.Port)
	v.SetDefault("bind", c.Bind)
	v.SetDefault("security.client_api_key", c.Security.ClientAPIKey)
	v.SetDefault("security.require_auth", c.Security.RequireAuth)
	v.SetDefault("logging.level", c.Logging.Level)
	v.SetDefault("metrics.enabled", c.Metrics.Enabled)
	v.SetDefault("metrics.update_interval", c.Metrics.UpdateInterval)
	v.SetDefault("server.read_timeout", c.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", c.Server.WriteTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
}

func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		inputs := slices.Insert(slices.Clone(envs), 0, key)
		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}
	return nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file carries the client API key
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated client API key
// and authentication turned on, and saves it to configPath.
func BootstrapConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	clientAPIKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate client API key: %w", err)
	}
	config.Security.ClientAPIKey = clientAPIKey
	config.Security.RequireAuth = true

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./memod.yaml"
	}

	// For Linux/macOS, use ~/.config/memod/config.yaml
	configDir := filepath.Join(homeDir, ".config", "memod")
	return filepath.Join(configDir, "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
