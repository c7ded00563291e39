package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the main configuration structure
type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Capture  CaptureConfig  `yaml:"capture"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ResolverConfig holds the upstream name server settings
type ResolverConfig struct {
	Address   string        `yaml:"address"`    // upstream server, host:port
	Timeout   time.Duration `yaml:"timeout"`    // per-exchange deadline
	QueryType string        `yaml:"query_type"` // default question type: "A", "AAAA", "MX", ...
}

// CaptureConfig holds exchange capture settings
type CaptureConfig struct {
	Backend   string `yaml:"backend"` // "disabled", "memory", "surrealdb"
	Endpoint  string `yaml:"endpoint"`
	Namespace string `yaml:"namespace"`
	Database  string `yaml:"database"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			Address:   "8.8.8.8:53",
			Timeout:   5 * time.Second,
			QueryType: "A",
		},
		Capture: CaptureConfig{
			Backend:   "disabled",
			Namespace: "dnswire",
			Database:  "captures",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(filename, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Resolver.Address == "" {
		return fmt.Errorf("resolver address cannot be empty")
	}

	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver timeout must be positive")
	}

	switch c.Capture.Backend {
	case "disabled", "memory", "surrealdb":
	default:
		return fmt.Errorf("invalid capture backend: %s", c.Capture.Backend)
	}

	if c.Capture.Backend == "surrealdb" && c.Capture.Endpoint == "" {
		return fmt.Errorf("surrealdb capture backend requires an endpoint")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// IsCaptureEnabled returns true if exchange capture is configured
func (c *Config) IsCaptureEnabled() bool {
	return c.Capture.Backend != "disabled"
}
