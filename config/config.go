package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Default endpoints for the hosted backend. Overridable through the config
// file or environment for self-hosted installations.
const (
	DefaultAPIBaseURL     = "http://localhost:7007/api/v1"
	DefaultStorageBaseURL = "https://storage.veracity.tyulyukov.com"
)

// Config structure represents the client configuration
type Config struct {
	API struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"api"`

	Storage struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"storage"`

	Polling struct {
		SessionInterval         string `yaml:"session_interval"`
		PendingRequestsInterval string `yaml:"pending_requests_interval"`
	} `yaml:"polling"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		err = yaml.Unmarshal(file, config)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Default returns a configuration with all defaults applied, bypassing the
// file and environment lookup.
func Default() *Config {
	config := &Config{}
	setDefaults(config)
	return config
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.API.BaseURL = DefaultAPIBaseURL
	config.API.Timeout = "30s"

	config.Storage.BaseURL = DefaultStorageBaseURL

	config.Polling.SessionInterval = "5s"
	config.Polling.PendingRequestsInterval = "30s"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	config.API.BaseURL = GetEnv("VERACITY_API_BASE_URL", config.API.BaseURL)
	config.API.Timeout = GetEnv("VERACITY_API_TIMEOUT", config.API.Timeout)
	config.Storage.BaseURL = GetEnv("VERACITY_STORAGE_BASE_URL", config.Storage.BaseURL)
	config.Polling.SessionInterval = GetEnv("VERACITY_SESSION_POLL_INTERVAL", config.Polling.SessionInterval)
	config.Polling.PendingRequestsInterval = GetEnv("VERACITY_PENDING_POLL_INTERVAL", config.Polling.PendingRequestsInterval)
	config.Logging.Level = GetEnv("VERACITY_LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("VERACITY_LOG_FORMAT", config.Logging.Format)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}

	if !strings.HasPrefix(config.API.BaseURL, "http://") && !strings.HasPrefix(config.API.BaseURL, "https://") {
		return fmt.Errorf("API base URL must be an absolute http(s) URL")
	}

	if _, err := time.ParseDuration(config.API.Timeout); err != nil {
		return fmt.Errorf("invalid API timeout format: %w", err)
	}

	if _, err := time.ParseDuration(config.Polling.SessionInterval); err != nil {
		return fmt.Errorf("invalid session poll interval format: %w", err)
	}

	if _, err := time.ParseDuration(config.Polling.PendingRequestsInterval); err != nil {
		return fmt.Errorf("invalid pending requests poll interval format: %w", err)
	}

	return nil
}

// APITimeout returns the parsed API timeout.
func (c *Config) APITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// SessionPollInterval returns the parsed membership-status poll interval.
func (c *Config) SessionPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Polling.SessionInterval)
	if err != nil {
		return 5 * time.Second
	}
	return d
}

// PendingRequestsPollInterval returns the parsed pending connection
// requests poll interval.
func (c *Config) PendingRequestsPollInterval() time.Duration {
	d, err := time.ParseDuration(c.Polling.PendingRequestsInterval)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
