// Package config provides configuration management for NordVPN Indicator.
// It handles loading, saving, and validating application settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"nordvpn-indicator/common"
)

// Config represents the application configuration.
// All settings are persisted to a YAML file in the user's config directory.
type Config struct {
	// ClientPath is the command used to invoke the external VPN client.
	ClientPath string `yaml:"client_path"`
	// RefreshIntervalSeconds is how often the tray re-checks the VPN status.
	RefreshIntervalSeconds int `yaml:"refresh_interval_seconds"`
	// ShowNotifications enables desktop notifications for connection events.
	ShowNotifications bool `yaml:"show_notifications"`
	// EnableHistory records connection events in a local database.
	EnableHistory bool `yaml:"enable_history"`
	// Theme selects the GTK theme preference: "auto", "light" or "dark".
	Theme string `yaml:"theme"`
}

// DefaultConfig returns the default configuration.
// These are sensible defaults for most users.
func DefaultConfig() *Config {
	return &Config{
		ClientPath:             common.DefaultClientCommand,
		RefreshIntervalSeconds: int(common.DefaultRefreshInterval / time.Second),
		ShowNotifications:      true,
		EnableHistory:          true,
		Theme:                  "auto",
	}
}

// RefreshInterval returns the refresh interval as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSeconds) * time.Second
}

// Load loads the configuration from the config file.
// If the file doesn't exist, it creates one with default values.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	// If it doesn't exist, persist and return the defaults.
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("error opening configuration: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true) // Strict validation: reject unknown fields

	var config Config
	if err := decoder.Decode(&config); err != nil {
		return nil, fmt.Errorf("error parsing configuration: %w", err)
	}

	config.validate()

	return &config, nil
}

// validate replaces out-of-range values with defaults.
func (c *Config) validate() {
	if c.ClientPath == "" {
		c.ClientPath = common.DefaultClientCommand
	}
	if time.Duration(c.RefreshIntervalSeconds)*time.Second < common.MinRefreshInterval {
		c.RefreshIntervalSeconds = int(common.DefaultRefreshInterval / time.Second)
	}
	switch c.Theme {
	case "auto", "light", "dark":
	default:
		c.Theme = "auto"
	}
}

// Save saves the configuration to the file.
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("error serializing configuration: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("error saving configuration: %w", err)
	}

	return nil
}

func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", common.ConfigDirName, common.ConfigFileName), nil
}
