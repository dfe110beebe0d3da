package config

import (
	"testing"
	"time"

	"nordvpn-indicator/common"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.ClientPath != common.DefaultClientCommand {
		t.Errorf("ClientPath = %q, want %q", cfg.ClientPath, common.DefaultClientCommand)
	}
	if cfg.RefreshInterval() != common.DefaultRefreshInterval {
		t.Errorf("RefreshInterval() = %v, want %v", cfg.RefreshInterval(), common.DefaultRefreshInterval)
	}
	if !cfg.ShowNotifications || !cfg.EnableHistory {
		t.Error("notifications and history should default to enabled")
	}
	if cfg.Theme != "auto" {
		t.Errorf("Theme = %q, want auto", cfg.Theme)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		interval time.Duration
		theme    string
	}{
		{"zero values", Config{}, common.DefaultRefreshInterval, "auto"},
		{"too fast", Config{RefreshIntervalSeconds: 1, Theme: "dark"}, common.DefaultRefreshInterval, "dark"},
		{"valid", Config{RefreshIntervalSeconds: 30, Theme: "light"}, 30 * time.Second, "light"},
		{"bad theme", Config{RefreshIntervalSeconds: 10, Theme: "neon"}, 10 * time.Second, "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.validate()

			if cfg.ClientPath == "" {
				t.Error("validate should fill in the client path")
			}
			if cfg.RefreshInterval() != tt.interval {
				t.Errorf("RefreshInterval() = %v, want %v", cfg.RefreshInterval(), tt.interval)
			}
			if cfg.Theme != tt.theme {
				t.Errorf("Theme = %q, want %q", cfg.Theme, tt.theme)
			}
		})
	}
}
