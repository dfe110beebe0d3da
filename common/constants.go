// Package common provides shared constants, types, and utilities
// used across the NordVPN Indicator application.
package common

import "time"

// Application metadata.
const (
	// AppID is the unique identifier for the application.
	AppID = "com.nordvpnindicator.app"
	// AppName is the display name of the application.
	AppName = "NordVPN Indicator"
	// ConfigDirName is the name of the configuration directory.
	ConfigDirName = "nordvpn-indicator"
)

// File names used by the application.
const (
	ConfigFileName      = "config.yaml"
	HistoryFileName     = "history.db"
	CredentialsFileName = ".credentials"
	LogFileName         = "nordvpn-indicator.log"
)

// Default intervals.
const (
	// DefaultRefreshInterval is how often the tray re-checks the client status.
	DefaultRefreshInterval = 10 * time.Second
	// MinRefreshInterval is the lowest refresh interval the config accepts.
	MinRefreshInterval = 2 * time.Second
	// HistoryRetention is how long connection events are kept.
	HistoryRetention = 90 * 24 * time.Hour
)

// External client defaults.
const (
	// DefaultClientCommand is the external VPN client binary.
	DefaultClientCommand = "nordvpn"
)

// UI constants.
const (
	// TrayIconSize is the size of the system tray icon in pixels.
	TrayIconSize = 22
	// SettingsWindowWidth is the default settings window width.
	SettingsWindowWidth = 460
	// SettingsWindowHeight is the default settings window height.
	SettingsWindowHeight = 520
)
