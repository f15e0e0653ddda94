package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kastheco/chartdesk/log"
	"github.com/kastheco/chartdesk/nav"
)

const (
	ConfigFileName     = "config.json"
	NavigationFileName = "navigation.toml"
	HistoryFileName    = "history.db"
)

// GetConfigDir returns the path to the application's configuration directory,
// ~/.config/chartdesk/.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "chartdesk"), nil
}

// Config represents the application configuration
type Config struct {
	// DefaultLayout is the shell the console starts in: "sidebar" or "topbar".
	DefaultLayout string `json:"default_layout"`
	// ResizeDebounceMs is the trailing delay (ms) before the top bar
	// re-partitions its entries after a resize.
	ResizeDebounceMs int `json:"resize_debounce_ms"`
	// HoverGraceMs is how long (ms) a dropdown stays open after the pointer
	// leaves it. Zero closes immediately.
	HoverGraceMs *int `json:"hover_grace_ms,omitempty"`
	// NavigationFile overrides the location of navigation.toml.
	NavigationFile string `json:"navigation_file,omitempty"`
	// HistoryEnabled controls whether navigation events are recorded.
	// Defaults to true when not set.
	HistoryEnabled *bool `json:"history_enabled,omitempty"`
	// TelemetryEnabled controls whether crash reporting via Sentry is active.
	// Defaults to true when not set.
	TelemetryEnabled *bool `json:"telemetry_enabled,omitempty"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	trueVal := true
	grace := int(nav.DefaultHoverGrace / time.Millisecond)
	return &Config{
		DefaultLayout:    nav.ModeSidebar.String(),
		ResizeDebounceMs: int(nav.DefaultResizeDebounce / time.Millisecond),
		HoverGraceMs:     &grace,
		HistoryEnabled:   &trueVal,
	}
}

// Layout parses DefaultLayout, falling back to the sidebar.
func (c *Config) Layout() nav.LayoutMode {
	if c.DefaultLayout == "" {
		return nav.ModeSidebar
	}
	mode, err := nav.ParseLayoutMode(c.DefaultLayout)
	if err != nil {
		log.WarningLog.Printf("config: %v, using sidebar", err)
		return nav.ModeSidebar
	}
	return mode
}

// ResizeDebounce returns the resize debounce delay.
func (c *Config) ResizeDebounce() time.Duration {
	if c.ResizeDebounceMs <= 0 {
		return nav.DefaultResizeDebounce
	}
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// HoverGrace returns the dropdown close grace. An explicit zero disables it.
func (c *Config) HoverGrace() time.Duration {
	if c.HoverGraceMs == nil || *c.HoverGraceMs < 0 {
		return nav.DefaultHoverGrace
	}
	return time.Duration(*c.HoverGraceMs) * time.Millisecond
}

// IsHistoryEnabled returns whether navigation history is recorded.
func (c *Config) IsHistoryEnabled() bool {
	if c.HistoryEnabled == nil {
		return true
	}
	return *c.HistoryEnabled
}

// IsTelemetryEnabled returns whether Sentry telemetry is enabled.
// Defaults to true when the field is not set.
func (c *Config) IsTelemetryEnabled() bool {
	if c.TelemetryEnabled == nil {
		return true
	}
	return *c.TelemetryEnabled
}

// NavigationPath returns the navigation file to load: NavigationFile when
// set, otherwise navigation.toml in the config directory.
func (c *Config) NavigationPath() (string, error) {
	if c.NavigationFile != "" {
		return c.NavigationFile, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, NavigationFileName), nil
}

// HistoryPath returns the sqlite database used for navigation history.
func HistoryPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, HistoryFileName), nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		log.ErrorLog.Printf("failed to parse config file: %v", err)
		return DefaultConfig()
	}
	return &config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
