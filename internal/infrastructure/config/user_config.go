package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig represents traveller preferences stored in ~/.starroute/config.json.
// Only defaults for CLI flags live here, never graph state.
type UserConfig struct {
	// Fuel used by travel commands when --fuel is not given
	DefaultFuel *float64 `json:"default_fuel,omitempty"`

	// Month used by travel commands when --month is not given
	DefaultMonth string `json:"default_month,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler rooted at dir, or at
// ~/.starroute when dir is empty
func NewUserConfigHandler(dir string) (*UserConfigHandler, error) {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(homeDir, ".starroute")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(dir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var cfg UserConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &cfg, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(cfg *UserConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultFuel stores the fuel used when a travel command omits it
func (h *UserConfigHandler) SetDefaultFuel(fuel float64) error {
	if fuel < 0 {
		return fmt.Errorf("default fuel cannot be negative: %g", fuel)
	}
	cfg, err := h.Load()
	if err != nil {
		return err
	}

	cfg.DefaultFuel = &fuel
	return h.Save(cfg)
}

// SetDefaultMonth stores the month used when a travel command omits it
func (h *UserConfigHandler) SetDefaultMonth(month string) error {
	cfg, err := h.Load()
	if err != nil {
		return err
	}

	cfg.DefaultMonth = month
	return h.Save(cfg)
}

// Clear removes every stored default
func (h *UserConfigHandler) Clear() error {
	return h.Save(&UserConfig{})
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
