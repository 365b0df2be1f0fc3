// Package config provides configuration management functionality for the imeswitch application.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/connorhough/imeswitch/internal/profile"
	"github.com/connorhough/imeswitch/internal/tsf"
	"github.com/spf13/viper"
)

// Configuration keys
const (
	KeyLogLevel      = "log_level"
	KeyActivateFlags = "activate_flags"
)

// AppName names the config directory and the environment prefix.
const AppName = "imeswitch"

// GetValue retrieves a configuration value by key
func GetValue(key string) (string, error) {
	if !viper.IsSet(key) {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}
	return viper.GetString(key), nil
}

// SetValue sets a configuration value by key and persists it to the config file
func SetValue(key string, value string) error {
	viper.Set(key, value)
	return viper.WriteConfig()
}

// SwitchConfig holds what a switch needs from configuration.
type SwitchConfig struct {
	Table profile.Table
	Flags tsf.ActivateFlags
}

// ResolveSwitchConfig builds the profile table and activation flags from
// the global configuration.
// Flags are handled separately in command layer
func ResolveSwitchConfig() (*SwitchConfig, error) {
	table, err := profile.LoadTable(viper.GetViper())
	if err != nil {
		return nil, err
	}

	flags, err := tsf.ParseActivateFlags(viper.GetString(KeyActivateFlags))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", KeyActivateFlags, err)
	}

	return &SwitchConfig{Table: table, Flags: flags}, nil
}

// ApplyFlags applies flag overrides to config (called from command layer)
func (c *SwitchConfig) ApplyFlags(activateFlag string) error {
	if activateFlag == "" {
		return nil
	}
	flags, err := tsf.ParseActivateFlags(activateFlag)
	if err != nil {
		return err
	}
	c.Flags = flags
	return nil
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "", "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelWarn, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
	}
}

// DefaultPath returns the config file location used when none is given:
// $XDG_CONFIG_HOME/imeswitch/config.yaml, or ~/.config/imeswitch/config.yaml.
func DefaultPath() (string, error) {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return filepath.Join(xdgConfigHome, AppName, "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, ".config", AppName, "config.yaml"), nil
}
