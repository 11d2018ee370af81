package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/1broseidon/showdesk/internal/toggle"
)

const (
	DefaultHotkey            = "Mod4-d"
	DefaultAnimationDelay    = 35
	MaxAnimationDelay        = 1000
	DefaultReconcileInterval = 5
	DefaultDBusName          = "io.github.showdesk"
)

// DBusConfig controls the session bus service.
type DBusConfig struct {
	Enabled bool   `yaml:"enabled"`
	Name    string `yaml:"name"`
}

// Config holds the application configuration.
//
// Hotkey toggles the desktop; empty disables the global binding.
// AnimationDelay is the pause between windows in milliseconds, 0 acts on
// every window at once. ReconcileInterval is how often, in seconds, vanished
// windows are dropped from the restore set; 0 disables it.
type Config struct {
	Hotkey               string     `yaml:"hotkey"`
	IncludeAllWorkspaces bool       `yaml:"include_all_workspaces"`
	ExcludeAlwaysOnTop   bool       `yaml:"exclude_always_on_top"`
	AnimationDelay       int        `yaml:"animation_delay"`
	ShowCountInTooltip   bool       `yaml:"show_count_in_tooltip"`
	LogLevel             string     `yaml:"log_level"`
	Display              string     `yaml:"display,omitempty"`
	XAuthority           string     `yaml:"xauthority,omitempty"`
	ReconcileInterval    int        `yaml:"reconcile_interval"`
	DBus                 DBusConfig `yaml:"dbus"`
}

func DefaultConfig() *Config {
	return &Config{
		Hotkey:             DefaultHotkey,
		AnimationDelay:     DefaultAnimationDelay,
		ShowCountInTooltip: true,
		LogLevel:           "info",
		ReconcileInterval:  DefaultReconcileInterval,
		DBus: DBusConfig{
			Enabled: true,
			Name:    DefaultDBusName,
		},
	}
}

// Options resolves the per-toggle option set.
func (c *Config) Options() toggle.Options {
	scope := toggle.ScopeCurrentWorkspace
	if c.IncludeAllWorkspaces {
		scope = toggle.ScopeAllWorkspaces
	}
	return toggle.Options{
		Scope:        scope,
		ExcludeAbove: c.ExcludeAlwaysOnTop,
		Delay:        time.Duration(c.AnimationDelay) * time.Millisecond,
		ShowCount:    c.ShowCountInTooltip,
	}
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if strings.ContainsAny(c.Hotkey, " \t") {
		return &ValidationError{Path: "hotkey", Err: fmt.Errorf("hotkey must not contain whitespace (use e.g. Mod4-d)")}
	}
	if c.AnimationDelay < 0 || c.AnimationDelay > MaxAnimationDelay {
		return &ValidationError{Path: "animation_delay", Err: fmt.Errorf("animation_delay must be between 0 and %d", MaxAnimationDelay)}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.ReconcileInterval < 0 {
		return &ValidationError{Path: "reconcile_interval", Err: fmt.Errorf("reconcile_interval must be >= 0")}
	}
	if c.DBus.Enabled {
		if err := validateBusName(c.DBus.Name); err != nil {
			return &ValidationError{Path: "dbus.name", Err: err}
		}
	}
	return nil
}

// validateBusName checks D-Bus well-known name rules: at
// least two dot separated elements of [A-Za-z0-9_-], none starting with a
// digit, 255 bytes max.
func validateBusName(name string) error {
	if name == "" {
		return fmt.Errorf("bus name is required when dbus is enabled")
	}
	if len(name) > 255 {
		return fmt.Errorf("bus name must be at most 255 characters")
	}
	elements := strings.Split(name, ".")
	if len(elements) < 2 {
		return fmt.Errorf("bus name %q must have at least two elements", name)
	}
	for _, el := range elements {
		if el == "" {
			return fmt.Errorf("bus name %q has an empty element", name)
		}
		if el[0] >= '0' && el[0] <= '9' {
			return fmt.Errorf("bus name element %q must not start with a digit", el)
		}
		for _, r := range el {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			default:
				return fmt.Errorf("bus name %q contains invalid character %q", name, r)
			}
		}
	}
	return nil
}
