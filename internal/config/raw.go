package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawDBusConfig struct {
	Enabled *bool   `yaml:"enabled"`
	Name    *string `yaml:"name"`
}

// RawConfig mirrors the YAML file. A nil field means the key was absent and
// the default (or an earlier include) stays in effect.
type RawConfig struct {
	Include              IncludeList    `yaml:"include"`
	Hotkey               *string        `yaml:"hotkey"`
	IncludeAllWorkspaces *bool          `yaml:"include_all_workspaces"`
	ExcludeAlwaysOnTop   *bool          `yaml:"exclude_always_on_top"`
	AnimationDelay       *int           `yaml:"animation_delay"`
	ShowCountInTooltip   *bool          `yaml:"show_count_in_tooltip"`
	LogLevel             *string        `yaml:"log_level"`
	Display              *string        `yaml:"display"`
	XAuthority           *string        `yaml:"xauthority"`
	ReconcileInterval    *int           `yaml:"reconcile_interval"`
	DBus                 *RawDBusConfig `yaml:"dbus"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.Hotkey != nil {
		out.Hotkey = overlay.Hotkey
	}
	if overlay.IncludeAllWorkspaces != nil {
		out.IncludeAllWorkspaces = overlay.IncludeAllWorkspaces
	}
	if overlay.ExcludeAlwaysOnTop != nil {
		out.ExcludeAlwaysOnTop = overlay.ExcludeAlwaysOnTop
	}
	if overlay.AnimationDelay != nil {
		out.AnimationDelay = overlay.AnimationDelay
	}
	if overlay.ShowCountInTooltip != nil {
		out.ShowCountInTooltip = overlay.ShowCountInTooltip
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.ReconcileInterval != nil {
		out.ReconcileInterval = overlay.ReconcileInterval
	}
	if overlay.DBus != nil {
		if out.DBus == nil {
			out.DBus = &RawDBusConfig{}
		} else {
			copied := *out.DBus
			out.DBus = &copied
		}
		if overlay.DBus.Enabled != nil {
			out.DBus.Enabled = overlay.DBus.Enabled
		}
		if overlay.DBus.Name != nil {
			out.DBus.Name = overlay.DBus.Name
		}
	}

	return out
}
