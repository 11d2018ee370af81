package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given YAML-like path and its source.
//
// Supported paths:
//
//	hotkey
//	include_all_workspaces
//	exclude_always_on_top
//	animation_delay
//	show_count_in_tooltip
//	log_level
//	display
//	xauthority
//	reconcile_interval
//	dbus
//	dbus.enabled
//	dbus.name
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	if parts[0] != "dbus" && len(parts) != 1 {
		return nil, fmt.Errorf("unknown path: %s", path)
	}

	switch parts[0] {
	case "hotkey":
		return cfg.Hotkey, nil
	case "include_all_workspaces":
		return cfg.IncludeAllWorkspaces, nil
	case "exclude_always_on_top":
		return cfg.ExcludeAlwaysOnTop, nil
	case "animation_delay":
		return cfg.AnimationDelay, nil
	case "show_count_in_tooltip":
		return cfg.ShowCountInTooltip, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "reconcile_interval":
		return cfg.ReconcileInterval, nil
	case "dbus":
		if len(parts) == 1 {
			return cfg.DBus, nil
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		switch parts[1] {
		case "enabled":
			return cfg.DBus.Enabled, nil
		case "name":
			return cfg.DBus.Name, nil
		default:
			return nil, fmt.Errorf("unknown path: %s", path)
		}
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
