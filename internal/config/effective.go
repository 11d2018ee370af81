package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw over the defaults.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.Hotkey != nil {
		cfg.Hotkey = *raw.Hotkey
	}
	if raw.IncludeAllWorkspaces != nil {
		cfg.IncludeAllWorkspaces = *raw.IncludeAllWorkspaces
	}
	if raw.ExcludeAlwaysOnTop != nil {
		cfg.ExcludeAlwaysOnTop = *raw.ExcludeAlwaysOnTop
	}
	if raw.AnimationDelay != nil {
		cfg.AnimationDelay = *raw.AnimationDelay
	}
	if raw.ShowCountInTooltip != nil {
		cfg.ShowCountInTooltip = *raw.ShowCountInTooltip
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = *raw.LogLevel
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		cfg.XAuthority = *raw.XAuthority
	}
	if raw.ReconcileInterval != nil {
		cfg.ReconcileInterval = *raw.ReconcileInterval
	}
	if raw.DBus != nil {
		if raw.DBus.Enabled != nil {
			cfg.DBus.Enabled = *raw.DBus.Enabled
		}
		if raw.DBus.Name != nil {
			cfg.DBus.Name = *raw.DBus.Name
		}
	}

	return cfg, nil
}
