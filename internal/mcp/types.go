package mcp

// ToggleDesktopInput is the input for the toggle_desktop tool.
type ToggleDesktopInput struct{}

// ToggleDesktopOutput is the output for the toggle_desktop tool.
type ToggleDesktopOutput struct {
	Outcome      string `json:"outcome" jsonschema:"What the toggle did: minimizing, restoring, empty, busy or inactive"`
	PendingCount int    `json:"pending_count" jsonschema:"Windows that the next toggle will restore"`
	Tooltip      string `json:"tooltip"`
}

// DesktopStatusInput is the input for the desktop_status tool.
type DesktopStatusInput struct{}

// DesktopStatusOutput is the output for the desktop_status tool.
type DesktopStatusOutput struct {
	Enabled        bool   `json:"enabled"`
	PendingRestore bool   `json:"pending_restore" jsonschema:"True when the next toggle restores windows"`
	PendingCount   int    `json:"pending_count"`
	Running        bool   `json:"running" jsonschema:"True while a staggered minimize or restore is in progress"`
	Action         string `json:"action,omitempty"`
	Scope          string `json:"scope"`
	IconName       string `json:"icon_name"`
	Tooltip        string `json:"tooltip"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
}

// SetEnabledInput is the input for the set_desktop_toggle_enabled tool.
type SetEnabledInput struct {
	Enabled bool `json:"enabled" jsonschema:"False drops the current session; windows stay as they are"`
}
