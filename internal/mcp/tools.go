package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) handleToggleDesktop(_ context.Context, _ *mcpsdk.CallToolRequest, _ ToggleDesktopInput) (*mcpsdk.CallToolResult, ToggleDesktopOutput, error) {
	data, err := s.client.Toggle()
	if err != nil {
		return nil, ToggleDesktopOutput{}, fmt.Errorf("toggle failed: %w", err)
	}

	out := ToggleDesktopOutput{
		Outcome:      data.Outcome,
		PendingCount: data.Status.PendingCount,
		Tooltip:      data.Status.Tooltip,
	}
	return textResult(toggleSummary(out)), out, nil
}

func (s *Server) handleDesktopStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DesktopStatusInput) (*mcpsdk.CallToolResult, DesktopStatusOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, DesktopStatusOutput{}, fmt.Errorf("failed to read status: %w", err)
	}

	out := DesktopStatusOutput{
		Enabled:        st.Enabled,
		PendingRestore: st.PendingRestore,
		PendingCount:   st.PendingCount,
		Running:        st.Running,
		Action:         st.Action,
		Scope:          st.Scope,
		IconName:       st.IconName,
		Tooltip:        st.Tooltip,
		UptimeSeconds:  st.UptimeSeconds,
	}
	return textResult(statusSummary(out)), out, nil
}

func (s *Server) handleSetEnabled(_ context.Context, _ *mcpsdk.CallToolRequest, args SetEnabledInput) (*mcpsdk.CallToolResult, any, error) {
	if err := s.client.SetEnabled(args.Enabled); err != nil {
		return nil, nil, fmt.Errorf("failed to set enabled: %w", err)
	}
	state := "disabled"
	if args.Enabled {
		state = "enabled"
	}
	return textResult("Desktop toggle " + state), nil, nil
}

func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: text},
		},
	}
}

func toggleSummary(out ToggleDesktopOutput) string {
	switch out.Outcome {
	case "minimizing":
		return "Minimizing windows to show the desktop"
	case "restoring":
		return "Restoring minimized windows"
	case "empty":
		return "No windows to minimize"
	case "busy":
		return "A minimize or restore is still running; try again shortly"
	case "inactive":
		return "Desktop toggle is disabled"
	default:
		return "Toggle outcome: " + out.Outcome
	}
}

func statusSummary(out DesktopStatusOutput) string {
	if !out.Enabled {
		return "Desktop toggle is disabled"
	}
	if out.Running {
		return fmt.Sprintf("Running %s (%s)", out.Action, out.Tooltip)
	}
	if out.PendingRestore {
		return out.Tooltip
	}
	return "Desktop not shown; next toggle minimizes windows"
}
