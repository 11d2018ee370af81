// Package mcp exposes the desktop toggle to MCP clients over stdio. It is a
// thin front end over the daemon's IPC socket.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/showdesk/internal/ipc"
)

const (
	ServerName    = "showdesk"
	ServerVersion = "0.1.0"
)

// DaemonClient is the part of the IPC client the tools need.
type DaemonClient interface {
	Toggle() (*ipc.ToggleData, error)
	GetStatus() (*ipc.StatusData, error)
	SetEnabled(enabled bool) error
}

// Server is the MCP server for the desktop toggle.
type Server struct {
	mcpServer *mcpsdk.Server
	client    DaemonClient
}

// NewServer creates a server that forwards tool calls to client.
func NewServer(client DaemonClient) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_desktop",
		Description: "Minimize every eligible window to show the desktop, or restore the windows minimized by the previous call. Returns busy while a staggered run is still in progress.",
	}, s.handleToggleDesktop)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "desktop_status",
		Description: "Report whether windows are waiting to be restored, how many, and the indicator icon and tooltip.",
	}, s.handleDesktopStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_desktop_toggle_enabled",
		Description: "Enable or disable the desktop toggle without stopping the daemon. Disabling forgets which windows were minimized.",
	}, s.handleSetEnabled)
}
