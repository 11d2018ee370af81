package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandToggle     CommandType = "TOGGLE"
	CommandGetStatus  CommandType = "GET_STATUS"
	CommandReload     CommandType = "RELOAD"
	CommandSetEnabled CommandType = "SET_ENABLED"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning  bool   `json:"daemon_running"`
	UptimeSeconds  int64  `json:"uptime_seconds"`
	Enabled        bool   `json:"enabled"`
	PendingRestore bool   `json:"pending_restore"`
	PendingCount   int    `json:"pending_count"`
	Running        bool   `json:"running"`
	Action         string `json:"action,omitempty"`
	Scope          string `json:"scope"`
	Hotkey         string `json:"hotkey,omitempty"`
	IconName       string `json:"icon_name"`
	Tooltip        string `json:"tooltip"`
}

// ToggleData represents the data returned by TOGGLE
type ToggleData struct {
	Outcome string     `json:"outcome"`
	Status  StatusData `json:"status"`
}

// SetEnabledPayload represents the payload for SET_ENABLED
type SetEnabledPayload struct {
	Enabled bool `json:"enabled"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	if req.Command == "" {
		return nil, fmt.Errorf("failed to parse request: missing command")
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
