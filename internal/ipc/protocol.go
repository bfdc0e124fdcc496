package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandGetState       CommandType = "GET_STATE"
	CommandMove           CommandType = "MOVE"
	CommandResize         CommandType = "RESIZE"
	CommandDock           CommandType = "DOCK"
	CommandUndock         CommandType = "UNDOCK"
	CommandToggleMinimize CommandType = "TOGGLE_MINIMIZE"
	CommandReset          CommandType = "RESET"
	CommandReload         CommandType = "RELOAD"
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

// StateData is the panel snapshot returned by GET_STATE.
type StateData struct {
	Docked    string `json:"docked"` // "" when floating
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Minimized bool   `json:"minimized"`
	Dragging  bool   `json:"dragging"`
	Resizing  bool   `json:"resizing"`

	ViewportWidth  int   `json:"viewport_width"`
	ViewportHeight int   `json:"viewport_height"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
}

// MovePayload is the payload for the MOVE command.
type MovePayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ResizePayload is the payload for the RESIZE command.
type ResizePayload struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DockPayload is the payload for the DOCK command. An empty side docks
// to the configured default.
type DockPayload struct {
	Side string `json:"side,omitempty"`
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
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
