// Package mcp exposes panel control to AI agents over the Model
// Context Protocol. Every tool forwards to the running daemon through
// the IPC socket, so agents and human-driven clients share one source
// of truth.
package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/paneldock/internal/ipc"
)

const (
	ServerName    = "paneldock"
	ServerVersion = "0.1.0"
)

// panelClient is the daemon surface the tools need. *ipc.Client
// satisfies it; tests substitute an in-process fake.
type panelClient interface {
	GetState() (*ipc.StateData, error)
	Move(x, y int) (*ipc.StateData, error)
	Resize(width, height int) (*ipc.StateData, error)
	Dock(side string) (*ipc.StateData, error)
	Undock() (*ipc.StateData, error)
	ToggleMinimize() (*ipc.StateData, error)
}

// Server is the MCP server for panel control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    panelClient
}

// NewServer creates a new MCP server that talks to the daemon socket.
func NewServer() *Server {
	return newServer(ipc.NewClient())
}

func newServer(client panelClient) *Server {
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
		Name:        "get_panel_state",
		Description: "Get the overlay panel's current state: dock side (left/right/top or empty when floating), position, size, minimized flag, and the host viewport dimensions.",
	}, s.handleGetPanelState)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "dock_panel",
		Description: "Dock the panel against the reference content region. Accepts side left, right, or top; omit side to use the configured default.",
	}, s.handleDockPanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undock_panel",
		Description: "Detach the panel from its dock side and float it at its last position, re-validated against the viewport.",
	}, s.handleUndockPanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_minimize",
		Description: "Toggle the panel between minimized and expanded. Minimizing a docked panel floats it first.",
	}, s.handleToggleMinimize)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_panel",
		Description: "Move the floating panel to an absolute position. The position is clamped into the viewport; an off-screen target docks the panel to the default side instead.",
	}, s.handleMovePanel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "resize_panel",
		Description: "Resize the panel, keeping its top-left corner fixed. Dimensions are clamped to the allowed range; ignored while the panel is docked or minimized.",
	}, s.handleResizePanel)
}
