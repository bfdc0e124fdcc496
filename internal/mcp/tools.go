package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/paneldock/internal/ipc"
)

func panelStateFrom(data *ipc.StateData) PanelState {
	return PanelState{
		Docked:    data.Docked,
		X:         data.X,
		Y:         data.Y,
		Width:     data.Width,
		Height:    data.Height,
		Minimized: data.Minimized,

		ViewportWidth:  data.ViewportWidth,
		ViewportHeight: data.ViewportHeight,
	}
}

func (s *Server) handleGetPanelState(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetPanelStateInput) (*mcpsdk.CallToolResult, PanelState, error) {
	data, err := s.client.GetState()
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}

func (s *Server) handleDockPanel(_ context.Context, _ *mcpsdk.CallToolRequest, args DockPanelInput) (*mcpsdk.CallToolResult, PanelState, error) {
	switch args.Side {
	case "", "left", "right", "top":
	default:
		return nil, PanelState{}, fmt.Errorf("invalid dock side %q; expected left, right, or top", args.Side)
	}
	data, err := s.client.Dock(args.Side)
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}

func (s *Server) handleUndockPanel(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndockPanelInput) (*mcpsdk.CallToolResult, PanelState, error) {
	data, err := s.client.Undock()
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}

func (s *Server) handleToggleMinimize(_ context.Context, _ *mcpsdk.CallToolRequest, _ ToggleMinimizeInput) (*mcpsdk.CallToolResult, PanelState, error) {
	data, err := s.client.ToggleMinimize()
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}

func (s *Server) handleMovePanel(_ context.Context, _ *mcpsdk.CallToolRequest, args MovePanelInput) (*mcpsdk.CallToolResult, PanelState, error) {
	data, err := s.client.Move(args.X, args.Y)
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}

func (s *Server) handleResizePanel(_ context.Context, _ *mcpsdk.CallToolRequest, args ResizePanelInput) (*mcpsdk.CallToolResult, PanelState, error) {
	if args.Width <= 0 || args.Height <= 0 {
		return nil, PanelState{}, fmt.Errorf("width and height must be positive, got %dx%d", args.Width, args.Height)
	}
	data, err := s.client.Resize(args.Width, args.Height)
	if err != nil {
		return nil, PanelState{}, err
	}
	return nil, panelStateFrom(data), nil
}
