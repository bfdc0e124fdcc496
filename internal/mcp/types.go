package mcp

// GetPanelStateInput is the input for the get_panel_state tool.
type GetPanelStateInput struct{}

// PanelState is the snapshot returned by every panel tool.
type PanelState struct {
	Docked    string `json:"docked"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Minimized bool   `json:"minimized"`

	ViewportWidth  int `json:"viewport_width"`
	ViewportHeight int `json:"viewport_height"`
}

// DockPanelInput is the input for the dock_panel tool.
type DockPanelInput struct {
	Side string `json:"side,omitempty" jsonschema:"Dock side: left, right, or top. Omit to use the configured default side."`
}

// UndockPanelInput is the input for the undock_panel tool.
type UndockPanelInput struct{}

// ToggleMinimizeInput is the input for the toggle_minimize tool.
type ToggleMinimizeInput struct{}

// MovePanelInput is the input for the move_panel tool.
type MovePanelInput struct {
	X int `json:"x" jsonschema:"required,Absolute x coordinate of the panel's top-left corner"`
	Y int `json:"y" jsonschema:"required,Absolute y coordinate of the panel's top-left corner"`
}

// ResizePanelInput is the input for the resize_panel tool.
type ResizePanelInput struct {
	Width  int `json:"width" jsonschema:"required,Panel width in pixels (minimum 300)"`
	Height int `json:"height" jsonschema:"required,Panel height in pixels (minimum 200)"`
}
