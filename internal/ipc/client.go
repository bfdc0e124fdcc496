package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/1broseidon/paneldock/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if resp.Status != "OK" {
		return &resp, fmt.Errorf("daemon error: %s", resp.Error)
	}
	return &resp, nil
}

func (c *Client) sendForState(req *Request) (*StateData, error) {
	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}
	var state StateData
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse state data: %w", err)
	}
	return &state, nil
}

// Ping checks whether the daemon is reachable.
func (c *Client) Ping() error {
	_, err := c.sendRequest(&Request{Command: CommandGetState})
	return err
}

// GetState fetches the current panel snapshot.
func (c *Client) GetState() (*StateData, error) {
	return c.sendForState(&Request{Command: CommandGetState})
}

// Move commits an absolute panel position.
func (c *Client) Move(x, y int) (*StateData, error) {
	payload, err := json.Marshal(MovePayload{X: x, Y: y})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.sendForState(&Request{Command: CommandMove, Payload: payload})
}

// Resize commits an absolute panel size.
func (c *Client) Resize(width, height int) (*StateData, error) {
	payload, err := json.Marshal(ResizePayload{Width: width, Height: height})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.sendForState(&Request{Command: CommandResize, Payload: payload})
}

// Dock docks the panel; an empty side selects the configured default.
func (c *Client) Dock(side string) (*StateData, error) {
	payload, err := json.Marshal(DockPayload{Side: side})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return c.sendForState(&Request{Command: CommandDock, Payload: payload})
}

// Undock floats the panel.
func (c *Client) Undock() (*StateData, error) {
	return c.sendForState(&Request{Command: CommandUndock})
}

// ToggleMinimize flips the minimized flag.
func (c *Client) ToggleMinimize() (*StateData, error) {
	return c.sendForState(&Request{Command: CommandToggleMinimize})
}

// Reset clears the persisted panel state.
func (c *Client) Reset() error {
	_, err := c.sendRequest(&Request{Command: CommandReset})
	return err
}

// Reload asks the daemon to re-read its configuration.
func (c *Client) Reload() error {
	_, err := c.sendRequest(&Request{Command: CommandReload})
	return err
}
