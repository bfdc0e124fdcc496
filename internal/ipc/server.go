package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/paneldock/internal/geometry"
	"github.com/1broseidon/paneldock/internal/panel"
	"github.com/1broseidon/paneldock/internal/runtimepath"
)

// ResetFunc clears the persisted panel state.
type ResetFunc func() error

// Server handles IPC requests from clients and dispatches them into the
// panel manager.
type Server struct {
	socketPath   string
	listener     net.Listener
	manager      *panel.Manager
	reset        ResetFunc
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server
func NewServer(manager *panel.Manager, reset ResetFunc, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		manager:    manager,
		reset:      reset,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Stop shuts the server down and removes the socket.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Expect JSON on a single line
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("IPC marshal error: %v", err)
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("IPC write error: %v", err)
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetState:
		return s.handleGetState()
	case CommandMove:
		return s.handleMove(req.Payload)
	case CommandResize:
		return s.handleResize(req.Payload)
	case CommandDock:
		return s.handleDock(req.Payload)
	case CommandUndock:
		s.manager.Undock()
		return s.okState()
	case CommandToggleMinimize:
		s.manager.ToggleMinimize()
		return s.okState()
	case CommandReset:
		return s.handleReset()
	case CommandReload:
		return s.handleReload()
	default:
		return NewErrorResponse(fmt.Sprintf("unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetState() *Response {
	return s.okState()
}

func (s *Server) handleMove(payload json.RawMessage) *Response {
	var p MovePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid MOVE payload: %v", err))
	}
	s.manager.MoveTo(geometry.Point{X: p.X, Y: p.Y})
	return s.okState()
}

func (s *Server) handleResize(payload json.RawMessage) *Response {
	var p ResizePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("invalid RESIZE payload: %v", err))
	}
	if p.Width <= 0 || p.Height <= 0 {
		return NewErrorResponse("width and height must be positive")
	}
	s.manager.SetSize(geometry.Size{Width: p.Width, Height: p.Height})
	return s.okState()
}

func (s *Server) handleDock(payload json.RawMessage) *Response {
	var p DockPayload
	if len(payload) > 0 {
		if err := json.Unmarshal(payload, &p); err != nil {
			return NewErrorResponse(fmt.Sprintf("invalid DOCK payload: %v", err))
		}
	}
	if p.Side == "" {
		s.manager.DockDefault()
		return s.okState()
	}
	side, err := geometry.ParseSide(p.Side)
	if err != nil || side == geometry.SideNone {
		return NewErrorResponse(fmt.Sprintf("invalid dock side %q", p.Side))
	}
	s.manager.Dock(side)
	return s.okState()
}

func (s *Server) handleReset() *Response {
	if s.reset == nil {
		return NewErrorResponse("reset not supported")
	}
	if err := s.reset(); err != nil {
		return NewErrorResponse(fmt.Sprintf("reset failed: %v", err))
	}
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleReload() *Response {
	if s.reloadChan == nil {
		return NewErrorResponse("reload not supported")
	}
	select {
	case s.reloadChan <- struct{}{}:
	default:
		// A reload is already pending.
	}
	resp, err := NewOKResponse(nil)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) okState() *Response {
	resp, err := NewOKResponse(s.stateData())
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) stateData() StateData {
	st := s.manager.State()
	vw, vh := s.manager.Viewport()
	return StateData{
		Docked:    string(st.Docked),
		X:         st.Position.X,
		Y:         st.Position.Y,
		Width:     st.Size.Width,
		Height:    st.Size.Height,
		Minimized: st.Minimized,
		Dragging:  s.manager.Dragging(),
		Resizing:  s.manager.Resizing(),

		ViewportWidth:  vw,
		ViewportHeight: vh,
		UptimeSeconds:  int64(time.Since(s.startTime).Seconds()),
	}
}

func (s *Server) sendError(conn net.Conn, msg string) {
	resp := NewErrorResponse(msg)
	data, err := resp.Marshal()
	if err != nil {
		return
	}
	conn.Write(append(data, '\n'))
}
