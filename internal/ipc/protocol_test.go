package ipc

import (
	"encoding/json"
	"testing"
)

func TestParseRequest(t *testing.T) {
	req, err := ParseRequest([]byte(`{"command":"DOCK","payload":{"side":"left"}}` + "\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if req.Command != CommandDock {
		t.Fatalf("expected DOCK, got %q", req.Command)
	}

	var p DockPayload
	if err := json.Unmarshal(req.Payload, &p); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if p.Side != "left" {
		t.Fatalf("expected side left, got %q", p.Side)
	}
}

func TestParseRequest_RejectsGarbage(t *testing.T) {
	if _, err := ParseRequest([]byte("not json\n")); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestResponseMarshal(t *testing.T) {
	resp, err := NewOKResponse(StateData{Docked: "right", Width: 600, Height: 600})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	data, err := resp.Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back Response
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Status != "OK" {
		t.Fatalf("expected OK, got %q", back.Status)
	}
	var state StateData
	if err := json.Unmarshal(back.Data, &state); err != nil {
		t.Fatalf("state: %v", err)
	}
	if state.Docked != "right" {
		t.Fatalf("expected docked right, got %q", state.Docked)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("boom")
	if resp.Status != "ERROR" || resp.Error != "boom" {
		t.Fatalf("unexpected response %+v", resp)
	}
}
