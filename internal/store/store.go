// Package store persists the panel's last committed geometry between
// runs. A missing or corrupt record is an error the manager recovers
// from by falling back to defaults; it never reaches the user.
package store

import (
	"github.com/1broseidon/paneldock/internal/geometry"
)

// Position is the persisted panel origin.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Dimensions is the persisted panel size.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Record is the serialized snapshot of the panel's committed state.
// Minimized is deliberately not part of the record: the panel always
// restores expanded.
type Record struct {
	Docked   geometry.Side `json:"docked"`
	Position Position      `json:"position"`
	Size     Dimensions    `json:"size"`
}

// Adapter loads and saves a panel's persisted record. Implementations
// must tolerate concurrent use from IPC handlers.
type Adapter interface {
	Load() (*Record, error)
	Save(rec *Record) error
}
