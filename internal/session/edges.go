package session

import (
	"fmt"
	"strings"
)

// EdgeSet is a bitset of panel edges active in a resize session. A side
// handle activates one edge, a corner handle two.
type EdgeSet uint8

const (
	EdgeTop EdgeSet = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Has reports whether all edges in e are active in s.
func (s EdgeSet) Has(e EdgeSet) bool {
	return s&e == e
}

// Valid reports whether s is a usable handle: one or two edges, never
// two opposite ones.
func (s EdgeSet) Valid() bool {
	if s == 0 || s&^(EdgeTop|EdgeRight|EdgeBottom|EdgeLeft) != 0 {
		return false
	}
	if s.Has(EdgeTop|EdgeBottom) || s.Has(EdgeLeft|EdgeRight) {
		return false
	}
	return true
}

func (s EdgeSet) String() string {
	var parts []string
	if s.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if s.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if s.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if s.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "-")
}

// ParseEdges converts a handle name like "left" or "top-right" into an
// EdgeSet. Order of components does not matter.
func ParseEdges(handle string) (EdgeSet, error) {
	var s EdgeSet
	for _, part := range strings.Split(handle, "-") {
		switch part {
		case "top":
			s |= EdgeTop
		case "right":
			s |= EdgeRight
		case "bottom":
			s |= EdgeBottom
		case "left":
			s |= EdgeLeft
		default:
			return 0, fmt.Errorf("unknown resize handle %q", handle)
		}
	}
	if !s.Valid() {
		return 0, fmt.Errorf("invalid resize handle %q", handle)
	}
	return s, nil
}
