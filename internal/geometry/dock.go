package geometry

import (
	"encoding/json"
	"fmt"
)

// Side identifies which reference edge the panel is docked to.
type Side string

const (
	SideNone  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
	SideTop   Side = "top"
)

// Valid reports whether s is a known side value.
func (s Side) Valid() bool {
	switch s {
	case SideNone, SideLeft, SideRight, SideTop:
		return true
	}
	return false
}

// ParseSide converts a wire string into a Side.
func ParseSide(v string) (Side, error) {
	s := Side(v)
	if !s.Valid() {
		return SideNone, fmt.Errorf("unknown dock side %q", v)
	}
	return s, nil
}

// MarshalJSON encodes SideNone as null to match the persisted record
// shape {docked: "left"|"right"|"top"|null}.
func (s Side) MarshalJSON() ([]byte, error) {
	if s == SideNone {
		return []byte("null"), nil
	}
	return json.Marshal(string(s))
}

func (s *Side) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SideNone
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseSide(v)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// DetectDock decides whether rect is close enough to an edge of ref to
// snap against it. Sides are evaluated left, right, top; the first match
// wins, so rectangles near a corner resolve deterministically.
func DetectDock(rect Rect, ref Bounds) Side {
	if nearEdge(rect.X+rect.Width, ref.Left) && verticalOverlap(rect, ref) {
		return SideLeft
	}
	if nearEdge(rect.X, ref.Right) && verticalOverlap(rect, ref) {
		return SideRight
	}
	if nearEdge(rect.Y+rect.Height, ref.Top) && horizontalOverlap(rect, ref) {
		return SideTop
	}
	return SideNone
}

func nearEdge(a, b int) bool {
	return abs(a-b) <= DockThreshold
}

func verticalOverlap(rect Rect, ref Bounds) bool {
	return rect.Y < ref.Bottom+OverlapTolerance &&
		rect.Y+rect.Height > ref.Top-OverlapTolerance
}

func horizontalOverlap(rect Rect, ref Bounds) bool {
	return rect.X < ref.Right+OverlapTolerance &&
		rect.X+rect.Width > ref.Left-OverlapTolerance
}

// AnchoredPosition returns the canonical position for a panel of the
// given size docked to side: flush against the matched reference edge,
// aligned to the reference's top (left edge for a top dock).
func AnchoredPosition(side Side, size Size, ref Bounds) Point {
	switch side {
	case SideLeft:
		return Point{X: ref.Left - size.Width, Y: ref.Top}
	case SideRight:
		return Point{X: ref.Right, Y: ref.Top}
	case SideTop:
		return Point{X: ref.Left, Y: ref.Top - size.Height}
	}
	return Point{}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
