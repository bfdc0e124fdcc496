// Package session holds the short-lived records of in-progress drag and
// resize interactions. A session exists only between pointer-down and
// pointer-up and is owned exclusively by the panel manager; at most one
// session of either kind is active at a time.
package session

import (
	"github.com/1broseidon/paneldock/internal/geometry"
)

// Drag tracks an in-progress move. Offset is the vector from the pointer
// to the panel's top-left corner at drag start; subtracting it from the
// live pointer yields the candidate panel origin.
type Drag struct {
	Offset geometry.Point
}

// StartDrag captures the pointer offset for a panel whose top-left is at
// origin.
func StartDrag(pointer, origin geometry.Point) *Drag {
	return &Drag{Offset: geometry.Point{
		X: pointer.X - origin.X,
		Y: pointer.Y - origin.Y,
	}}
}

// Candidate returns the panel origin implied by the current pointer.
func (d *Drag) Candidate(pointer geometry.Point) geometry.Point {
	return geometry.Point{
		X: pointer.X - d.Offset.X,
		Y: pointer.Y - d.Offset.Y,
	}
}

// Resize tracks an in-progress resize from one or two edges.
type Resize struct {
	StartPointer geometry.Point
	StartRect    geometry.Rect
	Edges        EdgeSet
}

// StartResize captures the panel rectangle and active edges at
// pointer-down on a resize handle.
func StartResize(pointer geometry.Point, rect geometry.Rect, edges EdgeSet) *Resize {
	return &Resize{StartPointer: pointer, StartRect: rect, Edges: edges}
}

// Apply computes the panel rectangle for the current pointer position.
// Each active edge is handled independently; the edge being dragged
// tracks the pointer while the opposite edge stays pinned.
//
// For the right and bottom edges the dimension simply grows by the
// pointer delta, clamped into [min, max]. For the left and top edges the
// dimension change is derived after clamping and the same magnitude
// shifts the position coordinate, so the anchor holds even once the
// clamp caps the delta.
func (r *Resize) Apply(pointer geometry.Point, viewportW, viewportH int) geometry.Rect {
	rect := r.StartRect
	dx := pointer.X - r.StartPointer.X
	dy := pointer.Y - r.StartPointer.Y

	maxW := viewportW - geometry.MaxDimMargin
	maxH := viewportH - geometry.MaxDimMargin

	if r.Edges.Has(EdgeRight) {
		rect.Width = clampDim(r.StartRect.Width+dx, geometry.MinWidth, maxW)
	}
	if r.Edges.Has(EdgeBottom) {
		rect.Height = clampDim(r.StartRect.Height+dy, geometry.MinHeight, maxH)
	}
	if r.Edges.Has(EdgeLeft) {
		newW := clampDim(r.StartRect.Width-dx, geometry.MinWidth, maxW)
		change := r.StartRect.Width - newW
		rect.Width = newW
		rect.X = r.StartRect.X + change
	}
	if r.Edges.Has(EdgeTop) {
		newH := clampDim(r.StartRect.Height-dy, geometry.MinHeight, maxH)
		change := r.StartRect.Height - newH
		rect.Height = newH
		rect.Y = r.StartRect.Y + change
	}

	// Position never goes negative or pushes the panel out of view.
	if pos, ok := geometry.Validate(rect.Origin(), rect.Extent(), viewportW, viewportH); ok {
		rect.X = pos.X
		rect.Y = pos.Y
	}

	return rect
}

func clampDim(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
