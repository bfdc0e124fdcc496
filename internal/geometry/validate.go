package geometry

// Validate clamps pos so a size-sized panel stays reachable inside a
// screenW x screenH viewport. ok is false when the rectangle is so far
// out of view that clamping would be meaningless; callers pick a
// fallback, by convention docking right.
//
// Clamping is idempotent: validating an already-validated position
// returns it unchanged.
func Validate(pos Point, size Size, screenW, screenH int) (Point, bool) {
	if offScreen(pos, size, screenW, screenH) {
		return Point{}, false
	}

	maxX := screenW - size.Width
	maxY := screenH - ReservedVertical

	return Point{
		X: clamp(pos.X, 0, maxX),
		Y: clamp(pos.Y, 0, maxY),
	}, true
}

// offScreen reports whether less than EdgeMargin pixels of the panel
// could remain visible on any side.
func offScreen(pos Point, size Size, screenW, screenH int) bool {
	switch {
	case pos.X > screenW-EdgeMargin: // gone off the right
		return true
	case pos.X+size.Width < EdgeMargin: // gone off the left
		return true
	case pos.Y < -EdgeMargin: // gone off the top
		return true
	case pos.Y > screenH-EdgeMargin: // gone off the bottom
		return true
	}
	return false
}

func clamp(v, lo, hi int) int {
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
