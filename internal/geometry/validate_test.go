package geometry

import "testing"

func TestValidate_ClampIsIdempotent(t *testing.T) {
	size := Size{Width: 600, Height: 600}
	positions := []Point{
		{X: -200, Y: -10},
		{X: 5000, Y: 5000}, // off-screen, skipped below
		{X: 0, Y: 0},
		{X: 1300, Y: 900},
	}

	for _, pos := range positions {
		first, ok := Validate(pos, size, 1920, 1080)
		if !ok {
			continue
		}
		second, ok := Validate(first, size, 1920, 1080)
		if !ok {
			t.Fatalf("validated position %+v re-classified as off-screen", first)
		}
		if second != first {
			t.Fatalf("clamp not idempotent: %+v -> %+v -> %+v", pos, first, second)
		}
	}
}

func TestValidate_ClampsIntoViewport(t *testing.T) {
	size := Size{Width: 600, Height: 600}

	// maxX = 1920-600 = 1320, maxY = 1080-100 = 980
	got, ok := Validate(Point{X: 1500, Y: 1000}, size, 1920, 1080)
	if !ok {
		t.Fatalf("expected position to validate")
	}
	if got.X != 1320 || got.Y != 980 {
		t.Fatalf("expected (1320,980), got (%d,%d)", got.X, got.Y)
	}

	got, ok = Validate(Point{X: -30, Y: -20}, size, 1920, 1080)
	if !ok {
		t.Fatalf("expected position to validate")
	}
	if got.X != 0 || got.Y != 0 {
		t.Fatalf("expected (0,0), got (%d,%d)", got.X, got.Y)
	}
}

func TestValidate_OffScreenClassification(t *testing.T) {
	size := Size{Width: 600, Height: 600}

	cases := []struct {
		name string
		pos  Point
		off  bool
	}{
		{"far left", Point{X: -9999, Y: 100}, true},
		{"past right", Point{X: 1920 - 40, Y: 100}, true},
		{"above top", Point{X: 100, Y: -60}, true},
		{"below bottom", Point{X: 100, Y: 1080 - 40}, true},
		{"slightly off left", Point{X: -100, Y: 100}, false},
		{"centered", Point{X: 600, Y: 200}, false},
	}

	for _, tc := range cases {
		_, ok := Validate(tc.pos, size, 1920, 1080)
		if ok == tc.off {
			t.Fatalf("%s: expected offScreen=%v for %+v", tc.name, tc.off, tc.pos)
		}
	}
}

func TestValidate_ReservedVerticalKeepsTitleBarReachable(t *testing.T) {
	size := Size{Width: 600, Height: 200}

	// Bottom clamp uses the reserved margin, not the panel height:
	// maxY = 1080-100 = 980.
	got, ok := Validate(Point{X: 0, Y: 1020}, size, 1920, 1080)
	if !ok {
		t.Fatalf("expected position to validate")
	}
	if got.Y != 980 {
		t.Fatalf("expected y=980, got %d", got.Y)
	}
}
