package geometry

import (
	"math"
	"testing"
)

func TestPercentToPixel(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		dim     int
		want    int
	}{
		{"zero", 0, 1000, 0},
		{"full", 100, 1000, 1000},
		{"half", 50, 1000, 500},
		{"rounds up", 50, 999, 500},    // 499.5 -> 500
		{"rounds down", 33.3, 100, 33}, // 33.3 -> 33
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentToPixel(tt.percent, tt.dim); got != tt.want {
				t.Errorf("PercentToPixel(%v, %d) = %d, want %d", tt.percent, tt.dim, got, tt.want)
			}
		})
	}
}

func TestPercentToPixel_RangeAndMonotonic(t *testing.T) {
	dims := []int{1, 100, 320, 1000, 3840}
	for _, d := range dims {
		prev := -1
		for p := 0.0; p <= 100.0; p += 0.5 {
			px := PercentToPixel(p, d)
			if px < 0 || px > d {
				t.Fatalf("PercentToPixel(%v, %d) = %d out of [0,%d]", p, d, px, d)
			}
			if px < prev {
				t.Fatalf("PercentToPixel not monotonic at p=%v dim=%d: %d < %d", p, d, px, prev)
			}
			prev = px
		}
	}
}

func TestDynamicRadius(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{100, 14},   // 5.5 -> clamped to min
		{254, 14},   // 13.97 -> 14
		{320, 18},   // 17.6 -> 18
		{400, 22},   // 22.0
		{509, 28},   // 27.995 -> 28
		{1000, 28},  // clamped to max
		{10000, 28}, // clamped to max
	}
	for _, tt := range tests {
		if got := DynamicRadius(tt.width); got != tt.want {
			t.Errorf("DynamicRadius(%d) = %d, want %d", tt.width, got, tt.want)
		}
	}
}

func TestDynamicRadius_ClampedAndMonotonic(t *testing.T) {
	prev := 0
	for w := 0; w <= 5000; w += 10 {
		r := DynamicRadius(w)
		if r < MinCalloutRadius || r > MaxCalloutRadius {
			t.Fatalf("DynamicRadius(%d) = %d outside [%d,%d]", w, r, MinCalloutRadius, MaxCalloutRadius)
		}
		if r < prev {
			t.Fatalf("DynamicRadius not monotonic at width %d: %d < %d", w, r, prev)
		}
		prev = r
	}
}

func TestClampToBounds(t *testing.T) {
	tests := []struct {
		name             string
		x, y, radius     int
		width, height    int
		wantX, wantY     int
	}{
		{"inside untouched", 500, 500, 18, 1000, 1000, 500, 500},
		{"left edge", 0, 500, 18, 1000, 1000, 23, 500},
		{"right edge", 1000, 500, 18, 1000, 1000, 977, 500},
		{"top edge", 500, -40, 18, 1000, 1000, 500, 23},
		{"bottom edge", 500, 999, 18, 1000, 1000, 500, 977},
		{"corner", 0, 0, 20, 640, 480, 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := ClampToBounds(tt.x, tt.y, tt.radius, tt.width, tt.height, 5)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("ClampToBounds = (%d,%d), want (%d,%d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestClampToBounds_Idempotent(t *testing.T) {
	for _, start := range [][2]int{{-100, -100}, {0, 0}, {500, 500}, {2000, 2000}} {
		x1, y1 := ClampToBounds(start[0], start[1], 18, 1000, 800, 5)
		x2, y2 := ClampToBounds(x1, y1, 18, 1000, 800, 5)
		if x1 != x2 || y1 != y2 {
			t.Errorf("ClampToBounds not idempotent for %v: first (%d,%d), second (%d,%d)",
				start, x1, y1, x2, y2)
		}
	}
}

func TestQuadBezierPoints(t *testing.T) {
	points := QuadBezierPoints(0, 0, 50, 100, 100, 0)

	if len(points) != 21 {
		t.Fatalf("expected 21 sample points, got %d", len(points))
	}

	// Endpoints must match exactly.
	if points[0].X != 0 || points[0].Y != 0 {
		t.Errorf("start point = %v, want (0,0)", points[0])
	}
	last := points[len(points)-1]
	if last.X != 100 || last.Y != 0 {
		t.Errorf("end point = %v, want (100,0)", last)
	}

	// Midpoint of a quadratic bezier is (P0 + 2*C + P2) / 4.
	mid := points[10]
	if math.Abs(mid.X-50) > 1e-9 || math.Abs(mid.Y-50) > 1e-9 {
		t.Errorf("mid point = %v, want (50,50)", mid)
	}
}

func TestCurveControlPoint(t *testing.T) {
	// Horizontal chord of length 100: control point is offset 20 perpendicular.
	cx, cy := CurveControlPoint(0, 0, 100, 0)
	if math.Abs(cx-50) > 1e-9 {
		t.Errorf("control x = %v, want 50", cx)
	}
	if math.Abs(cy-20) > 1e-9 {
		t.Errorf("control y = %v, want 20", cy)
	}

	// Degenerate zero-length chord falls back to the midpoint.
	cx, cy = CurveControlPoint(40, 40, 40, 40)
	if cx != 40 || cy != 40 {
		t.Errorf("degenerate control = (%v,%v), want (40,40)", cx, cy)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(0, 0, 3, 4); d != 5 {
		t.Errorf("Distance(0,0,3,4) = %v, want 5", d)
	}
	if d := Distance(10, 10, 10, 10); d != 0 {
		t.Errorf("Distance of identical points = %v, want 0", d)
	}
}
