package render

import (
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/screenshot-annotate/internal/annotate"
	"github.com/ironsheep/screenshot-annotate/internal/palette"
)

// newTestCanvas creates a white canvas of the given size.
func newTestCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, white)
		}
	}
	return NewCanvas(img, DefaultStyle())
}

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func TestDrawCallout(t *testing.T) {
	c := newTestCanvas(400, 300)
	red := palette.Resolve("red")

	c.DrawCallout(200, 150, 22, 3, red)

	// Somewhere inside the circle but outside the number glyph.
	if got := rgbaAt(c, 200-14, 150); got != red {
		t.Errorf("circle interior = %v, want %v", got, red)
	}
	// Outline ring is light.
	edge := rgbaAt(c, 200+22, 150)
	if edge.R < 200 || edge.G < 200 || edge.B < 200 {
		t.Errorf("outline pixel = %v, want light color", edge)
	}
	// Well outside the circle is untouched.
	if got := rgbaAt(c, 200, 150-40); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel outside callout = %v, want white", got)
	}
	// The number leaves some non-fill pixels near the center.
	found := false
	for dy := -8; dy <= 8 && !found; dy++ {
		for dx := -8; dx <= 8 && !found; dx++ {
			if rgbaAt(c, 200+dx, 150+dy) != red {
				found = true
			}
		}
	}
	if !found {
		t.Error("no number glyph pixels found near callout center")
	}
}

func TestDrawArrow_Straight(t *testing.T) {
	c := newTestCanvas(400, 300)
	teal := palette.Resolve("teal")

	c.DrawArrow(50, 150, 350, 150, teal, false)

	// A straight horizontal arrow colors pixels along y=150.
	if got := rgbaAt(c, 200, 150); got != teal {
		t.Errorf("mid shaft = %v, want %v", got, teal)
	}
	// Arrowhead fills near the tip.
	if got := rgbaAt(c, 345, 150); got != teal {
		t.Errorf("near tip = %v, want %v", got, teal)
	}
}

func TestDrawArrow_CurvedMissesChord(t *testing.T) {
	c := newTestCanvas(400, 300)
	teal := palette.Resolve("teal")

	c.DrawArrow(50, 150, 350, 150, teal, true)

	// A curved arrow bows away from the chord: the chord midpoint stays
	// clean while the curve midpoint (offset 20% of 300 = 60px) is colored.
	if got := rgbaAt(c, 200, 150); got == teal {
		t.Error("chord midpoint should not be on the curved path")
	}

	// Quadratic bezier midpoint sits half way between chord and control.
	if got := rgbaAt(c, 200, 180); got != teal {
		t.Errorf("curve midpoint = %v, want %v", got, teal)
	}
}

func TestDrawArrow_ZeroLength(t *testing.T) {
	c := newTestCanvas(100, 100)
	before := rgbaAt(c, 50, 50)

	c.DrawArrow(50, 50, 50, 50, palette.Resolve("red"), true)

	if got := rgbaAt(c, 50, 50); got != before {
		t.Errorf("zero-length arrow drew pixels: %v", got)
	}
}

func TestDrawHighlight(t *testing.T) {
	c := newTestCanvas(200, 200)
	gold := palette.Resolve("gold")

	c.DrawHighlight(50, 50, 100, 80, gold)

	// Interior is a 30% blend of gold over white: tinted, but not pure gold
	// and not pure white.
	inside := rgbaAt(c, 100, 90)
	if inside == (color.RGBA{255, 255, 255, 255}) {
		t.Error("highlight interior still white")
	}
	if inside == gold {
		t.Error("highlight interior fully opaque")
	}
	// Blue channel drops from 255 toward gold's 0.
	if inside.B > 230 || inside.B < 150 {
		t.Errorf("interior blue channel = %d, want roughly 70%% of 255", inside.B)
	}

	// Border is solid.
	if got := rgbaAt(c, 51, 90); got != gold {
		t.Errorf("border pixel = %v, want %v", got, gold)
	}

	// Outside untouched.
	if got := rgbaAt(c, 20, 20); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("outside pixel = %v, want white", got)
	}
}

func TestDrawRing(t *testing.T) {
	c := newTestCanvas(200, 200)
	red := palette.Resolve("red")

	c.DrawRing(100, 100, 40, red)

	if got := rgbaAt(c, 140, 100); got != red {
		t.Errorf("ring edge = %v, want %v", got, red)
	}
	// Interior stays unfilled.
	if got := rgbaAt(c, 100, 100); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("ring interior = %v, want white", got)
	}
}

func TestDrawLabel(t *testing.T) {
	c := newTestCanvas(300, 100)
	bg := palette.Resolve("primary")
	white := color.RGBA{255, 255, 255, 255}

	c.DrawLabel(50, 40, "Account menu", white, bg)

	// Background rectangle covers the padded area left of the text start.
	if got := rgbaAt(c, 46, 40); got != bg {
		t.Errorf("label background = %v, want %v", got, bg)
	}
	// Empty label draws nothing.
	before := rgbaAt(c, 250, 80)
	c.DrawLabel(250, 80, "", white, bg)
	if got := rgbaAt(c, 250, 80); got != before {
		t.Error("empty label drew pixels")
	}
}

func TestApplyAll_WithValidation(t *testing.T) {
	c := newTestCanvas(1000, 1000)
	annotations := []annotate.Annotation{
		{Type: annotate.TypeCallout, Position: &annotate.Position{X: 50, Y: 50},
			Number: 1, Color: "critical", Description: "First"},
		{Type: annotate.TypeCallout, Position: &annotate.Position{X: 50, Y: 50},
			Number: 2, Color: "info", Description: "Second"},
	}

	v := annotate.NewValidator(c.Width(), c.Height())
	batch := v.ValidateAll(annotations)

	if err := c.ApplyAll(annotations, batch); err != nil {
		t.Fatalf("ApplyAll failed: %v", err)
	}

	// First callout keeps the center; second is pushed to (566,566).
	red := palette.Resolve("critical")
	blue := palette.Resolve("info")
	if got := rgbaAt(c, 500-20, 500); got != red {
		t.Errorf("first callout pixel = %v, want %v", got, red)
	}
	if got := rgbaAt(c, 566-20, 566); got != blue {
		t.Errorf("adjusted second callout pixel = %v, want %v", got, blue)
	}
}

func TestApplyAll_BatchMismatch(t *testing.T) {
	c := newTestCanvas(100, 100)
	annotations := []annotate.Annotation{{Type: annotate.TypeCallout, Number: 1}}
	batch := &annotate.BatchResult{}

	if err := c.ApplyAll(annotations, batch); err == nil {
		t.Error("expected error for mismatched batch")
	}
}

func TestApply_UnknownType(t *testing.T) {
	c := newTestCanvas(100, 100)
	err := c.Apply(&annotate.Annotation{Type: "sparkles"}, nil)
	if err == nil {
		t.Error("expected error for unknown annotation type")
	}
}

func TestApply_HighlightReplacesImage(t *testing.T) {
	c := newTestCanvas(200, 200)
	before := c.Image()

	err := c.Apply(&annotate.Annotation{
		Type: annotate.TypeHighlight,
		BBox: &annotate.BBox{X: 10, Y: 10, W: 30, H: 30},
	}, nil)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if c.Image() == before {
		t.Error("highlight compositing must produce a new image")
	}
}

func TestDrawLegend(t *testing.T) {
	c := newTestCanvas(400, 300)
	entries := []palette.LegendEntry{
		{Number: 1, Hex: "#C00000", Text: "Click the Sign On button"},
		{Number: 2, Hex: "#2E74B5", Text: "Enter your member number"},
	}

	c.DrawLegend(entries, LegendBottom)

	grown := c.Image().Bounds()
	if grown.Dy() <= 300 {
		t.Fatalf("legend did not extend canvas: height %d", grown.Dy())
	}
	if grown.Dx() != 400 {
		t.Errorf("bottom legend changed width to %d", grown.Dx())
	}

	// No entries: no growth.
	c2 := newTestCanvas(400, 300)
	c2.DrawLegend(nil, LegendBottom)
	if c2.Image().Bounds().Dy() != 300 {
		t.Error("empty legend extended canvas")
	}
}

func TestDrawLegend_Right(t *testing.T) {
	c := newTestCanvas(400, 100)
	entries := []palette.LegendEntry{{Number: 1, Hex: "#548235", Text: "Confirmation"}}

	c.DrawLegend(entries, LegendRight)

	if c.Image().Bounds().Dx() <= 400 {
		t.Error("right legend did not extend canvas width")
	}
}

func TestCalloutFontSize(t *testing.T) {
	tests := []struct {
		radius int
		want   int
	}{
		{14, 11}, // round(10.5) = 11
		{18, 14}, // round(13.5) = 14
		{28, 21},
		{8, 10}, // floored at 10
	}
	for _, tt := range tests {
		if got := CalloutFontSize(tt.radius); got != tt.want {
			t.Errorf("CalloutFontSize(%d) = %d, want %d", tt.radius, got, tt.want)
		}
	}
}
