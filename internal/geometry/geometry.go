package geometry

import "math"

// Radius limits for dynamically scaled callout circles.
const (
	MinCalloutRadius = 14
	MaxCalloutRadius = 28

	// calloutScale is the callout radius as a fraction of image width.
	calloutScale = 0.055
)

// PercentToPixel converts a percentage (0-100) to a pixel position within the
// given dimension, rounding to the nearest integer.
//
// This is the single conversion rule for the whole engine. The validator and
// the renderers must both use it; mixing truncation and rounding is a known
// source of off-by-one discrepancies between collision checks and drawn pixels.
func PercentToPixel(percent float64, dimension int) int {
	return int(math.Round((percent / 100) * float64(dimension)))
}

// PixelToPercent converts a pixel position back to a percentage of the
// dimension. Used when reporting adjusted positions to callers.
func PixelToPercent(pixel, dimension int) float64 {
	if dimension == 0 {
		return 0
	}
	return (float64(pixel) / float64(dimension)) * 100
}

// DynamicRadius returns the callout radius for an image of the given width,
// scaled to ~5.5% of the width and clamped to [MinCalloutRadius, MaxCalloutRadius].
func DynamicRadius(imageWidth int) int {
	scaled := int(math.Round(float64(imageWidth) * calloutScale))
	if scaled < MinCalloutRadius {
		return MinCalloutRadius
	}
	if scaled > MaxCalloutRadius {
		return MaxCalloutRadius
	}
	return scaled
}

// ClampToBounds clamps a center point so that the full annotation extent
// (radius plus margin) stays inside a width x height canvas.
//
// Re-clamping an already-clamped point returns the same point.
func ClampToBounds(x, y, radius, width, height, margin int) (int, int) {
	x = clamp(x, radius+margin, width-radius-margin)
	y = clamp(y, radius+margin, height-radius-margin)
	return x, y
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Distance returns the Euclidean distance between two pixel points.
func Distance(x1, y1, x2, y2 int) float64 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// bezierSamples is the number of polyline points used to approximate a
// quadratic bezier (21 points = 20 segments).
const bezierSamples = 21

// Point is a 2D point in pixel space with float precision, used for curve
// sampling where integer rounding would distort the arrowhead tangent.
type Point struct {
	X float64
	Y float64
}

// QuadBezierPoints samples a quadratic bezier curve from (x1,y1) to (x2,y2)
// with control point (cx,cy) at 21 evenly spaced parameter values.
func QuadBezierPoints(x1, y1, cx, cy, x2, y2 float64) []Point {
	points := make([]Point, 0, bezierSamples)
	for i := 0; i < bezierSamples; i++ {
		t := float64(i) / float64(bezierSamples-1)
		u := 1 - t
		points = append(points, Point{
			X: u*u*x1 + 2*u*t*cx + t*t*x2,
			Y: u*u*y1 + 2*u*t*cy + t*t*y2,
		})
	}
	return points
}

// CurveControlPoint returns the control point for a curved arrow from
// (x1,y1) to (x2,y2): the chord midpoint offset perpendicular to the chord
// by 20% of its length. A zero-length chord returns the midpoint itself.
func CurveControlPoint(x1, y1, x2, y2 float64) (float64, float64) {
	midX := (x1 + x2) / 2
	midY := (y1 + y2) / 2

	dx := x2 - x1
	dy := y2 - y1
	length := math.Sqrt(dx*dx + dy*dy)
	if length == 0 {
		return midX, midY
	}

	// Rotate the unit direction 90 degrees for the perpendicular offset.
	offset := length * 0.2
	return midX - (dy/length)*offset, midY + (dx/length)*offset
}
