package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/anthonynsimon/bild/blend"

	"github.com/ironsheep/screenshot-annotate/internal/annotate"
	"github.com/ironsheep/screenshot-annotate/internal/geometry"
	"github.com/ironsheep/screenshot-annotate/internal/palette"
)

// Canvas is a mutable working image that annotations are drawn onto.
//
// Highlight compositing replaces the underlying image, so callers must go
// through Canvas methods rather than holding the *image.RGBA across calls.
type Canvas struct {
	img    *image.RGBA
	width  int
	height int
	style  Style
}

// NewCanvas copies the source image into a fresh RGBA working canvas.
func NewCanvas(src image.Image, style Style) *Canvas {
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return &Canvas{
		img:    img,
		width:  bounds.Dx(),
		height: bounds.Dy(),
		style:  style,
	}
}

// Image returns the current working image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.width }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.height }

// DrawCallout draws a filled numbered circle centered at (x, y).
func (c *Canvas) DrawCallout(x, y, radius, number int, col color.RGBA) {
	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	fillCircle(c.img, x, y, radius, col, white, 2)

	if number <= 0 {
		number = 1
	}
	size := CalloutFontSize(radius)
	drawTextCentered(c.img, x, y, fmt.Sprintf("%d", number), size, white)
}

// DrawArrow draws an arrow from (x1, y1) to (x2, y2). Curved arrows follow a
// quadratic bezier whose control point is offset 20% of the chord length
// perpendicular to the chord.
func (c *Canvas) DrawArrow(x1, y1, x2, y2 int, col color.RGBA, curved bool) {
	fx1, fy1 := float64(x1), float64(y1)
	fx2, fy2 := float64(x2), float64(y2)

	if math.Hypot(fx2-fx1, fy2-fy1) == 0 {
		return
	}

	if !curved {
		drawLine(c.img, fx1, fy1, fx2, fy2, c.style.ArrowWidth, col)
		drawArrowhead(c.img, fx1, fy1, fx2, fy2, c.style.ArrowHeadSize, col)
		return
	}

	cx, cy := geometry.CurveControlPoint(fx1, fy1, fx2, fy2)
	samples := geometry.QuadBezierPoints(fx1, fy1, cx, cy, fx2, fy2)

	points := make([]point, len(samples))
	for i, s := range samples {
		points[i] = point{x: s.X, y: s.Y}
	}
	drawPolyline(c.img, points, c.style.ArrowWidth, col)

	// Aim the arrowhead along the curve's end tangent, not the chord:
	// use the last two sampled points as the head's direction segment.
	last := samples[len(samples)-1]
	prev := samples[len(samples)-2]
	drawArrowhead(c.img, prev.X, prev.Y, last.X, last.Y, c.style.ArrowHeadSize, col)
}

// DrawHighlight draws a semi-transparent box with a solid border. The box is
// rendered on a fully transparent overlay of the same size and then
// alpha-composited onto the working image, which replaces the canvas image.
func (c *Canvas) DrawHighlight(x, y, w, h int, col color.RGBA) {
	overlay := image.NewRGBA(c.img.Bounds())

	alpha := uint8(255 * c.style.HighlightOpacity)
	fill := color.NRGBA{R: col.R, G: col.G, B: col.B, A: alpha}
	fillRect(overlay, x, y, w, h, fill)
	strokeRect(overlay, x, y, w, h, c.style.BorderWidth, col)

	// Compositing produces a new image; the old drawing target is stale.
	c.img = blend.Normal(c.img, overlay)
}

// DrawRing draws an unfilled circle outline centered at (x, y).
func (c *Canvas) DrawRing(x, y, radius int, col color.RGBA) {
	ringOutline(c.img, x, y, radius, col, c.style.BorderWidth)
}

// DrawLabel draws text on a background rectangle sized to the measured text
// bounding box plus padding. (x, y) is the text's top-left corner.
func (c *Canvas) DrawLabel(x, y int, text string, textCol, bgCol color.RGBA) {
	if text == "" {
		return
	}
	size := c.style.LabelFontSize
	pad := c.style.LabelPadding

	width, height, minX, minY := measureText(text, size)
	fillRect(c.img, x-pad, y-pad, width+2*pad, height+2*pad, bgCol)
	drawText(c.img, x-minX, y-minY, text, size, textCol)
}

// Apply renders one annotation descriptor. pos is the final validated pixel
// placement; when nil the canvas converts and clamps the descriptor's own
// percentages using the shared geometry rules.
func (c *Canvas) Apply(ann *annotate.Annotation, pos *annotate.PixelBounds) error {
	col := c.resolveColor(ann)

	switch ann.Type {
	case annotate.TypeCallout:
		x, y, radius := c.placement(ann, pos, geometry.DynamicRadius(c.width))
		c.DrawCallout(x, y, radius, ann.Number, col)

	case annotate.TypeArrow:
		start := ann.Position
		if start == nil {
			start = &annotate.Position{X: 50, Y: 50}
		}
		x1 := geometry.PercentToPixel(start.X, c.width)
		y1 := geometry.PercentToPixel(start.Y, c.height)

		end := ann.End
		if end == nil {
			end = &annotate.Position{X: 50, Y: 50}
		}
		x2 := geometry.PercentToPixel(end.X, c.width)
		y2 := geometry.PercentToPixel(end.Y, c.height)
		if pos != nil {
			x2, y2 = pos.X, pos.Y
		}
		c.DrawArrow(x1, y1, x2, y2, col, ann.IsCurved())

	case annotate.TypeHighlight:
		bbox := ann.BBox
		if bbox == nil {
			bbox = &annotate.BBox{X: 40, Y: 40, W: 20, H: 20}
		}
		w := geometry.PercentToPixel(bbox.W, c.width)
		h := geometry.PercentToPixel(bbox.H, c.height)
		x := geometry.PercentToPixel(bbox.X, c.width)
		y := geometry.PercentToPixel(bbox.Y, c.height)
		if pos != nil {
			// The validator tracks the box center; recover the top-left.
			x = pos.X - w/2
			y = pos.Y - h/2
		}
		c.DrawHighlight(x, y, w, h, col)

	case annotate.TypeCircle:
		radiusPercent := ann.Radius
		if radiusPercent == 0 {
			radiusPercent = 5
		}
		radius := geometry.PercentToPixel(radiusPercent, c.width)
		x, y, _ := c.placement(ann, pos, radius)
		c.DrawRing(x, y, radius, col)

	case annotate.TypeLabel:
		x, y, _ := c.placement(ann, pos, 0)
		textCol := palette.ContrastText(c.resolveBg(ann))
		if ann.Color != "" {
			textCol = palette.Resolve(ann.Color)
		}
		c.DrawLabel(x, y, ann.Text, textCol, c.resolveBg(ann))

	default:
		return fmt.Errorf("unknown annotation type: %q", ann.Type)
	}

	return nil
}

// ApplyAll renders an ordered descriptor list using the final positions from
// a validation batch. The batch must come from validating the same list.
func (c *Canvas) ApplyAll(annotations []annotate.Annotation, batch *annotate.BatchResult) error {
	if batch != nil && len(batch.Results) != len(annotations) {
		return fmt.Errorf("validation batch has %d results for %d annotations",
			len(batch.Results), len(annotations))
	}

	for i := range annotations {
		var pos *annotate.PixelBounds
		if batch != nil {
			r := batch.Results[i]
			final := r.OriginalPosition
			if r.AdjustedPosition != nil {
				final = *r.AdjustedPosition
			}
			pos = &final
		}
		if err := c.Apply(&annotations[i], pos); err != nil {
			return fmt.Errorf("annotation %d: %w", i, err)
		}
	}
	return nil
}

// placement resolves the final center point for a point-style annotation,
// preferring the validated position and otherwise converting and clamping
// the descriptor's own percentages.
func (c *Canvas) placement(ann *annotate.Annotation, pos *annotate.PixelBounds, radius int) (int, int, int) {
	if pos != nil {
		return pos.X, pos.Y, radiusOr(pos.Radius, radius)
	}

	p := ann.Position
	if p == nil {
		p = &annotate.Position{X: 50, Y: 50}
	}
	x := geometry.PercentToPixel(p.X, c.width)
	y := geometry.PercentToPixel(p.Y, c.height)
	if radius > 0 {
		x, y = geometry.ClampToBounds(x, y, radius, c.width, c.height, annotate.DefaultMargin)
	}
	return x, y, radius
}

func radiusOr(validated, fallback int) int {
	if fallback > 0 {
		return fallback
	}
	return validated
}

func (c *Canvas) resolveColor(ann *annotate.Annotation) color.RGBA {
	value := ann.Color
	if value == "" {
		value = annotate.DefaultColorFor(ann.Type)
	}
	return palette.Resolve(value)
}

func (c *Canvas) resolveBg(ann *annotate.Annotation) color.RGBA {
	if ann.BgColor != "" {
		return palette.Resolve(ann.BgColor)
	}
	return palette.Resolve("primary")
}
