package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// drawLine draws a straight line with the given thickness by stepping along
// the segment and offsetting along its normal.
func drawLine(img *image.RGBA, x1, y1, x2, y2 float64, thickness int, c color.Color) {
	dx := x2 - x1
	dy := y2 - y1
	dist := math.Sqrt(dx*dx + dy*dy)
	halfThick := float64(thickness) / 2

	if dist < 1 {
		for ty := -halfThick; ty <= halfThick; ty++ {
			for tx := -halfThick; tx <= halfThick; tx++ {
				img.Set(int(x1+tx), int(y1+ty), c)
			}
		}
		return
	}

	steps := math.Max(math.Abs(dx), math.Abs(dy))
	perpX := -dy / dist
	perpY := dx / dist

	for i := 0.0; i <= steps; i++ {
		t := i / steps
		cx := x1 + dx*t
		cy := y1 + dy*t
		for offset := -halfThick; offset <= halfThick; offset += 0.5 {
			img.Set(int(cx+perpX*offset), int(cy+perpY*offset), c)
		}
	}
}

// drawPolyline connects consecutive points with thick line segments.
func drawPolyline(img *image.RGBA, points []point, thickness int, c color.Color) {
	for i := 0; i+1 < len(points); i++ {
		drawLine(img, points[i].x, points[i].y, points[i+1].x, points[i+1].y, thickness, c)
	}
}

type point struct {
	x float64
	y float64
}

// fillCircle draws a filled circle with an outline of the given width.
func fillCircle(img *image.RGBA, cx, cy, radius int, fill, outline color.Color, outlineWidth int) {
	r := float64(radius)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if float64(dx*dx+dy*dy) <= r*r {
				img.Set(cx+dx, cy+dy, fill)
			}
		}
	}
	if outlineWidth > 0 {
		ringOutline(img, cx, cy, radius, outline, outlineWidth)
	}
}

// ringOutline draws an unfilled circle outline, walking the circumference and
// thickening along the radial normal.
func ringOutline(img *image.RGBA, cx, cy, radius int, c color.Color, width int) {
	r := float64(radius)
	half := float64(width) / 2
	for angle := 0.0; angle < 2*math.Pi; angle += 0.004 {
		nx := math.Cos(angle)
		ny := math.Sin(angle)
		for t := -half; t <= half; t += 0.5 {
			img.Set(int(float64(cx)+nx*(r+t)), int(float64(cy)+ny*(r+t)), c)
		}
	}
}

// fillRect fills an axis-aligned rectangle, clipped to the image.
func fillRect(img *image.RGBA, x, y, w, h int, c color.Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			img.Set(xx, yy, c)
		}
	}
}

// strokeRect draws a rectangle outline of the given border width, growing
// inward from the rectangle edge.
func strokeRect(img *image.RGBA, x, y, w, h, border int, c color.Color) {
	for i := 0; i < border; i++ {
		for xx := x; xx < x+w; xx++ {
			img.Set(xx, y+i, c)
			img.Set(xx, y+h-1-i, c)
		}
		for yy := y; yy < y+h; yy++ {
			img.Set(x+i, yy, c)
			img.Set(x+w-1-i, yy, c)
		}
	}
}

// drawArrowhead draws a filled triangular arrowhead at (x2,y2) pointing from
// (x1,y1), with wings spread 30 degrees either side of the direction vector.
func drawArrowhead(img *image.RGBA, x1, y1, x2, y2 float64, size int, c color.Color) {
	angle := math.Atan2(y2-y1, x2-x1)
	const wingAngle = math.Pi / 6

	s := float64(size)
	p1x := x2 - s*math.Cos(angle-wingAngle)
	p1y := y2 - s*math.Sin(angle-wingAngle)
	p2x := x2 - s*math.Cos(angle+wingAngle)
	p2y := y2 - s*math.Sin(angle+wingAngle)

	// Fill the triangle as a fan of lines from the tip to the base.
	drawLine(img, x2, y2, p1x, p1y, 1, c)
	drawLine(img, x2, y2, p2x, p2y, 1, c)
	for t := 0.0; t <= 1.0; t += 0.02 {
		bx := p1x + (p2x-p1x)*t
		by := p1y + (p2y-p1y)*t
		drawLine(img, x2, y2, bx, by, 1, c)
	}
}

// drawText draws text with the baseline dot at (x, y).
func drawText(img *image.RGBA, x, y int, text string, size int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: faceFor(size),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// drawTextCentered draws text centered on (cx, cy) using the measured glyph
// bounding box rather than the nominal font metrics.
func drawTextCentered(img *image.RGBA, cx, cy int, text string, size int, c color.Color) {
	width, height, minX, minY := measureText(text, size)
	dotX := cx - width/2 - minX
	dotY := cy - height/2 - minY
	drawText(img, dotX, dotY, text, size, c)
}
