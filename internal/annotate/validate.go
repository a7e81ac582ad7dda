package annotate

import (
	"fmt"
	"math"

	"github.com/ironsheep/screenshot-annotate/internal/geometry"
)

// Validation tuning constants.
const (
	// DefaultMargin is the minimum pixel gap kept between an annotation's
	// extent and the image edge.
	DefaultMargin = 5

	// minCollisionGap is the required clearance between two annotation
	// extents before they count as colliding.
	minCollisionGap = 5

	// arrowProxyRadius stands in for an arrowhead when checking bounds and
	// collisions; the tip is what must stay visible.
	arrowProxyRadius = 15

	// nearEdgePercent flags positions close enough to an edge that the
	// rendered annotation is likely to be clipped before clamping kicks in.
	nearEdgePercent = 5
)

// PixelBounds is a pixel-space placement: center plus effective radius.
//
// The effective radius is the collision/bounds radius for the descriptor
// type, which may differ from the rendered radius (arrows use a fixed proxy
// at the tip, labels estimate from text length).
type PixelBounds struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Radius int `json:"radius"`
}

// Placed records an annotation that has been admitted at its final pixel
// position. Subsequent annotations in the same batch see it as an obstacle.
type Placed struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Radius int    `json:"radius"`
	Type   string `json:"type"`
	Number int    `json:"number,omitempty"`
}

// Collision describes one pairwise conflict found by CheckCollisions.
// Overlap is signed: required distance minus actual distance.
type Collision struct {
	Placed   Placed  `json:"placed"`
	Distance float64 `json:"distance"`
	Required float64 `json:"required"`
	Overlap  float64 `json:"overlap"`
}

// Result is the outcome of validating a single annotation.
type Result struct {
	Index            int          `json:"index"`
	Valid            bool         `json:"valid"`
	Adjusted         bool         `json:"adjusted"`
	OriginalPosition PixelBounds  `json:"original_position"`
	AdjustedPosition *PixelBounds `json:"adjusted_position,omitempty"`
	Warnings         []string     `json:"warnings,omitempty"`
	Errors           []string     `json:"errors,omitempty"`
}

// BatchResult aggregates validation over an ordered descriptor list.
type BatchResult struct {
	Results  []Result `json:"annotations"`
	Total    int      `json:"total"`
	Valid    int      `json:"valid"`
	Adjusted int      `json:"adjusted"`
	Errors   int      `json:"errors"`
	AllValid bool     `json:"all_valid"`
}

// Validator screens annotation descriptors for one image. It accumulates
// placed annotations across a batch; state is reset by ValidateAll.
//
// A Validator is not safe for concurrent use. Batch processing creates one
// per image.
type Validator struct {
	width  int
	height int
	margin int
	placed []Placed
}

// NewValidator creates a validator for an image of the given pixel size.
func NewValidator(width, height int) *Validator {
	return &Validator{width: width, height: height, margin: DefaultMargin}
}

// Placed returns the annotations admitted so far, in placement order.
func (v *Validator) Placed() []Placed {
	return v.placed
}

// BoundsFor computes the pixel-space center and effective radius for a
// descriptor. Missing geometry falls back to centered defaults so a malformed
// descriptor still validates (and collects errors) instead of panicking.
func (v *Validator) BoundsFor(ann *Annotation) PixelBounds {
	pos := ann.Position
	if pos == nil {
		pos = &Position{X: 50, Y: 50}
	}

	switch ann.Type {
	case TypeCallout:
		return PixelBounds{
			X:      geometry.PercentToPixel(pos.X, v.width),
			Y:      geometry.PercentToPixel(pos.Y, v.height),
			Radius: geometry.DynamicRadius(v.width),
		}

	case TypeCircle:
		radius := ann.Radius
		if radius == 0 {
			radius = 5
		}
		return PixelBounds{
			X:      geometry.PercentToPixel(pos.X, v.width),
			Y:      geometry.PercentToPixel(pos.Y, v.height),
			Radius: geometry.PercentToPixel(radius, v.width),
		}

	case TypeLabel:
		text := ann.Text
		if text == "" {
			text = "Label"
		}
		radius := 4 * len(text)
		if radius < 20 {
			radius = 20
		}
		return PixelBounds{
			X:      geometry.PercentToPixel(pos.X, v.width),
			Y:      geometry.PercentToPixel(pos.Y, v.height),
			Radius: radius,
		}

	case TypeHighlight:
		bbox := ann.BBox
		if bbox == nil {
			bbox = &BBox{X: 40, Y: 40, W: 20, H: 20}
		}
		rx := geometry.PercentToPixel(bbox.W/2, v.width)
		ry := geometry.PercentToPixel(bbox.H/2, v.height)
		radius := rx
		if ry > radius {
			radius = ry
		}
		return PixelBounds{
			X:      geometry.PercentToPixel(bbox.X+bbox.W/2, v.width),
			Y:      geometry.PercentToPixel(bbox.Y+bbox.H/2, v.height),
			Radius: radius,
		}

	case TypeArrow:
		// The arrowhead is the critical point; the tail may run off-canvas
		// without hiding information.
		end := ann.End
		if end == nil {
			end = &Position{X: 50, Y: 50}
		}
		return PixelBounds{
			X:      geometry.PercentToPixel(end.X, v.width),
			Y:      geometry.PercentToPixel(end.Y, v.height),
			Radius: arrowProxyRadius,
		}
	}

	return PixelBounds{X: v.width / 2, Y: v.height / 2, Radius: 18}
}

// CheckBounds reports whether the extent fits inside the canvas with margin,
// returning a human-readable reason for the first violated edge.
func (v *Validator) CheckBounds(x, y, radius int) (bool, string) {
	switch {
	case x-radius < v.margin:
		return false, fmt.Sprintf("too close to left edge (x=%d, radius=%d)", x, radius)
	case x+radius > v.width-v.margin:
		return false, fmt.Sprintf("too close to right edge (x=%d, radius=%d)", x, radius)
	case y-radius < v.margin:
		return false, fmt.Sprintf("too close to top edge (y=%d, radius=%d)", y, radius)
	case y+radius > v.height-v.margin:
		return false, fmt.Sprintf("too close to bottom edge (y=%d, radius=%d)", y, radius)
	}
	return true, "ok"
}

// CheckCollisions compares a candidate placement against every annotation
// placed so far and returns all conflicts.
func (v *Validator) CheckCollisions(x, y, radius int) []Collision {
	var collisions []Collision
	for _, p := range v.placed {
		distance := geometry.Distance(x, y, p.X, p.Y)
		required := float64(radius + p.Radius + minCollisionGap)
		if distance < required {
			collisions = append(collisions, Collision{
				Placed:   p,
				Distance: distance,
				Required: required,
				Overlap:  required - distance,
			})
		}
	}
	return collisions
}

// SuggestAdjustment resolves collisions with a single-pass vector push: for
// each colliding neighbor, a unit vector pointing away from it scaled by
// (overlap + 5) is summed into a displacement, which is then applied and
// bounds-clamped.
//
// Coincident centers have no direction to push along, so they get a fixed
// diagonal displacement instead. The heuristic does not iterate: adjusted
// positions are not re-checked against the placed set.
func (v *Validator) SuggestAdjustment(x, y, radius int, collisions []Collision) (int, int) {
	if len(collisions) == 0 {
		return x, y
	}

	var dx, dy float64
	for _, col := range collisions {
		vx := float64(x - col.Placed.X)
		vy := float64(y - col.Placed.Y)
		dist := math.Sqrt(vx*vx + vy*vy)

		if dist > 0 {
			dx += (vx / dist) * (col.Overlap + 5)
			dy += (vy / dist) * (col.Overlap + 5)
		} else {
			dx += col.Overlap + 5
			dy += col.Overlap + 5
		}
	}

	newX := int(math.Round(float64(x) + dx))
	newY := int(math.Round(float64(y) + dy))
	return geometry.ClampToBounds(newX, newY, radius, v.width, v.height, v.margin)
}

// ValidateAndAdjust validates one descriptor and admits it to the placed set
// at its final (possibly adjusted) position.
//
// Structural problems mark the result invalid but never prevent placement;
// geometric problems are warnings that trigger adjustment.
func (v *Validator) ValidateAndAdjust(ann *Annotation) Result {
	result := Result{Valid: true}

	bounds := v.BoundsFor(ann)
	result.OriginalPosition = bounds
	x, y := bounds.X, bounds.Y

	// Required description on the legend-bearing types.
	switch ann.Type {
	case TypeCallout, TypeArrow, TypeHighlight:
		if ann.Description == "" {
			result.Errors = append(result.Errors,
				fmt.Sprintf("missing required 'description' field for %s", ann.Type))
			result.Valid = false
		}
	}

	result.Errors = append(result.Errors, v.structuralErrors(ann)...)
	if len(result.Errors) > 0 {
		result.Valid = false
	}

	result.Warnings = append(result.Warnings, v.nearEdgeWarnings(ann)...)

	if ok, reason := v.CheckBounds(x, y, bounds.Radius); !ok {
		result.Warnings = append(result.Warnings, "out of bounds: "+reason)
		x, y = geometry.ClampToBounds(x, y, bounds.Radius, v.width, v.height, v.margin)
		result.Adjusted = true
	}

	if collisions := v.CheckCollisions(x, y, bounds.Radius); len(collisions) > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("collision detected with %d annotation(s)", len(collisions)))
		x, y = v.SuggestAdjustment(x, y, bounds.Radius, collisions)
		result.Adjusted = true
	}

	if result.Adjusted {
		result.AdjustedPosition = &PixelBounds{X: x, Y: y, Radius: bounds.Radius}
	}

	v.placed = append(v.placed, Placed{
		X:      x,
		Y:      y,
		Radius: bounds.Radius,
		Type:   ann.Type,
		Number: ann.Number,
	})

	return result
}

// structuralErrors checks every percentage coordinate the descriptor carries
// against the [0,100] range.
func (v *Validator) structuralErrors(ann *Annotation) []string {
	var errs []string

	checkPos := func(label string, p *Position) {
		if p == nil {
			return
		}
		if p.X < 0 || p.X > 100 {
			errs = append(errs, fmt.Sprintf("invalid %s x position: %g (must be 0-100)", label, p.X))
		}
		if p.Y < 0 || p.Y > 100 {
			errs = append(errs, fmt.Sprintf("invalid %s y position: %g (must be 0-100)", label, p.Y))
		}
	}

	switch ann.Type {
	case TypeArrow:
		checkPos("start", ann.Position)
		checkPos("end", ann.End)
	case TypeHighlight:
		if bbox := ann.BBox; bbox != nil {
			if bbox.X < 0 || bbox.X > 100 || bbox.Y < 0 || bbox.Y > 100 {
				errs = append(errs, fmt.Sprintf("invalid highlight position: x=%g, y=%g", bbox.X, bbox.Y))
			}
		}
	default:
		checkPos("", ann.Position)
	}

	return errs
}

// nearEdgeWarnings flags point annotations within nearEdgePercent of an edge.
// Clamping will keep them on-canvas, but a placement this close to the edge
// usually means the coordinates were estimated badly.
func (v *Validator) nearEdgeWarnings(ann *Annotation) []string {
	switch ann.Type {
	case TypeCallout, TypeCircle, TypeLabel:
	default:
		return nil
	}
	if ann.Position == nil {
		return nil
	}

	var warns []string
	if ann.Position.X < nearEdgePercent || ann.Position.X > 100-nearEdgePercent {
		warns = append(warns, fmt.Sprintf("near horizontal edge (x=%g%%), may be clipped", ann.Position.X))
	}
	if ann.Position.Y < nearEdgePercent || ann.Position.Y > 100-nearEdgePercent {
		warns = append(warns, fmt.Sprintf("near vertical edge (y=%g%%), may be clipped", ann.Position.Y))
	}
	return warns
}

// ValidateAll resets the placed-annotations state and validates an ordered
// descriptor list. Order matters: earlier annotations are never retroactively
// moved by later ones.
func (v *Validator) ValidateAll(annotations []Annotation) *BatchResult {
	v.placed = nil

	batch := &BatchResult{
		Total:    len(annotations),
		AllValid: true,
		Results:  make([]Result, 0, len(annotations)),
	}

	for i := range annotations {
		result := v.ValidateAndAdjust(&annotations[i])
		result.Index = i
		batch.Results = append(batch.Results, result)

		if result.Valid {
			batch.Valid++
		} else {
			batch.Errors++
			batch.AllValid = false
		}
		if result.Adjusted {
			batch.Adjusted++
		}
	}

	return batch
}

// AdjustedPercent converts an adjusted pixel position back to percentage
// coordinates for reporting.
func (v *Validator) AdjustedPercent(p PixelBounds) Position {
	return Position{
		X: geometry.PixelToPercent(p.X, v.width),
		Y: geometry.PixelToPercent(p.Y, v.height),
	}
}
