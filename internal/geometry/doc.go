// Package geometry provides the coordinate math shared by the annotation
// validator and the renderers.
//
// Annotation positions arrive as percentages (0-100) of the image dimensions
// and are converted to pixel space exactly once, with a single rounding rule
// (round half away from zero via math.Round). The validator and every renderer
// use the same conversion so that collision checks and drawn pixels never
// disagree by an off-by-one.
//
// # Coordinate System
//
// Pixel coordinates are 0-based with origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Radius Scaling
//
// Callout circles scale with image width (about 5.5% of it) and are clamped
// to a readable range so that a tiny thumbnail still gets a legible marker
// and a full-resolution screenshot does not get a dinner plate.
package geometry
