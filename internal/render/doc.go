// Package render draws annotation primitives onto a raster canvas.
//
// All renderers consume pixel positions that have already been validated (or
// convert percentages themselves using the same rounding rule as the
// validator, via the geometry package). Annotations are drawn in descriptor
// order; later annotations composite over earlier ones.
//
// # Primitives
//
//   - Callout: filled numbered circle with a light outline, number centered
//     on the measured glyph bounding box
//   - Arrow: straight or quadratic-bezier curved polyline with a filled
//     triangular arrowhead aligned to the curve tangent at the endpoint
//   - Highlight: semi-transparent box drawn on a separate overlay and
//     alpha-composited onto the canvas
//   - Circle: unfilled ring outline
//   - Label: text on a measured background rectangle
//
// # Fonts
//
// Text uses the embedded Go Regular face (golang.org/x/image/font/gofont),
// so rendering needs no filesystem fonts. Faces are cached per size.
//
// A Canvas is not safe for concurrent use; batch processing renders each
// image on its own Canvas.
package render
