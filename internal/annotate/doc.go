// Package annotate defines the annotation descriptor model and the validator
// that screens descriptors before rendering.
//
// Descriptors arrive as JSON keyed by image stem, with positions expressed in
// percentage units (0-100). The validator converts each descriptor to pixel
// space, checks structural requirements and geometric fit, and auto-adjusts
// positions that fall out of bounds or collide with earlier annotations.
//
// # Validation Semantics
//
// Structural problems (missing description on callout/arrow/highlight,
// percentages outside 0-100) are errors: the result is marked invalid but the
// annotation is still placed, so the caller can decide whether to treat the
// batch as fatal. Geometric problems (out of bounds, collision, near-edge
// placement) are warnings that trigger automatic clamping or adjustment,
// never rejection.
//
// The collision-adjustment heuristic is a best-effort single-pass vector
// push. It does not re-check collisions after moving an annotation, so dense
// layouts can still overlap after adjustment; a second collision check is
// informational only.
//
// Validator state (the placed-annotations list) is scoped to one image and
// reset by ValidateAll. Create a fresh Validator per image when processing a
// batch concurrently.
package annotate
