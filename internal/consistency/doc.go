// Package consistency cross-checks annotation colors against procedure text.
//
// The registry records what color each numbered annotation was actually drawn
// in; the procedure text claims colors in prose ("the red callout 1"). This
// package compares the two and reports mismatches as errors. Color aliases
// that share a hex (red/critical, gold/warning/yellow) count as matches.
//
// Missing data degrades to warnings, never errors: an absent registry file,
// an empty color map, a text with no color references, or a referenced
// annotation the registry does not know all produce a valid result with a
// warning attached. Only a genuine color disagreement fails validation.
package consistency
