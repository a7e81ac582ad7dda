// Package pipeline orchestrates a full document run: scan the input
// directory, annotate every screenshot, and emit the annotated images plus
// the figure registry.
//
// Per image the pipeline loads and preprocesses the screenshot, validates
// the annotation descriptors against its dimensions, renders the validated
// placements, and optionally appends a legend. Rendering runs on a bounded
// worker pool; figure numbering and file naming happen afterwards in sorted
// filename order so output names are deterministic regardless of worker
// scheduling.
//
// A failed image is recorded in the run summary and does not stop the batch.
// When a procedure text is supplied the pipeline also extracts its color
// references and validates them against the registry.
package pipeline
