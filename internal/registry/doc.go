// Package registry tracks every processed figure across a document run.
//
// The registry assigns monotonic 1-based figure numbers at registration time.
// Numbers are never reused, even if a figure is later excluded, because
// registration order determines the externally visible numbering in the
// generated document.
//
// For each figure the registry derives a color map from the annotations that
// carry a number (callouts, in practice): annotation number to canonical
// color name, hex, and annotation type. The consistency validator compares
// this map against color words extracted from the procedure text.
//
// Registry is safe for concurrent use; the batch pipeline registers figures
// from multiple image workers. Everything else about a figure is immutable
// after AddFigure.
package registry
