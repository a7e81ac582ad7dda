package annotate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Annotation types.
const (
	TypeCallout   = "callout"
	TypeArrow     = "arrow"
	TypeHighlight = "highlight"
	TypeCircle    = "circle"
	TypeLabel     = "label"
)

// Position is a point in percentage units (0-100) of the image dimensions.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// BBox is a rectangle in percentage units: top-left corner plus size.
type BBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Annotation is one annotation descriptor. The Type field selects the
// variant; the geometry fields used depend on it:
//
//   - callout: Position, Number (required), Description (required)
//   - arrow: Position (start), End, Description (required)
//   - highlight: BBox, Description (required)
//   - circle: Position, Radius (percent of image width, default 5)
//   - label: Position, Text
type Annotation struct {
	Type        string    `json:"type"`
	Position    *Position `json:"position,omitempty"`
	End         *Position `json:"end,omitempty"`
	BBox        *BBox     `json:"bbox,omitempty"`
	Number      int       `json:"number,omitempty"`
	Radius      float64   `json:"radius,omitempty"`
	Text        string    `json:"text,omitempty"`
	Color       string    `json:"color,omitempty"`
	BgColor     string    `json:"bg_color,omitempty"`
	Description string    `json:"description,omitempty"`
	Curved      *bool     `json:"curved,omitempty"`

	// Figure metadata, conventionally set on the first annotation of an image.
	Section     string `json:"section,omitempty"`
	FigureTitle string `json:"figure_title,omitempty"`
}

// IsCurved reports whether an arrow should be drawn curved. Arrows curve by
// default; callers opt out with "curved": false.
func (a *Annotation) IsCurved() bool {
	return a.Curved == nil || *a.Curved
}

// DefaultColorFor returns the type-specific default palette key used when a
// descriptor carries no color of its own.
func DefaultColorFor(annType string) string {
	switch annType {
	case TypeArrow, TypeLabel:
		return "primary"
	case TypeHighlight:
		return "warning"
	default:
		return "critical"
	}
}

// AnnotationSet maps an image stem to its ordered descriptor list.
type AnnotationSet map[string][]Annotation

// LoadAnnotations reads an annotation JSON file. Top-level keys starting with
// an underscore ("_comment", "_schema", ...) are documentation and skipped.
func LoadAnnotations(path string) (AnnotationSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read annotations: %w", err)
	}
	return ParseAnnotations(data)
}

// ParseAnnotations decodes annotation JSON, dropping metadata keys.
func ParseAnnotations(data []byte) (AnnotationSet, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse annotations: %w", err)
	}

	set := make(AnnotationSet, len(raw))
	for stem, msg := range raw {
		if strings.HasPrefix(stem, "_") {
			continue
		}
		var list []Annotation
		if err := json.Unmarshal(msg, &list); err != nil {
			return nil, fmt.Errorf("failed to parse annotations for %q: %w", stem, err)
		}
		set[stem] = list
	}
	return set, nil
}
