package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/ironsheep/screenshot-annotate/internal/annotate"
	"github.com/ironsheep/screenshot-annotate/internal/palette"
)

// generatedBy identifies the producer in exported registry files.
const generatedBy = "screenshot-annotate"

// AnnotationColor is one entry of a figure's color map.
type AnnotationColor struct {
	ColorName string `json:"color_name"`
	Hex       string `json:"hex"`
	Type      string `json:"type"`
}

// ColorMap maps annotation number to its resolved color.
type ColorMap map[int]AnnotationColor

// Dimensions records the final annotated image size.
type Dimensions struct {
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`
}

// CalloutRef is one inline text reference for a numbered callout. Color names
// the marker drawn on the screenshot; the inline reference itself is a bare
// "(callout N)" so procedure text never restates colors.
type CalloutRef struct {
	Number          int    `json:"number"`
	Color           string `json:"color"`
	Description     string `json:"description"`
	InlineReference string `json:"inline_reference"`
}

// displayColors maps role aliases to the reader-facing color words used in
// callout text references.
var displayColors = map[string]string{
	"critical": "red",
	"warning":  "gold",
	"info":     "blue",
	"success":  "green",
	"primary":  "teal",
}

// Figure is one processed, annotated screenshot. Figures are immutable after
// registration.
type Figure struct {
	FigureNumber    int                   `json:"figure_number"`
	SourceImage     string                `json:"source_image"`
	AnnotatedImage  string                `json:"annotated_image"`
	Title           string                `json:"title"`
	Description     string                `json:"description"`
	StepReference   string                `json:"step_reference,omitempty"`
	Annotations     []annotate.Annotation `json:"annotations"`
	Legend          []palette.LegendEntry `json:"legend"`
	CalloutsForText []CalloutRef          `json:"callouts_for_text"`
	Dimensions      Dimensions            `json:"dimensions"`
	Section         string                `json:"section"`
	ColorMap        ColorMap              `json:"color_map,omitempty"`
}

// Export is the JSON document produced by ToJSON / Save.
type Export struct {
	Figures      []Figure          `json:"figures"`
	TotalCount   int               `json:"total_count"`
	ColorMap     map[int]ColorMap  `json:"color_map"`
	ColorPalette map[string]string `json:"color_palette"`
	GeneratedBy  string            `json:"generated_by"`
}

// Registry tracks figures for one document run. The figure-number counter is
// guarded by a mutex so concurrent image workers register safely; numbering
// still follows registration order.
type Registry struct {
	mu         sync.Mutex
	figures    []Figure
	nextNumber int
	colorMap   map[int]ColorMap
}

// New creates an empty figure registry.
func New() *Registry {
	return &Registry{
		nextNumber: 1,
		colorMap:   make(map[int]ColorMap),
	}
}

// AddFigure registers a processed figure and returns its assigned number.
//
// The color map is derived only from annotations carrying a number; their
// color values are normalized to canonical palette keys. Title and
// Description fall back to the first annotation that supplies them, then to
// "Figure N" and "Screenshot". Numbered callouts also produce the
// CalloutsForText list used for inline procedure references.
func (r *Registry) AddFigure(fig Figure) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	fig.FigureNumber = r.nextNumber
	r.nextNumber++

	if fig.Section == "" {
		fig.Section = "Uncategorized"
	}

	var firstDesc, firstTitle string
	colors := make(ColorMap)
	for _, ann := range fig.Annotations {
		if firstDesc == "" && ann.Description != "" {
			firstDesc = ann.Description
		}
		if firstTitle == "" && ann.FigureTitle != "" {
			firstTitle = ann.FigureTitle
		}
		if ann.Number == 0 {
			continue
		}
		colorValue := ann.Color
		if colorValue == "" {
			colorValue = palette.DefaultColor
		}
		name := palette.Normalize(colorValue)
		annType := ann.Type
		if annType == "" {
			annType = annotate.TypeCallout
		}
		colors[ann.Number] = AnnotationColor{
			ColorName: name,
			Hex:       paletteHexOr(name, colorValue),
			Type:      annType,
		}
	}
	if len(colors) > 0 {
		fig.ColorMap = colors
		r.colorMap[fig.FigureNumber] = colors
	}

	if fig.Title == "" {
		fig.Title = firstTitle
	}
	if fig.Title == "" {
		fig.Title = fmt.Sprintf("Figure %d", fig.FigureNumber)
	}
	if fig.Description == "" {
		fig.Description = firstDesc
	}
	if fig.Description == "" {
		fig.Description = "Screenshot"
	}
	fig.CalloutsForText = calloutsForText(fig.Annotations)

	r.figures = append(r.figures, fig)
	return fig.FigureNumber
}

// calloutsForText derives the inline text references for numbered callouts,
// sorted by callout number. The display color collapses role aliases to the
// color word a reader would use.
func calloutsForText(anns []annotate.Annotation) []CalloutRef {
	var refs []CalloutRef
	for _, ann := range anns {
		if ann.Type != annotate.TypeCallout || ann.Number == 0 {
			continue
		}
		colorValue := ann.Color
		if colorValue == "" {
			colorValue = palette.DefaultColor
		}
		name := palette.Normalize(colorValue)
		if display, ok := displayColors[name]; ok {
			name = display
		}
		desc := ann.Description
		if desc == "" {
			desc = fmt.Sprintf("Action %d", ann.Number)
		}
		refs = append(refs, CalloutRef{
			Number:          ann.Number,
			Color:           name,
			Description:     desc,
			InlineReference: fmt.Sprintf("(callout %d)", ann.Number),
		})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Number < refs[j].Number })
	return refs
}

// paletteHexOr returns the palette hex for a known name, otherwise the raw
// value (which at this point is a literal hex string the palette lacks).
func paletteHexOr(name, raw string) string {
	if hex, ok := palette.Colors[name]; ok {
		return hex
	}
	return raw
}

// NextNumber returns the number the next registered figure will receive.
func (r *Registry) NextNumber() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.nextNumber
}

// Len returns the number of registered figures.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.figures)
}

// Figure returns the figure with the given number, if registered.
func (r *Registry) Figure(number int) (Figure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, fig := range r.figures {
		if fig.FigureNumber == number {
			return fig, true
		}
	}
	return Figure{}, false
}

// FiguresBySection returns all figures registered under a section name.
func (r *Registry) FiguresBySection(section string) []Figure {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Figure
	for _, fig := range r.figures {
		if fig.Section == section {
			out = append(out, fig)
		}
	}
	return out
}

// ColorMaps returns the aggregate figure-number to color-map view.
func (r *Registry) ColorMaps() map[int]ColorMap {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]ColorMap, len(r.colorMap))
	for figNum, colors := range r.colorMap {
		cm := make(ColorMap, len(colors))
		for annNum, c := range colors {
			cm[annNum] = c
		}
		out[figNum] = cm
	}
	return out
}

// ToJSON builds the exportable registry document.
func (r *Registry) ToJSON() Export {
	r.mu.Lock()
	defer r.mu.Unlock()

	figures := make([]Figure, len(r.figures))
	copy(figures, r.figures)

	return Export{
		Figures:      figures,
		TotalCount:   len(figures),
		ColorMap:     r.colorMap,
		ColorPalette: palette.Colors,
		GeneratedBy:  generatedBy,
	}
}

// Save writes the registry as indented JSON.
func (r *Registry) Save(path string) error {
	data, err := json.MarshalIndent(r.ToJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write registry: %w", err)
	}
	return nil
}

// Load reads a previously saved registry export.
func Load(path string) (*Export, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}
	var export Export
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, fmt.Errorf("failed to parse registry: %w", err)
	}
	return &export, nil
}
