package consistency

import (
	"fmt"
	"os"
	"sort"

	"github.com/ironsheep/screenshot-annotate/internal/palette"
	"github.com/ironsheep/screenshot-annotate/internal/registry"
	"github.com/ironsheep/screenshot-annotate/internal/textref"
)

// Match records one agreement between text and image.
type Match struct {
	Figure     int    `json:"figure"`
	Annotation int    `json:"annotation"`
	Expected   string `json:"expected"`
	Actual     string `json:"actual"`
}

// Mismatch records one disagreement, with the hexes to aid diagnosis.
type Mismatch struct {
	Figure      int    `json:"figure"`
	Annotation  int    `json:"annotation"`
	Expected    string `json:"expected"`
	ExpectedHex string `json:"expected_hex"`
	Actual      string `json:"actual"`
	ActualHex   string `json:"actual_hex"`
}

// Report is the outcome of one consistency run.
type Report struct {
	Valid      bool       `json:"is_valid"`
	Errors     []string   `json:"errors"`
	Warnings   []string   `json:"warnings"`
	Matches    []Match    `json:"matches"`
	Mismatches []Mismatch `json:"mismatches"`
}

// Summary condenses a report to counts.
type Summary struct {
	TotalChecked int  `json:"total_checked"`
	Matches      int  `json:"matches"`
	Mismatches   int  `json:"mismatches"`
	Warnings     int  `json:"warnings"`
	Valid        bool `json:"is_valid"`
}

// Summary returns the count view of the report.
func (r *Report) Summary() Summary {
	return Summary{
		TotalChecked: len(r.Matches) + len(r.Mismatches),
		Matches:      len(r.Matches),
		Mismatches:   len(r.Mismatches),
		Warnings:     len(r.Warnings),
		Valid:        len(r.Mismatches) == 0,
	}
}

func skipped(reason string) *Report {
	return &Report{Valid: true, Warnings: []string{reason}}
}

// ValidateFile checks the procedure text against a saved registry export.
// A missing registry file or a registry without a color map skips validation
// with a warning rather than failing.
func ValidateFile(docContent, registryPath string) (*Report, error) {
	if _, err := os.Stat(registryPath); os.IsNotExist(err) {
		return skipped("color validation skipped - no registry found"), nil
	}
	export, err := registry.Load(registryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry for validation: %w", err)
	}
	return Validate(docContent, export.ColorMap), nil
}

// Validate compares color references parsed from the document against the
// registry's per-figure color maps. Results are ordered by figure, then
// annotation number.
func Validate(docContent string, colorMaps map[int]registry.ColorMap) *Report {
	if len(colorMaps) == 0 {
		return skipped("color validation skipped - no color map in registry")
	}

	parser := textref.NewParser()
	parser.ParseText(docContent)
	expected := parser.ExpectedColors()
	if len(expected) == 0 {
		return skipped("no color references found in document text")
	}

	report := &Report{Valid: true}

	figures := make([]int, 0, len(expected))
	for fig := range expected {
		figures = append(figures, fig)
	}
	sort.Ints(figures)

	for _, fig := range figures {
		actualColors := colorMaps[fig]

		annNums := make([]int, 0, len(expected[fig]))
		for num := range expected[fig] {
			annNums = append(annNums, num)
		}
		sort.Ints(annNums)

		for _, num := range annNums {
			want := expected[fig][num]
			actual, ok := actualColors[num]
			if !ok {
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"figure %d annotation %d: expected %s, but annotation not found in registry",
					fig, num, want))
				continue
			}

			if palette.Equivalent(want, actual.ColorName) {
				report.Matches = append(report.Matches, Match{
					Figure:     fig,
					Annotation: num,
					Expected:   want,
					Actual:     actual.ColorName,
				})
				continue
			}

			report.Mismatches = append(report.Mismatches, Mismatch{
				Figure:      fig,
				Annotation:  num,
				Expected:    want,
				ExpectedHex: hexOrUnknown(want),
				Actual:      actual.ColorName,
				ActualHex:   actual.Hex,
			})
			report.Errors = append(report.Errors, fmt.Sprintf(
				"color mismatch: figure %d annotation %d: text says %q but image has %q",
				fig, num, want, actual.ColorName))
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func hexOrUnknown(name string) string {
	if hex, ok := palette.Colors[name]; ok {
		return hex
	}
	return "?"
}
