package pipeline

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ironsheep/screenshot-annotate/internal/annotate"
	"github.com/ironsheep/screenshot-annotate/internal/consistency"
	"github.com/ironsheep/screenshot-annotate/internal/imaging"
	"github.com/ironsheep/screenshot-annotate/internal/palette"
	"github.com/ironsheep/screenshot-annotate/internal/registry"
	"github.com/ironsheep/screenshot-annotate/internal/render"
	"github.com/ironsheep/screenshot-annotate/internal/textref"
)

// Output filenames written into the output directory.
const (
	RegistryFilename  = "figure_registry.json"
	ColorRefsFilename = "color_references.json"
)

// defaultWorkers bounds concurrent image rendering.
const defaultWorkers = 4

var supportedExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// Options configure a batch run. InputDir and OutputDir are required.
type Options struct {
	InputDir  string
	OutputDir string

	// AnnotationsPath names the JSON file mapping image stem to its
	// annotation descriptors. Images without an entry get a placeholder
	// callout.
	AnnotationsPath string

	// ProcedurePath, when set, triggers color-reference extraction and
	// consistency validation after the batch.
	ProcedurePath string

	// Workers bounds concurrent rendering; <= 0 uses the default.
	Workers int

	// Preprocess resizes screenshots to TargetWidth before annotation.
	Preprocess  bool
	TargetWidth int

	// DrawLegend appends the annotation key below each figure.
	DrawLegend bool
}

// FigureResult records the outcome for one source image.
type FigureResult struct {
	Source       string                `json:"source"`
	Output       string                `json:"output,omitempty"`
	FigureNumber int                   `json:"figure_number,omitempty"`
	Placeholder  bool                  `json:"placeholder,omitempty"`
	Validation   *annotate.BatchResult `json:"validation,omitempty"`
	Warnings     []string              `json:"warnings,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	Results     []FigureResult      `json:"results"`
	Processed   int                 `json:"processed"`
	Failed      int                 `json:"failed"`
	VectorFiles []string            `json:"vector_files,omitempty"`
	Consistency *consistency.Report `json:"consistency,omitempty"`
}

// rendered carries a worker's output into the sequential numbering phase.
// Legend assignment happens there, not in the worker: the shared color
// manager allocates round-robin, and allocation order must not depend on
// goroutine scheduling.
type rendered struct {
	canvas *render.Canvas
	figure registry.Figure
}

func debugEnabled() bool {
	return os.Getenv("SCREENSHOT_ANNOTATE_LOG_LEVEL") == "debug"
}

func debugf(format string, args ...interface{}) {
	if debugEnabled() {
		log.Printf(format, args...)
	}
}

// Run executes a batch over all supported images in the input directory.
// Individual image failures are recorded in the summary; Run itself fails
// only on setup problems (missing directories, unreadable annotations).
func Run(opts Options) (*Summary, error) {
	if opts.InputDir == "" || opts.OutputDir == "" {
		return nil, fmt.Errorf("input and output directories are required")
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	images, err := scanImages(opts.InputDir)
	if err != nil {
		return nil, err
	}

	var annotations annotate.AnnotationSet
	if opts.AnnotationsPath != "" {
		annotations, err = annotate.LoadAnnotations(opts.AnnotationsPath)
		if err != nil {
			return nil, err
		}
	}

	summary := &Summary{}

	vectors, err := imaging.FindVectorFiles(opts.InputDir)
	if err != nil {
		return nil, err
	}
	if len(vectors) > 0 {
		summary.VectorFiles = vectors
		log.Printf("WARNING: %d WMF/EMF files cannot be processed; convert to PNG first: %s",
			len(vectors), strings.Join(vectors, ", "))
	}

	if len(images) == 0 {
		log.Printf("WARNING: no supported images found in %s (PNG, JPG, JPEG, GIF)", opts.InputDir)
		return summary, nil
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	cache := imaging.NewImageCache()
	manager := palette.NewManager()
	results := make([]FigureResult, len(images))
	outputs := make([]*rendered, len(images))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, name := range images {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res, out := processImage(opts, cache, annotations, name)
			results[i] = res
			outputs[i] = out
		}(i, name)
	}
	wg.Wait()

	// Numbering, naming, registration, and legend allocation follow sorted
	// filename order so a rerun produces identical output.
	reg := registry.New()
	for i := range images {
		res := &results[i]
		out := outputs[i]
		if out == nil {
			summary.Failed++
			continue
		}

		stem := strings.TrimSuffix(images[i], filepath.Ext(images[i]))
		legend := legendEntries(manager, stem, out.figure.Annotations)
		if opts.DrawLegend {
			out.canvas.DrawLegend(legend, render.LegendBottom)
		}
		final := out.canvas.Image()
		out.figure.Dimensions = registry.Dimensions{
			Width:  final.Bounds().Dx(),
			Height: final.Bounds().Dy(),
		}

		outputName := fmt.Sprintf("figure_%02d_%s.png", reg.NextNumber(), stem)
		outputPath := filepath.Join(opts.OutputDir, outputName)
		if err := imaging.Save(final, outputPath); err != nil {
			res.Error = err.Error()
			summary.Failed++
			continue
		}

		out.figure.AnnotatedImage = outputName
		out.figure.Legend = legend
		res.FigureNumber = reg.AddFigure(out.figure)
		res.Output = outputName
		summary.Processed++
		debugf("figure %d: %s -> %s", res.FigureNumber, images[i], outputName)
	}
	summary.Results = results

	if err := reg.Save(filepath.Join(opts.OutputDir, RegistryFilename)); err != nil {
		return nil, err
	}

	if opts.ProcedurePath != "" {
		if err := validateProcedure(opts, reg, summary); err != nil {
			return nil, err
		}
	}
	return summary, nil
}

// processImage renders one screenshot. A nil rendered return marks failure.
func processImage(opts Options, cache *imaging.ImageCache,
	set annotate.AnnotationSet, name string) (FigureResult, *rendered) {

	res := FigureResult{Source: name}
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	img, err := cache.Load(filepath.Join(opts.InputDir, name))
	if err != nil {
		res.Error = err.Error()
		return res, nil
	}

	if opts.Preprocess {
		img = imaging.Preprocess(img, imaging.PreprocessOptions{TargetWidth: opts.TargetWidth})
	}

	anns := set[stem]
	if len(anns) == 0 {
		anns = placeholderAnnotations()
		res.Placeholder = true
		res.Warnings = append(res.Warnings,
			fmt.Sprintf("no annotations defined for %s, using placeholder", name))
		log.Printf("WARNING: no annotations defined for %s, using placeholder", name)
	}

	bounds := img.Bounds()
	validator := annotate.NewValidator(bounds.Dx(), bounds.Dy())
	batch := validator.ValidateAll(anns)
	res.Validation = batch

	canvas := render.NewCanvas(img, render.DefaultStyle())
	if err := canvas.ApplyAll(anns, batch); err != nil {
		res.Error = err.Error()
		return res, nil
	}

	fig := registry.Figure{
		SourceImage: name,
		Annotations: anns,
		Section:     firstSection(anns),
		Title:       firstTitle(anns),
	}
	return res, &rendered{canvas: canvas, figure: fig}
}

// placeholderAnnotations marks an image that arrived with no descriptors.
func placeholderAnnotations() []annotate.Annotation {
	return []annotate.Annotation{{
		Type:        annotate.TypeCallout,
		Position:    &annotate.Position{X: 50, Y: 50},
		Number:      1,
		Color:       "primary",
		Description: "Primary action",
	}}
}

// legendEntries collects callout rows through the shared color manager, so
// assignments stay stable across every figure of the run.
func legendEntries(manager *palette.Manager, stem string, anns []annotate.Annotation) []palette.LegendEntry {
	var entries []palette.LegendEntry
	for _, ann := range anns {
		if ann.Type != annotate.TypeCallout {
			continue
		}
		num := ann.Number
		if num <= 0 {
			num = 1
		}
		desc := ann.Description
		if desc == "" {
			desc = fmt.Sprintf("Action %d", num)
		}
		assigned := manager.Assign(fmt.Sprintf("%s_%d", stem, num), ann.Color, desc)
		entries = append(entries, palette.LegendEntry{
			Number:    num,
			ElementID: assigned.ElementID,
			Name:      assigned.Name,
			Hex:       assigned.Hex,
			Text:      desc,
		})
	}
	return entries
}

func firstSection(anns []annotate.Annotation) string {
	for _, ann := range anns {
		if ann.Section != "" {
			return ann.Section
		}
	}
	return ""
}

func firstTitle(anns []annotate.Annotation) string {
	for _, ann := range anns {
		if ann.FigureTitle != "" {
			return ann.FigureTitle
		}
	}
	return ""
}

// scanImages lists supported images sorted by lowercased name, deduplicated
// for case-insensitive filesystems.
func scanImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		lower := strings.ToLower(name)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})
	return names, nil
}

// validateProcedure extracts color references from the procedure text,
// writes them next to the registry, and runs consistency validation.
func validateProcedure(opts Options, reg *registry.Registry, summary *Summary) error {
	data, err := os.ReadFile(opts.ProcedurePath)
	if err != nil {
		return fmt.Errorf("failed to read procedure text: %w", err)
	}

	parser := textref.NewParser()
	parser.ParseText(string(data))

	refs, err := json.MarshalIndent(parser.ToJSON(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal color references: %w", err)
	}
	refsPath := filepath.Join(opts.OutputDir, ColorRefsFilename)
	if err := os.WriteFile(refsPath, refs, 0o644); err != nil {
		return fmt.Errorf("failed to write color references: %w", err)
	}

	report := consistency.Validate(string(data), reg.ColorMaps())
	summary.Consistency = report

	for _, warning := range report.Warnings {
		log.Printf("WARNING: %s", warning)
	}
	for _, msg := range report.Errors {
		log.Printf("ERROR: %s", msg)
	}
	return nil
}
