package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/screenshot-annotate/internal/pipeline"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("screenshot-annotate %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	var (
		inputDir    = flag.String("input", "", "directory of raw screenshots (required)")
		outputDir   = flag.String("output", "", "directory for annotated figures (required)")
		annotations = flag.String("annotations", "", "JSON file mapping image stem to annotation list")
		procedure   = flag.String("procedure", "", "procedure text to validate color references against")
		workers     = flag.Int("workers", 0, "concurrent image workers (0 = default)")
		preprocess  = flag.Bool("preprocess", false, "resize screenshots to the target width before annotating")
		targetWidth = flag.Int("target-width", 0, "preprocess target width in pixels (0 = default)")
		legend      = flag.Bool("legend", false, "append an annotation key below each figure")
	)
	flag.Parse()

	// Logging goes to stderr so stdout stays clean for summaries.
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if os.Getenv("SCREENSHOT_ANNOTATE_LOG_LEVEL") == "debug" {
		log.Printf("screenshot-annotate v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	if *inputDir == "" || *outputDir == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --input and --output are required")
		flag.Usage()
		os.Exit(2)
	}

	summary, err := pipeline.Run(pipeline.Options{
		InputDir:        *inputDir,
		OutputDir:       *outputDir,
		AnnotationsPath: *annotations,
		ProcedurePath:   *procedure,
		Workers:         *workers,
		Preprocess:      *preprocess,
		TargetWidth:     *targetWidth,
		DrawLegend:      *legend,
	})
	if err != nil {
		log.Fatalf("Batch failed: %v", err)
	}

	fmt.Printf("Processed %d figures (%d failed)\n", summary.Processed, summary.Failed)
	for _, res := range summary.Results {
		switch {
		case res.Error != "":
			fmt.Printf("  FAILED %s: %s\n", res.Source, res.Error)
		default:
			fmt.Printf("  Figure %d: %s -> %s\n", res.FigureNumber, res.Source, res.Output)
		}
	}

	if report := summary.Consistency; report != nil {
		s := report.Summary()
		fmt.Printf("Color consistency: %d checked, %d matched, %d mismatched, %d warnings\n",
			s.TotalChecked, s.Matches, s.Mismatches, s.Warnings)
		for _, msg := range report.Errors {
			fmt.Printf("  %s\n", msg)
		}
		if !report.Valid {
			os.Exit(1)
		}
	}

	if summary.Failed > 0 {
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("screenshot-annotate - batch screenshot annotation for procedure documents")
	fmt.Println()
	fmt.Println("Usage: screenshot-annotate --input DIR --output DIR [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --input DIR          Directory of raw screenshots (PNG, JPG, GIF)")
	fmt.Println("  --output DIR         Directory for annotated figures and the registry")
	fmt.Println("  --annotations FILE   JSON file mapping image stem to annotation list")
	fmt.Println("  --procedure FILE     Procedure text; enables color consistency validation")
	fmt.Println("  --workers N          Concurrent image workers")
	fmt.Println("  --preprocess         Resize screenshots before annotating")
	fmt.Println("  --target-width N     Preprocess target width in pixels")
	fmt.Println("  --legend             Append an annotation key below each figure")
	fmt.Println("  --version, -v        Print version information")
	fmt.Println("  --help, -h           Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  SCREENSHOT_ANNOTATE_LOG_LEVEL=debug    Enable debug logging")
}
