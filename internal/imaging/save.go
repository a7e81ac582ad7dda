package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
)

// jpegQuality keeps annotated screenshots free of visible compression
// artifacts; file size is not a concern for document figures.
const jpegQuality = 100

// Save writes the image in the format implied by the path extension.
// PNG is the default for unknown extensions.
func Save(img image.Image, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return SaveJPEG(img, path)
	default:
		return SavePNG(img, path)
	}
}

// SavePNG writes the image as PNG with minimal compression, favoring
// encode speed and quality over size.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode png: %w", err)
	}
	return nil
}

// SaveJPEG flattens any transparency onto a white background and writes the
// image at maximum quality. JPEG has no alpha channel, and highlight overlays
// leave partially transparent pixels behind.
func SaveJPEG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	flat := image.NewRGBA(img.Bounds())
	draw.Draw(flat, flat.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(flat, flat.Bounds(), img, img.Bounds().Min, draw.Over)

	if err := jpeg.Encode(f, flat, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return nil
}
