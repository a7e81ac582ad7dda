package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Preprocessing defaults. Screenshots destined for a procedure document are
// normalized to a narrow column width; anything below the minimum is
// upscaled so text in the screenshot stays legible.
const (
	DefaultTargetWidth = 320
	DefaultMinWidth    = 280
)

// CropBox is a crop region in percentage coordinates relative to the source
// image: X/Y locate the top-left corner, W/H the extent.
type CropBox struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// PreprocessOptions control Preprocess. Zero values fall back to the package
// defaults; a nil Crop skips cropping.
type PreprocessOptions struct {
	Crop        *CropBox
	TargetWidth int
	MinWidth    int
}

// Preprocess prepares a screenshot for annotation: optional smart crop, then
// an aspect-preserving resize to the target width, then an upscale if the
// result fell below the minimum width. All resampling uses Lanczos.
//
// The returned image is always NRGBA, ready for the renderer.
func Preprocess(img image.Image, opts PreprocessOptions) *image.NRGBA {
	targetWidth := opts.TargetWidth
	if targetWidth <= 0 {
		targetWidth = DefaultTargetWidth
	}
	minWidth := opts.MinWidth
	if minWidth <= 0 {
		minWidth = DefaultMinWidth
	}

	out := imaging.Clone(img)
	if opts.Crop != nil {
		out = SmartCrop(out, *opts.Crop)
	}
	out = ResizeToWidth(out, targetWidth)
	if out.Bounds().Dx() < minWidth {
		out = ResizeToWidth(out, minWidth)
	}
	return out
}

// SmartCrop crops by percentage coordinates, clamping the region to the
// image bounds.
func SmartCrop(img image.Image, box CropBox) *image.NRGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	x := int((box.X / 100) * float64(width))
	y := int((box.Y / 100) * float64(height))
	w := int((box.W / 100) * float64(width))
	h := int((box.H / 100) * float64(height))

	x = clampInt(x, 0, width-1)
	y = clampInt(y, 0, height-1)
	right := x + w
	if right > width {
		right = width
	}
	bottom := y + h
	if bottom > height {
		bottom = height
	}

	return imaging.Crop(img, image.Rect(x, y, right, bottom).Add(bounds.Min))
}

// ResizeToWidth scales to the given width preserving aspect ratio. Images
// already at the target width are cloned, not resampled.
func ResizeToWidth(img image.Image, targetWidth int) *image.NRGBA {
	if img.Bounds().Dx() == targetWidth {
		return imaging.Clone(img)
	}
	return imaging.Resize(img, targetWidth, 0, imaging.Lanczos)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
