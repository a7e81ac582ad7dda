package render

import (
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// faceCache memoizes opentype faces per point size. Parsing the embedded
// font happens once; face construction once per distinct size.
type faceCache struct {
	mu    sync.Mutex
	fnt   *opentype.Font
	faces map[int]font.Face
}

var fonts = &faceCache{faces: make(map[int]font.Face)}

// faceFor returns a Go Regular face at the given point size.
func faceFor(size int) font.Face {
	fonts.mu.Lock()
	defer fonts.mu.Unlock()

	if face, ok := fonts.faces[size]; ok {
		return face
	}

	if fonts.fnt == nil {
		fnt, err := opentype.Parse(goregular.TTF)
		if err != nil {
			// The font is embedded in the binary; a parse failure is a
			// build-time defect, not a runtime condition.
			panic(err)
		}
		fonts.fnt = fnt
	}

	face, err := opentype.NewFace(fonts.fnt, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}

	fonts.faces[size] = face
	return face
}

// measureText returns the rendered bounding box of text at the given size,
// relative to the drawing dot. Using the measured box (not the nominal font
// size) corrects for glyph-metric asymmetry when centering.
func measureText(text string, size int) (width, height, minX, minY int) {
	face := faceFor(size)
	bounds, _ := font.BoundString(face, text)
	width = (bounds.Max.X - bounds.Min.X).Ceil()
	height = (bounds.Max.Y - bounds.Min.Y).Ceil()
	minX = bounds.Min.X.Floor()
	minY = bounds.Min.Y.Floor()
	return width, height, minX, minY
}
