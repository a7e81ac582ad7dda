package palette

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the fallback palette key for unresolvable color values.
const DefaultColor = "teal"

// Colors is the canonical annotation color table. Aliases map to the same
// hex value; see Equivalent for how the consistency validator treats them.
var Colors = map[string]string{
	"red":      "#C00000",
	"critical": "#C00000",
	"blue":     "#2E74B5",
	"info":     "#2E74B5",
	"gold":     "#FFC000",
	"warning":  "#FFC000",
	"yellow":   "#FFC000",
	"green":    "#548235",
	"success":  "#548235",
	"teal":     "#154747",
	"primary":  "#154747",
	"purple":   "#7030A0",
	"orange":   "#ED7D31",
}

// equivalents groups palette names that share one hex value. Membership is
// used only by the consistency comparator, never by the renderer.
var equivalents = map[string][]string{
	"red":      {"red", "critical"},
	"critical": {"red", "critical"},
	"blue":     {"blue", "info"},
	"info":     {"blue", "info"},
	"gold":     {"gold", "warning", "yellow"},
	"warning":  {"gold", "warning", "yellow"},
	"yellow":   {"gold", "warning", "yellow"},
	"green":    {"green", "success"},
	"success":  {"green", "success"},
	"teal":     {"teal", "primary"},
	"primary":  {"teal", "primary"},
	"purple":   {"purple"},
	"orange":   {"orange"},
}

// Names returns all palette names sorted alphabetically, suitable for
// building regular expression alternations deterministically.
func Names() []string {
	names := make([]string, 0, len(Colors))
	for name := range Colors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Hex returns the hex value for a palette name, or the default teal hex if
// the name is unknown.
func Hex(name string) string {
	if hex, ok := Colors[strings.ToLower(name)]; ok {
		return hex
	}
	return Colors[DefaultColor]
}

// Normalize maps a caller-supplied color string (name, alias, or literal hex)
// to a canonical palette key.
//
// Hex values are matched case-insensitively against the palette table; a hex
// value not in the table is returned lowercased as-is so the caller can still
// render it. Anything else unresolvable falls back to DefaultColor.
func Normalize(value string) string {
	if value == "" {
		return DefaultColor
	}
	lower := strings.ToLower(strings.TrimSpace(value))
	if strings.HasPrefix(lower, "#") {
		for name, hex := range Colors {
			if strings.EqualFold(hex, lower) {
				// Prefer the base color name over its alias so normalization
				// is deterministic across map iteration order.
				return canonicalName(name)
			}
		}
		return lower
	}
	if _, ok := Colors[lower]; ok {
		return lower
	}
	return DefaultColor
}

// canonicalName picks a stable representative for names sharing a hex value.
func canonicalName(name string) string {
	class := equivalents[name]
	if len(class) == 0 {
		return name
	}
	return class[0]
}

// Equivalent reports whether two color names resolve to the same underlying
// palette color, either by identity or by shared equivalence class.
func Equivalent(a, b string) bool {
	al := strings.ToLower(a)
	bl := strings.ToLower(b)
	if al == bl {
		return true
	}
	for _, member := range equivalents[al] {
		if member == bl {
			return true
		}
	}
	return false
}

// ParseHex converts a hex string like "#C00000" (case-insensitive, with or
// without leading '#') into an opaque color.RGBA.
func ParseHex(hex string) (color.RGBA, error) {
	trimmed := strings.TrimSpace(hex)
	if trimmed == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if !strings.HasPrefix(trimmed, "#") {
		trimmed = "#" + trimmed
	}
	c, err := colorful.Hex(strings.ToLower(trimmed))
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Resolve returns the drawable color for a caller-supplied value, accepting a
// palette name, alias, or literal hex. Unknown values resolve to the default.
func Resolve(value string) color.RGBA {
	lower := strings.ToLower(strings.TrimSpace(value))
	if hex, ok := Colors[lower]; ok {
		c, _ := ParseHex(hex)
		return c
	}
	if c, err := ParseHex(lower); err == nil {
		return c
	}
	c, _ := ParseHex(Colors[DefaultColor])
	return c
}

// ContrastText returns white or black, whichever reads better on top of the
// given background color.
func ContrastText(bg color.RGBA) color.RGBA {
	c := colorful.Color{
		R: float64(bg.R) / 255,
		G: float64(bg.G) / 255,
		B: float64(bg.B) / 255,
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return color.RGBA{A: 255} // black
	}
	return color.RGBA{R: 255, G: 255, B: 255, A: 255}
}
