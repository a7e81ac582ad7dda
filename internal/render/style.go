package render

// Style holds the tunable annotation styling knobs.
type Style struct {
	ArrowWidth       int     `json:"arrow_width"`
	ArrowHeadSize    int     `json:"arrow_head_size"`
	HighlightOpacity float64 `json:"highlight_opacity"`
	BorderWidth      int     `json:"border_width"`
	LabelFontSize    int     `json:"label_font_size"`
	LabelPadding     int     `json:"label_padding"`

	LegendPadding      int `json:"legend_padding"`
	LegendRowHeight    int `json:"legend_row_height"`
	LegendFontSize     int `json:"legend_font_size"`
	LegendTitleSize    int `json:"legend_title_size"`
	LegendCircleRadius int `json:"legend_circle_radius"`
}

// DefaultStyle returns the standard annotation styling.
func DefaultStyle() Style {
	return Style{
		ArrowWidth:       3,
		ArrowHeadSize:    12,
		HighlightOpacity: 0.3,
		BorderWidth:      3,
		LabelFontSize:    12,
		LabelPadding:     6,

		LegendPadding:      12,
		LegendRowHeight:    24,
		LegendFontSize:     11,
		LegendTitleSize:    12,
		LegendCircleRadius: 9,
	}
}

// CalloutFontSize returns the font size for a callout number given the
// circle radius: 75% of the radius with a readable floor.
func CalloutFontSize(radius int) int {
	size := int(float64(radius)*0.75 + 0.5)
	if size < 10 {
		return 10
	}
	return size
}
