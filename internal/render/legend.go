package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/ironsheep/screenshot-annotate/internal/palette"
)

// Legend placements.
const (
	LegendBottom = "bottom"
	LegendRight  = "right"
)

var (
	legendBg     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	legendBorder = color.RGBA{R: 0xCC, G: 0xCC, B: 0xCC, A: 255}
)

// DrawLegend appends a color-coded annotation key to the canvas, extending
// it below or to the right of the image. Each row shows a numbered circle in
// the annotation's color and its description text in the matching color.
//
// With no entries the canvas is returned unchanged.
func (c *Canvas) DrawLegend(entries []palette.LegendEntry, position string) {
	if len(entries) == 0 {
		return
	}

	pad := c.style.LegendPadding
	rowHeight := c.style.LegendRowHeight
	circleRadius := c.style.LegendCircleRadius

	maxTextWidth := 0
	for _, entry := range entries {
		w, _, _, _ := measureText(entry.Text, c.style.LegendFontSize)
		if w > maxTextWidth {
			maxTextWidth = w
		}
	}

	legendWidth := pad*2 + circleRadius*2 + 10 + maxTextWidth + 20
	if legendWidth > c.width-20 {
		legendWidth = c.width - 20
	}
	legendHeight := pad*2 + rowHeight + len(entries)*rowHeight // title row included

	var legendX, legendY int
	switch position {
	case LegendRight:
		newWidth := c.width + legendWidth + 8
		newHeight := c.height
		if legendHeight > newHeight {
			newHeight = legendHeight
		}
		c.extend(newWidth, newHeight)
		legendX = c.img.Bounds().Dx() - legendWidth - 4
		legendY = 0
	default: // bottom
		c.extend(c.width, c.height+legendHeight+8)
		legendX = (c.width - legendWidth) / 2
		legendY = c.img.Bounds().Dy() - legendHeight - 4
	}

	fillRect(c.img, legendX, legendY, legendWidth, legendHeight, legendBg)
	strokeRect(c.img, legendX, legendY, legendWidth, legendHeight, 1, legendBorder)

	titleCol := palette.Resolve("primary")
	_, _, _, titleMinY := measureText("Annotation Key:", c.style.LegendTitleSize)
	drawText(c.img, legendX+pad, legendY+pad-titleMinY, "Annotation Key:", c.style.LegendTitleSize, titleCol)

	white := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	currentY := legendY + pad + rowHeight

	for _, entry := range entries {
		circleX := legendX + pad + circleRadius
		circleY := currentY + rowHeight/2

		entryCol := palette.Resolve(entry.Hex)
		fillCircle(c.img, circleX, circleY, circleRadius, entryCol, white, 2)
		drawTextCentered(c.img, circleX, circleY, fmt.Sprintf("%d", entry.Number),
			c.style.LegendFontSize-1, white)

		// Description text in the matching color, so the key itself
		// demonstrates the color assignment.
		textX := legendX + pad + circleRadius*2 + 12
		_, textH, _, textMinY := measureText(entry.Text, c.style.LegendFontSize)
		drawText(c.img, textX, circleY-textH/2-textMinY, entry.Text, c.style.LegendFontSize, entryCol)

		currentY += rowHeight
	}
}

// extend grows the canvas to the given size, pasting the current image at
// the top-left on a white background. The logical image width/height fields
// keep the original dimensions so annotation percentages stay stable.
func (c *Canvas) extend(width, height int) {
	grown := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(grown, grown.Bounds(), image.NewUniform(legendBg), image.Point{}, draw.Src)
	draw.Draw(grown, c.img.Bounds(), c.img, image.Point{}, draw.Src)
	c.img = grown
}
