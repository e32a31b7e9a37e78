// Package export renders run artifacts to SVG for use outside the
// terminal.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/statlab/internal/anneal"
	"github.com/san-kum/statlab/internal/viz"
)

// Braille Patterns sub-pixel layout, matching viz.Canvas.
var dotPixelMap = [4][2]int{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func svgOpen(sb *strings.Builder, width, height float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))
}

// writeDots emits one circle per lit canvas sub-pixel.
func writeDots(sb *strings.Builder, canvas *viz.Canvas, scale float64) {
	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&dotPixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}
}

// CanvasToSVG converts a braille canvas to SVG dots.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	svgOpen(&sb, width, height)
	sb.WriteString("<g fill=\"#00ff00\">\n")
	writeDots(&sb, canvas, scale)
	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// WalkToSVG renders an annealing walk as a braille dot field over the
// landscape extent, with the global density maximum in red, the start
// point in green and the end point in blue. The path is drawn on a
// sub-pixel canvas so long walks stay legible at small sizes.
func WalkToSVG(land *anneal.Landscape, positions []anneal.Coord, size int) string {
	if land == nil || len(positions) < 2 || size < 1 {
		return ""
	}

	const scale = 2.0
	cols := int(float64(size) / (scale * 2))
	rows := int(float64(size) / (scale * 4))
	if cols < 1 || rows < 1 {
		return ""
	}

	canvas := viz.NewCanvas(cols, rows)
	subW, subH := cols*2, rows*4
	sub := func(c anneal.Coord) (int, int) {
		return c[0] * subW / land.N, c[1] * subH / land.N
	}

	x0, y0 := sub(positions[0])
	for _, p := range positions[1:] {
		x1, y1 := sub(p)
		canvas.DrawLine(x0, y0, x1, y1)
		x0, y0 = x1, y1
	}

	var sb strings.Builder
	svgOpen(&sb, float64(size), float64(size))
	sb.WriteString("<g fill=\"#ffffff\" fill-opacity=\"0.7\">\n")
	writeDots(&sb, canvas, scale)
	sb.WriteString("</g>\n")

	px := func(c anneal.Coord) (float64, float64) {
		s := float64(size) / float64(land.N)
		return float64(c[0]) * s, float64(c[1]) * s
	}
	marker := func(c anneal.Coord, color string) {
		x, y := px(c)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, x, y, scale*2, color))
	}
	marker(land.Mode(), "#ff4040")
	marker(positions[0], "#40ff40")
	marker(positions[len(positions)-1], "#4080ff")

	sb.WriteString("</svg>")
	return sb.String()
}
