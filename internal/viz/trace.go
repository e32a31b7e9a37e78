package viz

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/statlab/internal/anneal"
)

// dimRamp shades the landscape background under a trace without drowning
// out the path markers.
var dimRamp = []rune(" .:-=+*")

// TraceWalk renders an annealing walk over the landscape density:
// the visited path, the start (S) and end (E) points, and the global
// density maximum (X).
func TraceWalk(land *anneal.Landscape, positions []anneal.Coord, width, height int) string {
	if len(positions) == 0 || width < 1 || height < 1 {
		return ""
	}

	cells := make([][]rune, height)
	for cy := range cells {
		cells[cy] = make([]rune, width)
		for cx := range cells[cy] {
			i0, i1 := blockRange(cy, height, land.N)
			j0, j1 := blockRange(cx, width, land.N)
			sum, count := 0.0, 0
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					sum += land.PDF.At(i, j)
					count++
				}
			}
			shade := int(sum / float64(count) * float64(len(dimRamp)-1))
			if shade >= len(dimRamp) {
				shade = len(dimRamp) - 1
			}
			cells[cy][cx] = dimRamp[shade]
		}
	}

	place := func(c anneal.Coord, r rune) {
		cx := c[0] * width / land.N
		cy := c[1] * height / land.N
		if cx >= width {
			cx = width - 1
		}
		if cy >= height {
			cy = height - 1
		}
		cells[cy][cx] = r
	}

	for _, p := range positions {
		place(p, '·')
	}
	place(land.Mode(), 'X')
	place(positions[0], 'S')
	place(positions[len(positions)-1], 'E')

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width) + "┐\n")
	for _, row := range cells {
		b.WriteString("│" + string(row) + "│\n")
	}
	b.WriteString("└" + strings.Repeat("─", width) + "┘\n")
	b.WriteString("S=start E=end X=global maximum ·=visited\n")
	return b.String()
}

// scatterGlyphs distinguishes component assignments in scatter plots.
var scatterGlyphs = []rune("ox+*#@")

// Scatter renders labelled 2D observations, one glyph per component, with
// component means marked by digits.
func Scatter(x *mat.Dense, labels []int, means [][]float64, width, height int) string {
	n, d := x.Dims()
	if n == 0 || d < 2 || width < 1 || height < 1 {
		return ""
	}

	xMin, xMax := x.At(0, 0), x.At(0, 0)
	yMin, yMax := x.At(0, 1), x.At(0, 1)
	for i := 0; i < n; i++ {
		px, py := x.At(i, 0), x.At(i, 1)
		if px < xMin {
			xMin = px
		}
		if px > xMax {
			xMax = px
		}
		if py < yMin {
			yMin = py
		}
		if py > yMax {
			yMax = py
		}
	}
	xRange, yRange := xMax-xMin, yMax-yMin
	if xRange == 0 {
		xRange = 1
	}
	if yRange == 0 {
		yRange = 1
	}

	cells := make([][]rune, height)
	for i := range cells {
		cells[i] = make([]rune, width)
		for j := range cells[i] {
			cells[i][j] = ' '
		}
	}

	project := func(px, py float64) (int, int) {
		cx := int(float64(width-1) * (px - xMin) / xRange)
		cy := height - 1 - int(float64(height-1)*(py-yMin)/yRange)
		return cx, cy
	}

	for i := 0; i < n; i++ {
		cx, cy := project(x.At(i, 0), x.At(i, 1))
		glyph := scatterGlyphs[0]
		if labels != nil && i < len(labels) {
			glyph = scatterGlyphs[labels[i]%len(scatterGlyphs)]
		}
		cells[cy][cx] = glyph
	}
	for k, m := range means {
		if len(m) < 2 {
			continue
		}
		cx, cy := project(m[0], m[1])
		cells[cy][cx] = rune('0' + k%10)
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %.2f ┌%s┐\n", yMax, strings.Repeat("─", width)))
	for i, row := range cells {
		if i == height/2 {
			b.WriteString(fmt.Sprintf("  %.2f │", (yMax+yMin)/2))
		} else {
			b.WriteString("       │")
		}
		b.WriteString(string(row) + "│\n")
	}
	b.WriteString(fmt.Sprintf("  %.2f └%s┘\n", yMin, strings.Repeat("─", width)))
	b.WriteString(fmt.Sprintf("       %.2f%s%.2f\n", xMin, strings.Repeat(" ", maxInt(width-12, 1)), xMax))
	return b.String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
