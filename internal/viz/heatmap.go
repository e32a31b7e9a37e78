package viz

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// shadeRamp maps normalized intensity to terminal shades, light to dark.
var shadeRamp = []rune(" ░▒▓█")

// Heatmap renders a grid as shaded character cells inside a frame, with
// the value range in the corner labels. Each character cell averages the
// grid block it covers.
func Heatmap(g *mat.Dense, width, height int) string {
	rows, cols := g.Dims()
	if rows == 0 || cols == 0 || width < 1 || height < 1 {
		return ""
	}

	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := g.At(i, j)
			if math.IsInf(v, 0) || math.IsNaN(v) {
				continue
			}
			min = math.Min(min, v)
			max = math.Max(max, v)
		}
	}
	span := max - min
	if span == 0 {
		span = 1
	}

	var b strings.Builder
	b.WriteString("┌" + strings.Repeat("─", width) + "┐\n")

	for cy := 0; cy < height; cy++ {
		b.WriteRune('│')
		for cx := 0; cx < width; cx++ {
			// average the grid block for this cell
			sum, count := 0.0, 0
			i0, i1 := blockRange(cy, height, rows)
			j0, j1 := blockRange(cx, width, cols)
			for i := i0; i < i1; i++ {
				for j := j0; j < j1; j++ {
					v := g.At(i, j)
					if math.IsInf(v, 0) || math.IsNaN(v) {
						continue
					}
					sum += v
					count++
				}
			}
			shade := 0
			if count > 0 {
				norm := (sum/float64(count) - min) / span
				shade = int(norm * float64(len(shadeRamp)-1))
				if shade < 0 {
					shade = 0
				}
				if shade >= len(shadeRamp) {
					shade = len(shadeRamp) - 1
				}
			}
			b.WriteRune(shadeRamp[shade])
		}
		b.WriteString("│\n")
	}

	b.WriteString("└" + strings.Repeat("─", width) + "┘\n")
	b.WriteString(fmt.Sprintf("min=%.3f max=%.3f\n", min, max))
	return b.String()
}

// blockRange maps display cell k of total cells onto [start, end) grid
// indices, always covering at least one index.
func blockRange(k, cells, size int) (int, int) {
	start := k * size / cells
	end := (k + 1) * size / cells
	if end <= start {
		end = start + 1
	}
	if end > size {
		end = size
	}
	if start >= size {
		start = size - 1
	}
	return start, end
}
