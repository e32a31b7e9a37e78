package viz

import (
	"strings"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/statlab/internal/anneal"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(10, 10)

	c.Set(0, 0)
	if c.Grid[0][0] == 0x2800 {
		t.Error("expected pixel set at origin")
	}

	// out of range is a no-op
	c.Set(-1, 0)
	c.Set(0, -1)
	c.Set(100, 100)

	c.Clear()
	for i := range c.Grid {
		for j := range c.Grid[i] {
			if c.Grid[i][j] != 0x2800 {
				t.Fatalf("cell (%d,%d) not cleared", i, j)
			}
		}
	}
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(10, 10)
	c.DrawLine(0, 0, 19, 39)

	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("expected line to set cells")
	}

	out := c.String()
	if len(strings.Split(strings.TrimRight(out, "\n"), "\n")) != 10 {
		t.Error("expected 10 output rows")
	}
}

func TestCanvasMark(t *testing.T) {
	c := NewCanvas(10, 10)
	c.Mark(10, 20, 1)

	set := 0
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				set++
			}
		}
	}
	if set == 0 {
		t.Error("expected marker to set cells")
	}
}

func TestHeatmap(t *testing.T) {
	g := mat.NewDense(20, 20, nil)
	for i := 0; i < 20; i++ {
		for j := 0; j < 20; j++ {
			g.Set(i, j, float64(i+j))
		}
	}

	out := Heatmap(g, 40, 10)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// frame rows plus the range label
	if len(lines) != 13 {
		t.Fatalf("expected 13 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "min=") {
		t.Error("expected range label on the last line")
	}

	if Heatmap(g, 0, 10) != "" {
		t.Error("expected empty output for zero width")
	}
}

func TestHeatmapConstantGrid(t *testing.T) {
	g := mat.NewDense(5, 5, nil)
	out := Heatmap(g, 10, 5)
	if out == "" {
		t.Error("expected output for constant grid")
	}
}

func TestTraceWalk(t *testing.T) {
	land, err := anneal.NewLandscape(30)
	if err != nil {
		t.Fatalf("landscape failed: %v", err)
	}

	positions := []anneal.Coord{{0, 0}, {5, 5}, {10, 12}, {20, 25}}
	out := TraceWalk(land, positions, 40, 15)

	for _, marker := range []string{"S", "E", "X"} {
		if !strings.Contains(out, marker) {
			t.Errorf("expected %s marker in trace", marker)
		}
	}

	if TraceWalk(land, nil, 40, 15) != "" {
		t.Error("expected empty output without positions")
	}
}

func TestScatter(t *testing.T) {
	x := mat.NewDense(4, 2, []float64{
		1, 1,
		2, 3,
		8, 9,
		9, 8,
	})
	labels := []int{0, 0, 1, 1}
	means := [][]float64{{1.5, 2}, {8.5, 8.5}}

	out := Scatter(x, labels, means, 40, 12)
	if !strings.Contains(out, "o") {
		t.Error("expected first cluster glyph")
	}
	if !strings.Contains(out, "x") {
		t.Error("expected second cluster glyph")
	}
	if !strings.Contains(out, "0") || !strings.Contains(out, "1") {
		t.Error("expected mean markers")
	}
}
