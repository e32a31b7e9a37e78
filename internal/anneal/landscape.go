package anneal

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

const (
	// DefaultGridSize matches the 100x100 discretization of the demo.
	DefaultGridSize = 100

	// domain of the peaks function on both axes
	domainMin = -3.0
	domainMax = 3.0

	// floor applied to the normalized pdf so the energy grid stays finite
	minDensity = 1e-12
)

// Peaks evaluates the absolute value of the MATLAB peaks function at (x, y).
// Taking the absolute value turns the surface into a usable density: every
// lobe becomes a mode instead of half of them being sinks.
func Peaks(x, y float64) float64 {
	v := 3.0*(1-x)*(1-x)*math.Exp(-x*x-(y+1)*(y+1)) -
		10.0*(x/5-x*x*x-math.Pow(y, 5))*math.Exp(-x*x-y*y) -
		math.Exp(-(x+1)*(x+1)-y*y)/3.0
	return math.Abs(v)
}

// Landscape holds the discretized probability surface and its energy.
// PDF is normalized so its maximum is 1; Energy = -log(PDF).
type Landscape struct {
	N      int
	PDF    *mat.Dense
	Energy *mat.Dense
}

// NewLandscape evaluates the peaks density on an n x n grid over
// [-3, 3] x [-3, 3].
func NewLandscape(n int) (*Landscape, error) {
	if n < 2 {
		return nil, ErrBadGrid
	}

	pdf := mat.NewDense(n, n, nil)
	step := (domainMax - domainMin) / float64(n-1)

	x := domainMin
	for i := 0; i < n; i++ {
		y := domainMin
		for j := 0; j < n; j++ {
			pdf.Set(i, j, Peaks(x, y))
			y += step
		}
		x += step
	}

	max := mat.Max(pdf)
	pdf.Scale(1/max, pdf)

	energy := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			p := pdf.At(i, j)
			if p < minDensity {
				p = minDensity
			}
			energy.Set(i, j, -math.Log(p))
		}
	}

	return &Landscape{N: n, PDF: pdf, Energy: energy}, nil
}

// Coord is a walker position on the grid, indexed (x0, x1).
type Coord [2]int

// Contains reports whether c lies inside the grid.
func (l *Landscape) Contains(c Coord) bool {
	return c[0] >= 0 && c[0] < l.N && c[1] >= 0 && c[1] < l.N
}

// EnergyAt returns the energy at c.
func (l *Landscape) EnergyAt(c Coord) float64 {
	return l.Energy.At(c[0], c[1])
}

// ProbAt returns the normalized density at c.
func (l *Landscape) ProbAt(c Coord) float64 {
	return l.PDF.At(c[0], c[1])
}

// Mode returns the coordinate of the global density maximum.
func (l *Landscape) Mode() Coord {
	best := Coord{0, 0}
	bestVal := l.PDF.At(0, 0)
	for i := 0; i < l.N; i++ {
		for j := 0; j < l.N; j++ {
			if v := l.PDF.At(i, j); v > bestVal {
				bestVal = v
				best = Coord{i, j}
			}
		}
	}
	return best
}

// Boltzmann returns the heat-bath surface exp(-E/T) normalized by its
// maximum. At high T the surface flattens; as T drops the mass collects
// around the modes.
func (l *Landscape) Boltzmann(temp float64) *mat.Dense {
	sigma := mat.NewDense(l.N, l.N, nil)
	for i := 0; i < l.N; i++ {
		for j := 0; j < l.N; j++ {
			sigma.Set(i, j, math.Exp(-l.Energy.At(i, j)/temp))
		}
	}
	max := mat.Max(sigma)
	if max > 0 {
		sigma.Scale(1/max, sigma)
	}
	return sigma
}
