package anneal

// Schedule produces the temperature sequence for a run.
type Schedule interface {
	Name() string
	// Start returns the initial temperature.
	Start() float64
	// Next returns the temperature following t. Implementations must be
	// strictly decreasing for positive t.
	Next(t float64) float64
}

// Geometric cools as T <- Alpha*T with Alpha in (0, 1), so the temperature
// sequence is strictly decreasing from T0.
type Geometric struct {
	T0    float64
	Alpha float64
}

func NewGeometric(t0, alpha float64) (*Geometric, error) {
	if t0 <= 0 || alpha <= 0 || alpha >= 1 {
		return nil, ErrBadSchedule
	}
	return &Geometric{T0: t0, Alpha: alpha}, nil
}

func (g *Geometric) Name() string { return "geometric" }

func (g *Geometric) Start() float64 { return g.T0 }

func (g *Geometric) Next(t float64) float64 { return g.Alpha * t }
