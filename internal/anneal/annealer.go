package anneal

import (
	"context"
	"fmt"
	"math"
	"math/rand"
)

// Acceptance returns the Metropolis acceptance probability for an energy
// change deltaE at temperature temp: 1 for downhill moves, exp(-deltaE/temp)
// for uphill moves, clamped to [0, 1].
func Acceptance(deltaE, temp float64) float64 {
	if deltaE <= 0 {
		return 1
	}
	p := math.Exp(-deltaE / temp)
	if p > 1 {
		return 1
	}
	if p < 0 || math.IsNaN(p) {
		return 0
	}
	return p
}

// Walker performs single Metropolis steps on a landscape. The live view
// drives it directly; Annealer wraps it for batch runs.
type Walker struct {
	land     *Landscape
	proposal Proposal
	schedule Schedule
	rng      *rand.Rand

	cur  Coord
	temp float64
	iter int
}

func NewWalker(land *Landscape, proposal Proposal, schedule Schedule, seed int64) *Walker {
	rng := rand.New(rand.NewSource(seed))
	w := &Walker{
		land:     land,
		proposal: proposal,
		schedule: schedule,
		rng:      rng,
	}
	w.cur = Coord{rng.Intn(land.N), rng.Intn(land.N)}
	w.temp = schedule.Start()
	return w
}

// SetStart places the walker at c before the first step.
func (w *Walker) SetStart(c Coord) error {
	if !w.land.Contains(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	w.cur = c
	return nil
}

// Pos returns the current position.
func (w *Walker) Pos() Coord { return w.cur }

// Temp returns the current temperature.
func (w *Walker) Temp() float64 { return w.temp }

// Reset restarts the walker at a fresh random position with the initial
// temperature.
func (w *Walker) Reset() {
	w.cur = Coord{w.rng.Intn(w.land.N), w.rng.Intn(w.land.N)}
	w.temp = w.schedule.Start()
	w.iter = 0
}

// Step proposes one move and applies the Metropolis rule. The recorded
// temperature is the one in force before cooling; the acceptance test uses
// the cooled value.
func (w *Walker) Step() Step {
	recorded := w.temp
	w.temp = w.schedule.Next(w.temp)

	proposed := w.proposal.Next(w.cur, w.land.N, w.rng)
	deltaE := w.land.EnergyAt(proposed) - w.land.EnergyAt(w.cur)

	accepted := w.rng.Float64() <= Acceptance(deltaE, w.temp)
	if accepted {
		w.cur = proposed
	}

	w.iter++
	return Step{
		Iter:     w.iter,
		Pos:      w.cur,
		Proposed: proposed,
		Energy:   w.land.EnergyAt(w.cur),
		Temp:     recorded,
		Prob:     w.land.ProbAt(w.cur),
		Accepted: accepted,
	}
}

// Annealer runs a walker for a fixed sample budget, collecting history
// and feeding metrics and observers.
type Annealer struct {
	walker    *Walker
	metrics   []Metric
	observers []Observer
}

func New(land *Landscape, proposal Proposal, schedule Schedule, seed int64) *Annealer {
	return &Annealer{walker: NewWalker(land, proposal, schedule, seed)}
}

func (a *Annealer) AddMetric(m Metric)     { a.metrics = append(a.metrics, m) }
func (a *Annealer) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// Walker exposes the underlying walker, e.g. to fix a start position.
func (a *Annealer) Walker() *Walker { return a.walker }

func (a *Annealer) Run(ctx context.Context, cfg Config) (*Result, error) {
	if cfg.Samples <= 0 {
		return nil, fmt.Errorf("anneal: samples must be positive, got %d", cfg.Samples)
	}

	for _, m := range a.metrics {
		m.Reset()
	}

	w := a.walker
	result := &Result{
		Positions: make([]Coord, 0, cfg.Samples+1),
		Energies:  make([]float64, 0, cfg.Samples+1),
		Temps:     make([]float64, 0, cfg.Samples),
		Probs:     make([]float64, 0, cfg.Samples),
		Metrics:   make(map[string]float64),
	}

	// history starts at the initial position
	result.Positions = append(result.Positions, w.Pos())
	result.Energies = append(result.Energies, w.land.EnergyAt(w.Pos()))

	for i := 0; i < cfg.Samples; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		step := w.Step()

		for _, m := range a.metrics {
			m.Observe(step)
		}
		for _, obs := range a.observers {
			obs.OnStep(step)
		}

		if step.Accepted {
			result.Accepted++
		} else {
			result.Rejected++
		}

		result.Positions = append(result.Positions, step.Pos)
		result.Energies = append(result.Energies, step.Energy)
		result.Temps = append(result.Temps, step.Temp)
		result.Probs = append(result.Probs, step.Prob)
	}

	for _, m := range a.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}
