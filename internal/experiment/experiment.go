// Package experiment wires landscapes, proposals, schedules and metrics
// into reproducible annealing runs.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/statlab/internal/anneal"
)

type Config struct {
	Proposal string
	Sigma    float64
	Samples  int
	Temp     float64
	Alpha    float64
	GridSize int
	Seed     int64
}

// Params flattens the numeric configuration, for registries and storage.
func (c Config) Params() map[string]float64 {
	return map[string]float64{
		"sigma":     c.Sigma,
		"samples":   float64(c.Samples),
		"temp":      c.Temp,
		"alpha":     c.Alpha,
		"grid_size": float64(c.GridSize),
	}
}

type Experiment struct {
	cfg      Config
	land     *anneal.Landscape
	annealer *anneal.Annealer
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the landscape and annealer. The registry resolves the
// proposal and schedule by name before this is called.
func (e *Experiment) Setup(proposal anneal.Proposal, schedule anneal.Schedule, ms []anneal.Metric) error {
	n := e.cfg.GridSize
	if n == 0 {
		n = anneal.DefaultGridSize
	}
	land, err := anneal.NewLandscape(n)
	if err != nil {
		return err
	}
	e.land = land
	e.annealer = anneal.New(land, proposal, schedule, e.cfg.Seed)
	for _, m := range ms {
		e.annealer.AddMetric(m)
	}
	return nil
}

// Landscape returns the landscape built by Setup, for rendering.
func (e *Experiment) Landscape() *anneal.Landscape { return e.land }

// Annealer returns the underlying annealer, e.g. to attach observers.
func (e *Experiment) Annealer() *anneal.Annealer { return e.annealer }

func (e *Experiment) Run(ctx context.Context) (*anneal.Result, error) {
	if e.annealer == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.annealer.Run(ctx, anneal.Config{Samples: e.cfg.Samples})
}
