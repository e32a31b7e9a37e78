package experiment

import (
	"fmt"

	"github.com/san-kum/statlab/internal/anneal"
	"github.com/san-kum/statlab/internal/metrics"
	"github.com/san-kum/statlab/internal/mixture"
)

// Registry maps names to proposal, schedule and initializer constructors.
type Registry struct {
	proposals    map[string]func(params map[string]float64) anneal.Proposal
	schedules    map[string]func(params map[string]float64) (anneal.Schedule, error)
	initializers map[string]func(params map[string]float64) mixture.Initializer
}

func NewRegistry() *Registry {
	r := &Registry{
		proposals:    make(map[string]func(map[string]float64) anneal.Proposal),
		schedules:    make(map[string]func(map[string]float64) (anneal.Schedule, error)),
		initializers: make(map[string]func(map[string]float64) mixture.Initializer),
	}

	r.proposals["gaussian"] = func(params map[string]float64) anneal.Proposal {
		sigma := params["sigma"]
		if sigma == 0 {
			sigma = 10
		}
		return anneal.NewGaussianProposal(sigma)
	}
	r.proposals["uniform"] = func(params map[string]float64) anneal.Proposal {
		return anneal.NewUniformProposal()
	}

	r.schedules["geometric"] = func(params map[string]float64) (anneal.Schedule, error) {
		t0 := params["temp"]
		if t0 == 0 {
			t0 = 1
		}
		alpha := params["alpha"]
		if alpha == 0 {
			alpha = 0.99
		}
		return anneal.NewGeometric(t0, alpha)
	}

	r.initializers["random"] = func(params map[string]float64) mixture.Initializer {
		return mixture.RandomInit{}
	}
	r.initializers["kmeans"] = func(params map[string]float64) mixture.Initializer {
		return mixture.KMeansInit{Restarts: int(params["restarts"])}
	}

	return r
}

func (r *Registry) GetProposal(name string, params map[string]float64) (anneal.Proposal, error) {
	fn, ok := r.proposals[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", anneal.ErrUnknownProposal, name)
	}
	return fn(params), nil
}

func (r *Registry) GetSchedule(name string, params map[string]float64) (anneal.Schedule, error) {
	fn, ok := r.schedules[name]
	if !ok {
		return nil, fmt.Errorf("experiment: unknown schedule: %s", name)
	}
	return fn(params)
}

func (r *Registry) GetInitializer(name string, params map[string]float64) (mixture.Initializer, error) {
	fn, ok := r.initializers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", mixture.ErrUnknownInitializer, name)
	}
	return fn(params), nil
}

func (r *Registry) ListProposals() []string {
	names := make([]string, 0, len(r.proposals))
	for name := range r.proposals {
		names = append(names, name)
	}
	return names
}

// DefaultMetrics returns the standard metric set observed on every
// annealing run.
func (r *Registry) DefaultMetrics() []anneal.Metric {
	return []anneal.Metric{
		metrics.NewAcceptanceRate(),
		metrics.NewBestEnergy(),
		metrics.NewFinalTemp(),
	}
}
