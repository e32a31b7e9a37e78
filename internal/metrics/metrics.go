// Package metrics provides per-step metrics for annealing runs.
package metrics

import (
	"math"

	"github.com/san-kum/statlab/internal/anneal"
)

// AcceptanceRate tracks the fraction of proposed moves that were accepted.
type AcceptanceRate struct {
	accepted int
	proposed int
}

func NewAcceptanceRate() *AcceptanceRate { return &AcceptanceRate{} }

func (a *AcceptanceRate) Name() string { return "acceptance_rate" }

func (a *AcceptanceRate) Observe(s anneal.Step) {
	a.proposed++
	if s.Accepted {
		a.accepted++
	}
}

func (a *AcceptanceRate) Value() float64 {
	if a.proposed == 0 {
		return 0
	}
	return float64(a.accepted) / float64(a.proposed)
}

func (a *AcceptanceRate) Reset() {
	a.accepted = 0
	a.proposed = 0
}

// BestEnergy tracks the lowest energy visited during the run.
type BestEnergy struct {
	best    float64
	samples int
}

func NewBestEnergy() *BestEnergy { return &BestEnergy{best: math.Inf(1)} }

func (b *BestEnergy) Name() string { return "best_energy" }

func (b *BestEnergy) Observe(s anneal.Step) {
	b.samples++
	if s.Energy < b.best {
		b.best = s.Energy
	}
}

func (b *BestEnergy) Value() float64 {
	if b.samples == 0 {
		return 0
	}
	return b.best
}

func (b *BestEnergy) Reset() {
	b.best = math.Inf(1)
	b.samples = 0
}

// FinalTemp records the last temperature observed.
type FinalTemp struct {
	temp    float64
	samples int
}

func NewFinalTemp() *FinalTemp { return &FinalTemp{} }

func (f *FinalTemp) Name() string { return "final_temp" }

func (f *FinalTemp) Observe(s anneal.Step) {
	f.temp = s.Temp
	f.samples++
}

func (f *FinalTemp) Value() float64 { return f.temp }

func (f *FinalTemp) Reset() {
	f.temp = 0
	f.samples = 0
}
