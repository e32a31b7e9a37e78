package anneal

import (
	"math"
	"math/rand"
)

// Proposal generates a candidate grid coordinate from the current one.
type Proposal interface {
	Name() string
	Next(cur Coord, n int, rng *rand.Rand) Coord
}

// GaussianProposal perturbs the current position by a normal step of
// standard deviation Sigma on each axis, clamped to the grid.
type GaussianProposal struct {
	Sigma float64
}

func NewGaussianProposal(sigma float64) *GaussianProposal {
	return &GaussianProposal{Sigma: sigma}
}

func (p *GaussianProposal) Name() string { return "gaussian" }

func (p *GaussianProposal) Next(cur Coord, n int, rng *rand.Rand) Coord {
	var next Coord
	for d := 0; d < 2; d++ {
		v := float64(cur[d]) + rng.NormFloat64()*p.Sigma
		v = math.Max(v, 0)
		v = math.Min(v, float64(n-1))
		next[d] = int(v)
	}
	return next
}

// UniformProposal jumps to an independent uniform grid coordinate,
// ignoring the current position.
type UniformProposal struct{}

func NewUniformProposal() *UniformProposal { return &UniformProposal{} }

func (p *UniformProposal) Name() string { return "uniform" }

func (p *UniformProposal) Next(cur Coord, n int, rng *rand.Rand) Coord {
	return Coord{rng.Intn(n), rng.Intn(n)}
}
