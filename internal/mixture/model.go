package mixture

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
)

// Component is one weighted Gaussian of the mixture.
type Component struct {
	Weight float64
	Mean   []float64
	Cov    *mat.SymDense
}

// Clone returns a deep copy of the component.
func (c Component) Clone() Component {
	mean := make([]float64, len(c.Mean))
	copy(mean, c.Mean)
	cov := mat.NewSymDense(c.Cov.SymmetricDim(), nil)
	cov.CopySym(c.Cov)
	return Component{Weight: c.Weight, Mean: mean, Cov: cov}
}

// Model is a finite mixture of Gaussian components.
type Model struct {
	Components []Component
}

// K returns the number of components.
func (m *Model) K() int { return len(m.Components) }

// Dim returns the feature dimension.
func (m *Model) Dim() int {
	if len(m.Components) == 0 {
		return 0
	}
	return len(m.Components[0].Mean)
}

// Clone returns a deep copy of the model, used for history snapshots.
func (m *Model) Clone() *Model {
	comps := make([]Component, len(m.Components))
	for i, c := range m.Components {
		comps[i] = c.Clone()
	}
	return &Model{Components: comps}
}

// WeightSum returns the total mixing weight. It is 1 up to rounding after
// every M-step.
func (m *Model) WeightSum() float64 {
	sum := 0.0
	for _, c := range m.Components {
		sum += c.Weight
	}
	return sum
}

// normals builds the component densities, failing if any covariance has
// lost positive definiteness.
func (m *Model) normals() ([]*distmv.Normal, error) {
	ns := make([]*distmv.Normal, len(m.Components))
	for i, c := range m.Components {
		n, ok := distmv.NewNormal(c.Mean, c.Cov, nil)
		if !ok {
			return nil, fmt.Errorf("%w: component %d", ErrNotPositiveDefinite, i)
		}
		ns[i] = n
	}
	return ns, nil
}

func (m *Model) checkData(x *mat.Dense) error {
	n, d := x.Dims()
	if n == 0 {
		return ErrNoData
	}
	if d != m.Dim() {
		return fmt.Errorf("%w: data has %d features, model has %d", ErrDimensionMismatch, d, m.Dim())
	}
	return nil
}

// Responsibilities computes the E-step: the N x K matrix of posterior
// component memberships r_ik, each row summing to 1. Densities are combined
// in log space to avoid underflow on distant points.
func (m *Model) Responsibilities(x *mat.Dense) (*mat.Dense, error) {
	if err := m.checkData(x); err != nil {
		return nil, err
	}
	ns, err := m.normals()
	if err != nil {
		return nil, err
	}

	n, _ := x.Dims()
	k := m.K()
	r := mat.NewDense(n, k, nil)
	logp := make([]float64, k)

	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		for j := 0; j < k; j++ {
			logp[j] = math.Log(m.Components[j].Weight) + ns[j].LogProb(row)
		}
		total := floats.LogSumExp(logp)
		for j := 0; j < k; j++ {
			r.Set(i, j, math.Exp(logp[j]-total))
		}
	}
	return r, nil
}

// LogLikelihood returns the total data log-likelihood under the mixture.
func (m *Model) LogLikelihood(x *mat.Dense) (float64, error) {
	if err := m.checkData(x); err != nil {
		return 0, err
	}
	ns, err := m.normals()
	if err != nil {
		return 0, err
	}

	n, _ := x.Dims()
	k := m.K()
	logp := make([]float64, k)

	ll := 0.0
	for i := 0; i < n; i++ {
		row := x.RawRowView(i)
		for j := 0; j < k; j++ {
			logp[j] = math.Log(m.Components[j].Weight) + ns[j].LogProb(row)
		}
		ll += floats.LogSumExp(logp)
	}
	return ll, nil
}

// Assign returns the index of the most responsible component per point.
func (m *Model) Assign(x *mat.Dense) ([]int, error) {
	r, err := m.Responsibilities(x)
	if err != nil {
		return nil, err
	}
	n, k := r.Dims()
	labels := make([]int, n)
	for i := 0; i < n; i++ {
		best := 0
		for j := 1; j < k; j++ {
			if r.At(i, j) > r.At(i, best) {
				best = j
			}
		}
		labels[i] = best
	}
	return labels, nil
}

// covRidge is added to covariance diagonals after the M-step so the next
// E-step's Cholesky factorization cannot fail on a degenerate component.
const covRidge = 1e-6

// MStep re-estimates weights, means and covariances from responsibilities.
func MStep(x, resp *mat.Dense) (*Model, error) {
	n, d := x.Dims()
	rn, k := resp.Dims()
	if n == 0 {
		return nil, ErrNoData
	}
	if rn != n {
		return nil, fmt.Errorf("%w: %d responsibility rows for %d observations", ErrDimensionMismatch, rn, n)
	}

	comps := make([]Component, k)
	diff := make([]float64, d)

	for j := 0; j < k; j++ {
		nk := 0.0
		for i := 0; i < n; i++ {
			nk += resp.At(i, j)
		}
		if nk < 1e-12 {
			return nil, fmt.Errorf("%w: component %d", ErrEmptyComponent, j)
		}

		mean := make([]float64, d)
		for i := 0; i < n; i++ {
			r := resp.At(i, j)
			for c := 0; c < d; c++ {
				mean[c] += r * x.At(i, c)
			}
		}
		for c := 0; c < d; c++ {
			mean[c] /= nk
		}

		cov := mat.NewSymDense(d, nil)
		for i := 0; i < n; i++ {
			r := resp.At(i, j)
			for c := 0; c < d; c++ {
				diff[c] = x.At(i, c) - mean[c]
			}
			for a := 0; a < d; a++ {
				for b := a; b < d; b++ {
					cov.SetSym(a, b, cov.At(a, b)+r*diff[a]*diff[b])
				}
			}
		}
		for a := 0; a < d; a++ {
			for b := a; b < d; b++ {
				cov.SetSym(a, b, cov.At(a, b)/nk)
			}
			cov.SetSym(a, a, cov.At(a, a)+covRidge)
		}

		comps[j] = Component{Weight: nk / float64(n), Mean: mean, Cov: cov}
	}

	return &Model{Components: comps}, nil
}
