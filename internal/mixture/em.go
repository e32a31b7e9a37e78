package mixture

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// Initializer builds a starting model from the data.
type Initializer interface {
	Name() string
	Init(x *mat.Dense, k int, src rand.Source) (*Model, error)
}

// RandomInit picks k random observations as means, identity covariances and
// equal weights.
type RandomInit struct{}

func (RandomInit) Name() string { return "random" }

func (RandomInit) Init(x *mat.Dense, k int, src rand.Source) (*Model, error) {
	n, d := x.Dims()
	if n == 0 {
		return nil, ErrNoData
	}
	if k > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrTooFewPoints, k, n)
	}

	rng := rand.New(src)
	comps := make([]Component, k)
	for j := 0; j < k; j++ {
		mean := make([]float64, d)
		copy(mean, x.RawRowView(rng.Intn(n)))
		cov := mat.NewSymDense(d, nil)
		for c := 0; c < d; c++ {
			cov.SetSym(c, c, 1)
		}
		comps[j] = Component{Weight: 1 / float64(k), Mean: mean, Cov: cov}
	}
	return &Model{Components: comps}, nil
}

// KMeansInit seeds component means with k-means cluster centers; covariances
// start at identity and weights at the cluster shares.
type KMeansInit struct {
	Restarts int
	MaxIter  int
}

func (KMeansInit) Name() string { return "kmeans" }

func (ki KMeansInit) Init(x *mat.Dense, k int, src rand.Source) (*Model, error) {
	restarts := ki.Restarts
	if restarts <= 0 {
		restarts = 10
	}
	maxIter := ki.MaxIter
	if maxIter <= 0 {
		maxIter = 300
	}

	km := &KMeans{K: k, MaxIter: maxIter, Restarts: restarts}
	res, err := km.fit(x, rand.New(src))
	if err != nil {
		return nil, err
	}

	n, d := x.Dims()
	counts := make([]int, k)
	for _, l := range res.Labels {
		counts[l]++
	}

	comps := make([]Component, k)
	for j := 0; j < k; j++ {
		mean := make([]float64, d)
		copy(mean, res.Centers.RawRowView(j))
		cov := mat.NewSymDense(d, nil)
		for c := 0; c < d; c++ {
			cov.SetSym(c, c, 1)
		}
		comps[j] = Component{Weight: float64(counts[j]) / float64(n), Mean: mean, Cov: cov}
	}
	return &Model{Components: comps}, nil
}

// Result records an EM fit: one model snapshot and log-likelihood per
// iteration, plus the final responsibilities.
type Result struct {
	History       []*Model
	LogLikelihood []float64
	Resp          *mat.Dense
	Iterations    int
	Converged     bool
}

// Final returns the fitted model.
func (r *Result) Final() *Model {
	if len(r.History) == 0 {
		return nil
	}
	return r.History[len(r.History)-1]
}

// EM drives the fit.
type EM struct {
	K           int
	Tol         float64
	MaxIter     int
	Seed        int64
	Initializer Initializer
}

// Fit runs EM to convergence or MaxIter. The initial model and likelihood
// are recorded before the first iteration so History[0] is the start state.
func (e *EM) Fit(ctx context.Context, x *mat.Dense) (*Result, error) {
	if e.K < 1 {
		return nil, fmt.Errorf("mixture: need at least one component, got %d", e.K)
	}
	tol := e.Tol
	if tol <= 0 {
		tol = 1e-6
	}
	maxIter := e.MaxIter
	if maxIter <= 0 {
		maxIter = 500
	}
	init := e.Initializer
	if init == nil {
		init = RandomInit{}
	}

	model, err := init.Init(x, e.K, rand.NewSource(uint64(e.Seed)))
	if err != nil {
		return nil, err
	}

	ll, err := model.LogLikelihood(x)
	if err != nil {
		return nil, err
	}

	result := &Result{
		History:       []*Model{model.Clone()},
		LogLikelihood: []float64{ll},
	}

	for iter := 1; iter <= maxIter; iter++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		resp, err := model.Responsibilities(x)
		if err != nil {
			return result, err
		}
		model, err = MStep(x, resp)
		if err != nil {
			return result, err
		}
		newLL, err := model.LogLikelihood(x)
		if err != nil {
			return result, err
		}

		result.History = append(result.History, model.Clone())
		result.LogLikelihood = append(result.LogLikelihood, newLL)
		result.Iterations = iter

		if math.Abs(newLL/ll-1) < tol {
			result.Converged = true
			ll = newLL
			break
		}
		ll = newLL
	}

	resp, err := model.Responsibilities(x)
	if err != nil {
		return result, err
	}
	result.Resp = resp

	return result, nil
}
