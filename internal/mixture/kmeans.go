package mixture

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

// KMeans runs Lloyd's algorithm with random restarts, keeping the
// assignment with the lowest inertia.
type KMeans struct {
	K        int
	MaxIter  int
	Restarts int
	Seed     int64
}

// KMeansResult holds cluster centers, per-point labels and the
// within-cluster sum of squares.
type KMeansResult struct {
	Centers *mat.Dense
	Labels  []int
	Inertia float64
}

func (km *KMeans) Fit(x *mat.Dense) (*KMeansResult, error) {
	return km.fit(x, rand.New(rand.NewSource(uint64(km.Seed))))
}

func (km *KMeans) fit(x *mat.Dense, rng *rand.Rand) (*KMeansResult, error) {
	n, _ := x.Dims()
	if n == 0 {
		return nil, ErrNoData
	}
	if km.K < 1 {
		return nil, fmt.Errorf("mixture: need at least one cluster, got %d", km.K)
	}
	if km.K > n {
		return nil, fmt.Errorf("%w: k=%d, n=%d", ErrTooFewPoints, km.K, n)
	}

	restarts := km.Restarts
	if restarts <= 0 {
		restarts = 1
	}
	maxIter := km.MaxIter
	if maxIter <= 0 {
		maxIter = 300
	}

	var best *KMeansResult
	for r := 0; r < restarts; r++ {
		res := km.runOnce(x, rng, maxIter)
		if best == nil || res.Inertia < best.Inertia {
			best = res
		}
	}
	return best, nil
}

func (km *KMeans) runOnce(x *mat.Dense, rng *rand.Rand, maxIter int) *KMeansResult {
	n, d := x.Dims()
	k := km.K

	// seed centers with k distinct observations
	perm := rng.Perm(n)
	centers := mat.NewDense(k, d, nil)
	for j := 0; j < k; j++ {
		centers.SetRow(j, x.RawRowView(perm[j]))
	}

	labels := make([]int, n)
	counts := make([]int, k)

	for iter := 0; iter < maxIter; iter++ {
		changed := false
		for i := 0; i < n; i++ {
			l := nearest(x.RawRowView(i), centers)
			if l != labels[i] {
				labels[i] = l
				changed = true
			}
		}
		if !changed && iter > 0 {
			break
		}

		for j := range counts {
			counts[j] = 0
		}
		next := mat.NewDense(k, d, nil)
		for i := 0; i < n; i++ {
			j := labels[i]
			counts[j]++
			row := x.RawRowView(i)
			for c := 0; c < d; c++ {
				next.Set(j, c, next.At(j, c)+row[c])
			}
		}
		for j := 0; j < k; j++ {
			if counts[j] == 0 {
				// reseed an empty cluster at a random observation
				next.SetRow(j, x.RawRowView(rng.Intn(n)))
				continue
			}
			for c := 0; c < d; c++ {
				next.Set(j, c, next.At(j, c)/float64(counts[j]))
			}
		}
		centers = next
	}

	inertia := 0.0
	for i := 0; i < n; i++ {
		inertia += sqDist(x.RawRowView(i), centers.RawRowView(labels[i]))
	}

	return &KMeansResult{Centers: centers, Labels: labels, Inertia: inertia}
}

func nearest(p []float64, centers *mat.Dense) int {
	k, _ := centers.Dims()
	best, bestDist := 0, math.Inf(1)
	for j := 0; j < k; j++ {
		if d := sqDist(p, centers.RawRowView(j)); d < bestDist {
			best, bestDist = j, d
		}
	}
	return best
}

func sqDist(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return sum
}
