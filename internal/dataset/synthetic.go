package dataset

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/san-kum/statlab/internal/mixture"
)

// SampleMixture draws n observations from a known mixture: a categorical
// draw picks the component, a multivariate normal draw fills the row.
func SampleMixture(model *mixture.Model, n int, src rand.Source) (*mat.Dense, error) {
	if n <= 0 {
		return nil, fmt.Errorf("dataset: sample count must be positive, got %d", n)
	}

	k := model.K()
	weights := make([]float64, k)
	normals := make([]*distmv.Normal, k)
	for i, c := range model.Components {
		weights[i] = c.Weight
		normal, ok := distmv.NewNormal(c.Mean, c.Cov, src)
		if !ok {
			return nil, fmt.Errorf("%w: component %d", mixture.ErrNotPositiveDefinite, i)
		}
		normals[i] = normal
	}
	cat := distuv.NewCategorical(weights, src)

	x := mat.NewDense(n, model.Dim(), nil)
	for i := 0; i < n; i++ {
		normals[int(cat.Rand())].Rand(x.RawRowView(i))
	}
	return x, nil
}
