package dataset

import (
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance, column by
// column. A zero-variance column is shifted but not scaled.
type Scaler struct {
	Means []float64
	Stds  []float64
}

// FitScaler computes per-column statistics.
func FitScaler(x *mat.Dense) (*Scaler, error) {
	n, d := x.Dims()
	if n == 0 {
		return nil, ErrEmptyDataset
	}

	s := &Scaler{Means: make([]float64, d), Stds: make([]float64, d)}
	col := make([]float64, n)
	for c := 0; c < d; c++ {
		mat.Col(col, c, x)
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Means[c] = mean
		s.Stds[c] = std
	}
	return s, nil
}

// Transform returns a standardized copy of x.
func (s *Scaler) Transform(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < d; c++ {
			out.Set(i, c, (x.At(i, c)-s.Means[c])/s.Stds[c])
		}
	}
	return out
}

// InverseTransform maps standardized coordinates back to the original
// units, e.g. to report cluster centers in data space.
func (s *Scaler) InverseTransform(x *mat.Dense) *mat.Dense {
	n, d := x.Dims()
	out := mat.NewDense(n, d, nil)
	for i := 0; i < n; i++ {
		for c := 0; c < d; c++ {
			out.Set(i, c, x.At(i, c)*s.Stds[c]+s.Means[c])
		}
	}
	return out
}
