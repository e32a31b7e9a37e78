package mixture_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/statlab/internal/mixture"
)

// twoBlobs draws n points around each of two well-separated centers.
func twoBlobs(n int, seed uint64) *mat.Dense {
	rng := rand.New(rand.NewSource(seed))
	x := mat.NewDense(2*n, 2, nil)
	centers := [2][2]float64{{-5, -5}, {5, 5}}
	for i := 0; i < 2*n; i++ {
		c := centers[i%2]
		x.Set(i, 0, c[0]+rng.NormFloat64()*0.5)
		x.Set(i, 1, c[1]+rng.NormFloat64()*0.5)
	}
	return x
}

var _ = Describe("Responsibilities", func() {
	var (
		x     *mat.Dense
		model *mixture.Model
	)

	BeforeEach(func() {
		x = twoBlobs(100, 1)
		init := mixture.RandomInit{}
		var err error
		model, err = init.Init(x, 2, rand.NewSource(1))
		Expect(err).NotTo(HaveOccurred())
	})

	It("produces rows that sum to one", func() {
		r, err := model.Responsibilities(x)
		Expect(err).NotTo(HaveOccurred())

		n, k := r.Dims()
		Expect(k).To(Equal(2))
		for i := 0; i < n; i++ {
			sum := 0.0
			for j := 0; j < k; j++ {
				v := r.At(i, j)
				Expect(v).To(BeNumerically(">=", 0))
				Expect(v).To(BeNumerically("<=", 1))
				sum += v
			}
			Expect(sum).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("rejects data of the wrong dimension", func() {
		bad := mat.NewDense(5, 3, nil)
		_, err := model.Responsibilities(bad)
		Expect(err).To(MatchError(mixture.ErrDimensionMismatch))
	})

	It("rejects the wrong dimension for the log-likelihood too", func() {
		bad := mat.NewDense(5, 3, nil)
		_, err := model.LogLikelihood(bad)
		Expect(err).To(MatchError(mixture.ErrDimensionMismatch))
	})
})

var _ = Describe("MStep", func() {
	It("keeps the mixing weights summing to one", func() {
		x := twoBlobs(100, 2)
		init := mixture.RandomInit{}
		model, err := init.Init(x, 2, rand.NewSource(2))
		Expect(err).NotTo(HaveOccurred())

		for iter := 0; iter < 10; iter++ {
			resp, err := model.Responsibilities(x)
			Expect(err).NotTo(HaveOccurred())
			model, err = mixture.MStep(x, resp)
			Expect(err).NotTo(HaveOccurred())
			Expect(model.WeightSum()).To(BeNumerically("~", 1, 1e-9))
		}
	})

	It("fails on a component with no responsibility mass", func() {
		x := twoBlobs(10, 3)
		n, _ := x.Dims()
		resp := mat.NewDense(n, 2, nil)
		for i := 0; i < n; i++ {
			resp.Set(i, 0, 1) // all mass on the first component
		}

		_, err := mixture.MStep(x, resp)
		Expect(err).To(MatchError(mixture.ErrEmptyComponent))
	})
})

var _ = Describe("EM", func() {
	It("never decreases the log-likelihood", func() {
		x := twoBlobs(150, 442)
		em := &mixture.EM{K: 2, Seed: 442}

		result, err := em.Fit(context.Background(), x)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(result.LogLikelihood)).To(BeNumerically(">", 1))

		for i := 1; i < len(result.LogLikelihood); i++ {
			Expect(result.LogLikelihood[i]).To(
				BeNumerically(">=", result.LogLikelihood[i-1]-1e-8),
				"log-likelihood dropped at iteration %d", i)
		}
	})

	It("converges on well-separated clusters", func() {
		x := twoBlobs(150, 7)
		em := &mixture.EM{K: 2, Tol: 1e-6, MaxIter: 500, Seed: 7}

		result, err := em.Fit(context.Background(), x)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.Converged).To(BeTrue())

		final := result.Final()
		Expect(final.WeightSum()).To(BeNumerically("~", 1, 1e-9))

		// one mean near each blob center
		found := [2]bool{}
		for _, c := range final.Components {
			Expect(c.Weight).To(BeNumerically("~", 0.5, 0.1))
			if math.Abs(c.Mean[0]+5) < 1 && math.Abs(c.Mean[1]+5) < 1 {
				found[0] = true
			}
			if math.Abs(c.Mean[0]-5) < 1 && math.Abs(c.Mean[1]-5) < 1 {
				found[1] = true
			}
		}
		Expect(found[0]).To(BeTrue(), "no mean near (-5,-5)")
		Expect(found[1]).To(BeTrue(), "no mean near (5,5)")
	})

	It("records the initial model as the first history entry", func() {
		x := twoBlobs(50, 11)
		em := &mixture.EM{K: 2, Seed: 11}

		result, err := em.Fit(context.Background(), x)
		Expect(err).NotTo(HaveOccurred())
		Expect(result.History).To(HaveLen(len(result.LogLikelihood)))
		Expect(result.History).To(HaveLen(result.Iterations + 1))
	})

	It("returns final responsibilities matching the data", func() {
		x := twoBlobs(50, 12)
		em := &mixture.EM{K: 2, Seed: 12}

		result, err := em.Fit(context.Background(), x)
		Expect(err).NotTo(HaveOccurred())

		n, k := result.Resp.Dims()
		Expect(n).To(Equal(100))
		Expect(k).To(Equal(2))
	})

	It("rejects fewer points than components", func() {
		x := mat.NewDense(2, 2, []float64{0, 0, 1, 1})
		em := &mixture.EM{K: 5, Seed: 1}

		_, err := em.Fit(context.Background(), x)
		Expect(err).To(MatchError(mixture.ErrTooFewPoints))
	})

	It("rejects a non-positive component count", func() {
		x := twoBlobs(10, 1)
		em := &mixture.EM{K: 0}

		_, err := em.Fit(context.Background(), x)
		Expect(err).To(HaveOccurred())
	})

	It("stops when the context is cancelled", func() {
		x := twoBlobs(100, 1)
		em := &mixture.EM{K: 2, Seed: 1}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		result, err := em.Fit(ctx, x)
		Expect(err).To(MatchError(context.Canceled))
		Expect(result.History).To(HaveLen(1))
	})
})

var _ = Describe("KMeansInit", func() {
	It("seeds means at the cluster centers", func() {
		x := twoBlobs(100, 40)
		init := mixture.KMeansInit{Restarts: 5}

		model, err := init.Init(x, 2, rand.NewSource(40))
		Expect(err).NotTo(HaveOccurred())
		Expect(model.K()).To(Equal(2))
		Expect(model.WeightSum()).To(BeNumerically("~", 1, 1e-9))

		for _, c := range model.Components {
			dist1 := math.Hypot(c.Mean[0]+5, c.Mean[1]+5)
			dist2 := math.Hypot(c.Mean[0]-5, c.Mean[1]-5)
			Expect(math.Min(dist1, dist2)).To(BeNumerically("<", 1))
		}
	})
})
