package anneal

// Step records one Metropolis proposal/accept cycle.
type Step struct {
	Iter     int
	Pos      Coord
	Proposed Coord
	Energy   float64
	Temp     float64
	Prob     float64
	Accepted bool
}

// Metric accumulates a scalar over the steps of a run.
type Metric interface {
	Name() string
	Observe(s Step)
	Value() float64
	Reset()
}

// Observer receives every step as it happens.
type Observer interface {
	OnStep(s Step)
}

// Config holds run parameters for an annealing experiment. The seed is
// fixed when the walker is built, not per run.
type Config struct {
	Samples int
}

// Result holds the full history of a run.
type Result struct {
	Positions []Coord
	Energies  []float64
	Temps     []float64
	Probs     []float64
	Accepted  int
	Rejected  int
	Metrics   map[string]float64
}
