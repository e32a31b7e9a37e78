package experiment

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/statlab/internal/anneal"
	"github.com/san-kum/statlab/internal/mixture"
)

func TestRegistryProposals(t *testing.T) {
	r := NewRegistry()

	p, err := r.GetProposal("gaussian", map[string]float64{"sigma": 5})
	if err != nil {
		t.Fatalf("get gaussian failed: %v", err)
	}
	g, ok := p.(*anneal.GaussianProposal)
	if !ok {
		t.Fatalf("expected *GaussianProposal, got %T", p)
	}
	if g.Sigma != 5 {
		t.Errorf("expected sigma 5, got %f", g.Sigma)
	}

	// zero sigma falls back to the default
	p, _ = r.GetProposal("gaussian", map[string]float64{})
	if p.(*anneal.GaussianProposal).Sigma != 10 {
		t.Errorf("expected default sigma 10, got %f", p.(*anneal.GaussianProposal).Sigma)
	}

	if _, err := r.GetProposal("uniform", nil); err != nil {
		t.Errorf("get uniform failed: %v", err)
	}

	if _, err := r.GetProposal("levy", nil); !errors.Is(err, anneal.ErrUnknownProposal) {
		t.Errorf("expected ErrUnknownProposal, got %v", err)
	}
}

func TestRegistrySchedules(t *testing.T) {
	r := NewRegistry()

	s, err := r.GetSchedule("geometric", map[string]float64{"temp": 2, "alpha": 0.95})
	if err != nil {
		t.Fatalf("get schedule failed: %v", err)
	}
	if s.Start() != 2 {
		t.Errorf("expected start temp 2, got %f", s.Start())
	}

	// defaults apply when params are absent
	s, err = r.GetSchedule("geometric", map[string]float64{})
	if err != nil {
		t.Fatalf("get schedule failed: %v", err)
	}
	if s.Start() != 1 {
		t.Errorf("expected default start temp 1, got %f", s.Start())
	}

	if _, err := r.GetSchedule("linear", nil); err == nil {
		t.Error("expected error for unknown schedule")
	}
}

func TestRegistryInitializers(t *testing.T) {
	r := NewRegistry()

	init, err := r.GetInitializer("random", nil)
	if err != nil {
		t.Fatalf("get random failed: %v", err)
	}
	if init.Name() != "random" {
		t.Errorf("expected name random, got %s", init.Name())
	}

	init, err = r.GetInitializer("kmeans", map[string]float64{"restarts": 5})
	if err != nil {
		t.Fatalf("get kmeans failed: %v", err)
	}
	if init.Name() != "kmeans" {
		t.Errorf("expected name kmeans, got %s", init.Name())
	}

	if _, err := r.GetInitializer("spectral", nil); !errors.Is(err, mixture.ErrUnknownInitializer) {
		t.Errorf("expected ErrUnknownInitializer, got %v", err)
	}
}

func TestRegistryListProposals(t *testing.T) {
	r := NewRegistry()
	names := r.ListProposals()
	if len(names) != 2 {
		t.Errorf("expected 2 proposals, got %d", len(names))
	}
}

func TestExperimentRun(t *testing.T) {
	r := NewRegistry()
	cfg := Config{
		Proposal: "gaussian",
		Sigma:    10,
		Samples:  50,
		Temp:     1.0,
		Alpha:    0.99,
		GridSize: 40,
		Seed:     25,
	}

	prop, err := r.GetProposal(cfg.Proposal, cfg.Params())
	if err != nil {
		t.Fatalf("get proposal failed: %v", err)
	}
	sched, err := r.GetSchedule("geometric", cfg.Params())
	if err != nil {
		t.Fatalf("get schedule failed: %v", err)
	}

	exp := New(cfg)
	if err := exp.Setup(prop, sched, r.DefaultMetrics()); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if exp.Landscape() == nil || exp.Landscape().N != 40 {
		t.Fatal("landscape not built at the configured grid size")
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Accepted+result.Rejected != 50 {
		t.Errorf("expected 50 steps, got %d", result.Accepted+result.Rejected)
	}
	for _, name := range []string{"acceptance_rate", "best_energy", "final_temp"} {
		if _, ok := result.Metrics[name]; !ok {
			t.Errorf("metric %s missing from result", name)
		}
	}
}

func TestExperimentRunWithoutSetup(t *testing.T) {
	exp := New(Config{Samples: 10})
	if _, err := exp.Run(context.Background()); err == nil {
		t.Error("expected error before setup")
	}
}
