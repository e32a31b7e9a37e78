package anneal

import (
	"testing"
)

func BenchmarkWalkerGaussian(b *testing.B) {
	land, err := NewLandscape(DefaultGridSize)
	if err != nil {
		b.Fatalf("landscape failed: %v", err)
	}
	sched, _ := NewGeometric(1.0, 0.9999)
	w := NewWalker(land, NewGaussianProposal(10), sched, 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

func BenchmarkWalkerUniform(b *testing.B) {
	land, err := NewLandscape(DefaultGridSize)
	if err != nil {
		b.Fatalf("landscape failed: %v", err)
	}
	sched, _ := NewGeometric(1.0, 0.9999)
	w := NewWalker(land, NewUniformProposal(), sched, 42)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		w.Step()
	}
}

func BenchmarkNewLandscape(b *testing.B) {
	for i := 0; i < b.N; i++ {
		if _, err := NewLandscape(DefaultGridSize); err != nil {
			b.Fatalf("landscape failed: %v", err)
		}
	}
}
