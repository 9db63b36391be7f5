package synthetic

import (
	"math"
	"math/rand"
	"testing"

	"github.com/peter-kozarec/shortrate/pkg/models/vasicek"
)

func TestRateGenerator_Deterministic(t *testing.T) {
	params := vasicek.Parameters{Alpha: 0.01, Beta: 0.9, ProcessVar: 0.0004, ObservationVar: 0.0001}

	a := NewRateGenerator(params, rand.New(rand.NewSource(5)))
	b := NewRateGenerator(params, rand.New(rand.NewSource(5)))

	statesA, obsA := a.Generate(100)
	statesB, obsB := b.Generate(100)

	for i := range statesA {
		if statesA[i] != statesB[i] || obsA[i] != obsB[i] {
			t.Fatalf("same seed must reproduce the sequence, diverged at %d", i)
		}
	}
}

func TestRateGenerator_MeanReversion(t *testing.T) {
	const (
		kappa  = 3.0
		theta  = 0.5
		sigma  = 0.5
		obsVar = 0.01
		dt     = 1.0 / 252
	)

	g := NewVasicekRateGenerator(kappa, theta, sigma, obsVar, dt, rand.New(rand.NewSource(9)))
	states, obs := g.Generate(200_000)

	if len(states) != len(obs) {
		t.Fatalf("states and observations must align: %d vs %d", len(states), len(obs))
	}

	mean := 0.0
	for _, x := range states {
		mean += x
	}
	mean /= float64(len(states))
	if math.Abs(mean-theta) > 0.05 {
		t.Errorf("long sample mean should revert to theta: want %v, got %v", theta, mean)
	}

	variance := 0.0
	for _, x := range states {
		variance += (x - mean) * (x - mean)
	}
	variance /= float64(len(states))
	stationary := sigma * sigma / (2 * kappa)
	if math.Abs(variance-stationary)/stationary > 0.25 {
		t.Errorf("sample variance should match the stationary variance: want %v, got %v",
			stationary, variance)
	}
}

func TestRateGenerator_SetInitialRate(t *testing.T) {
	params := vasicek.Parameters{Alpha: 0, Beta: 0.99, ProcessVar: 1e-12, ObservationVar: 1e-12}
	g := NewRateGenerator(params, rand.New(rand.NewSource(1)))
	g.SetInitialRate(1.0)

	state, _ := g.Next()
	if math.Abs(state-0.99) > 1e-3 {
		t.Errorf("first step should decay from the injected rate, got %v", state)
	}
}
