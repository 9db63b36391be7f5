package pricing

import (
	"math"
	"testing"
)

func TestFDMPricer_MatchesAnalytic(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		tau  float64
	}{
		{name: "at the long-run mean", rate: 0.05, tau: 1},
		{name: "above the mean", rate: 0.08, tau: 2},
		{name: "below the mean", rate: 0.02, tau: 5},
	}

	pricer := NewFDMPricer(600, 600)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := AnalyticPrice(testParams, tt.rate, tt.tau)
			got, err := pricer.Price(testParams, tt.rate, tt.tau)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := math.Abs(got - want); diff > 5e-3 {
				t.Errorf("grid price too far from analytic: want %v, got %v", want, got)
			}
		})
	}
}

func TestFDMPricer_InvalidInput(t *testing.T) {
	pricer := NewFDMPricer(100, 100)

	if _, err := pricer.Price(testParams, 0.05, 0); err == nil {
		t.Error("zero maturity must be rejected")
	}
	bad := testParams
	bad.Kappa = 0
	if _, err := pricer.Price(bad, 0.05, 1); err == nil {
		t.Error("non-positive mean-reversion speed must be rejected")
	}
}
