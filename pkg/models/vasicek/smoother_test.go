package vasicek

import (
	"errors"
	"math"
	"testing"
)

func TestRunSmoother_TerminalEqualsFiltered(t *testing.T) {
	truth := Parameters{Alpha: 0.01, Beta: 0.85, ProcessVar: 0.0004, ObservationVar: 0.0002}
	_, obs := simulateAR1(t, truth, 300, 5)

	filtered, _, err := RunFilter(truth, obs, DefaultInitialState(truth, obs))
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	smoothed, err := RunSmoother(truth, filtered)
	if err != nil {
		t.Fatalf("smoother: %v", err)
	}

	last := len(filtered) - 1
	if smoothed[last].Mean != filtered[last].Mean || smoothed[last].Var != filtered[last].Var {
		t.Errorf("terminal smoothed state must equal the filtered state: %+v vs %+v",
			smoothed[last], filtered[last])
	}
}

func TestRunSmoother_VarianceNeverExceedsFiltered(t *testing.T) {
	truth := Parameters{Alpha: 0.02, Beta: 0.9, ProcessVar: 0.0009, ObservationVar: 0.0004}
	_, obs := simulateAR1(t, truth, 1000, 13)

	filtered, _, err := RunFilter(truth, obs, DefaultInitialState(truth, obs))
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	smoothed, err := RunSmoother(truth, filtered)
	if err != nil {
		t.Fatalf("smoother: %v", err)
	}

	// Smoothing blends in future information, it cannot increase
	// uncertainty at any step.
	for i := range smoothed {
		if smoothed[i].Var > filtered[i].Var+1e-12 {
			t.Fatalf("smoothed variance exceeds filtered at step %d: %v > %v",
				i, smoothed[i].Var, filtered[i].Var)
		}
	}
}

func TestRunSmoother_NoiselessConvergesToState(t *testing.T) {
	truth := Parameters{Alpha: 0.005, Beta: 0.9, ProcessVar: 0.0001, ObservationVar: 1e-12}
	states, obs := simulateAR1(t, truth, 500, 11)

	filtered, _, err := RunFilter(truth, obs, DefaultInitialState(truth, obs))
	if err != nil {
		t.Fatalf("filter: %v", err)
	}
	smoothed, err := RunSmoother(truth, filtered)
	if err != nil {
		t.Fatalf("smoother: %v", err)
	}

	for i := 10; i < len(states); i++ {
		if math.Abs(smoothed[i].Mean-states[i]) > 1e-4 {
			t.Fatalf("smoothed mean diverged from state at step %d: %v vs %v",
				i, smoothed[i].Mean, states[i])
		}
	}
}

func TestRunSmoother_ZeroPredictedVariance(t *testing.T) {
	params := Parameters{Alpha: 0, Beta: 0.9, ProcessVar: 0.01, ObservationVar: 0.01}
	history := FilterHistory{
		{Mean: 0.01, Var: 0.005, PredictedVar: 0.01},
		{Mean: 0.02, Var: 0.005, PredictedVar: 0},
		{Mean: 0.03, Var: 0.005, PredictedVar: 0.01},
	}

	_, err := RunSmoother(params, history)
	var instability *NumericalInstabilityError
	if !errors.As(err, &instability) {
		t.Fatalf("expected NumericalInstabilityError, got %v", err)
	}
	if instability.Step != 1 {
		t.Errorf("error should carry the offending step, got %d", instability.Step)
	}
}
