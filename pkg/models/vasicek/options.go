package vasicek

import (
	"math/rand"

	"go.uber.org/zap"
)

type ModelOption func(*Model)

func WithLogger(logger *zap.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithInitialState overrides the default filter prior (first observation,
// stationary variance).
func WithInitialState(mean, variance float64) ModelOption {
	return func(m *Model) {
		m.initial = &InitialState{Mean: mean, Var: variance}
	}
}

// WithConvergenceTolerance sets the relative log-likelihood change below
// which the refinement loop stops.
func WithConvergenceTolerance(tol float64) ModelOption {
	return func(m *Model) {
		if tol > 0 {
			m.tolerance = tol
		}
	}
}

func WithMaxRefinements(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.maxRefinements = n
		}
	}
}

// WithOptimizerBudget caps the Nelder-Mead iterations of each M-step.
func WithOptimizerBudget(n int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.optBudget = n
		}
	}
}

func WithOptimizerTolerance(tol float64) ModelOption {
	return func(m *Model) {
		if tol > 0 {
			m.optTolerance = tol
		}
	}
}

// WithRestarts configures FitWithRestarts: n independent starting guesses
// spread across the given number of workers.
func WithRestarts(n, workers int) ModelOption {
	return func(m *Model) {
		if n > 0 {
			m.restarts = n
		}
		if workers > 0 {
			m.workers = workers
		}
	}
}

// WithRand injects the source used to jitter restart guesses.
func WithRand(rng *rand.Rand) ModelOption {
	return func(m *Model) {
		m.rng = rng
	}
}
