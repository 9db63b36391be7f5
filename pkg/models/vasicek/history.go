package vasicek

import (
	"github.com/peter-kozarec/shortrate/pkg/utility"
)

// FilterStep holds every quantity the forward recursion produces for one
// time step. The likelihood evaluator reads Innovation/InnovationVar, the
// smoother reads the predicted and updated moments.
type FilterStep struct {
	PredictedMean float64
	PredictedVar  float64
	Mean          float64
	Var           float64
	Innovation    float64
	InnovationVar float64
}

type FilterHistory []FilterStep

// SmoothedStep is the backward-pass refinement of one filtered estimate.
// Read-only once computed.
type SmoothedStep struct {
	Mean float64
	Var  float64
	Gain float64
}

type SmoothedHistory []SmoothedStep

// Optimum is the outcome of a single likelihood maximization. Created once
// per optimizer call and discarded after the refinement loop extracts the
// parameter vector.
type Optimum struct {
	Params        Parameters
	LogLikelihood float64
	Converged     bool
	Evaluations   int
}

// FitResult is the final output of the refinement loop: the accepted
// parameters, the last iteration's state histories and the log-likelihood
// trajectory across iterations.
type FitResult struct {
	RunID          utility.RunID
	Params         Parameters
	Filtered       FilterHistory
	Smoothed       SmoothedHistory
	LogLikelihoods []float64
	Iterations     int
	Converged      bool
}
