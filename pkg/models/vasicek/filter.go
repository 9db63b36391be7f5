package vasicek

import (
	"math"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// Prior variance used when the candidate parameters have no stationary
// distribution to draw an initial variance from.
const diffusePriorVar = 100.0

// InitialState seeds the forward recursion.
type InitialState struct {
	Mean float64
	Var  float64
}

// DefaultInitialState centers the prior on the first observation and uses
// the stationary state variance when it exists, a wide prior otherwise.
func DefaultInitialState(params Parameters, obs common.Observations) InitialState {
	init := InitialState{Var: diffusePriorVar}
	if v, ok := params.StationaryVariance(); ok {
		init.Var = v
	}
	if len(obs) > 0 {
		init.Mean = obs[0]
	}
	return init
}

// RunFilter executes the forward Kalman recursion over the observations,
// returning the per-step history and the total Gaussian log-likelihood of
// the innovations.
func RunFilter(params Parameters, obs common.Observations, init InitialState) (FilterHistory, float64, error) {
	if err := params.Validate(); err != nil {
		return nil, 0, err
	}
	if len(obs) == 0 {
		return nil, 0, &DegenerateInputError{Observations: 0, Reason: "empty observation sequence"}
	}

	history := make(FilterHistory, len(obs))
	mean, variance := init.Mean, init.Var
	logLikelihood := 0.0

	for t, y := range obs {
		predMean := params.Alpha + params.Beta*mean
		predVar := params.Beta*params.Beta*variance + params.ProcessVar

		innovation := y - predMean
		innovationVar := predVar + params.ObservationVar
		if !(innovationVar > 0) {
			return nil, 0, &NumericalInstabilityError{
				Step:     t,
				Quantity: "innovation variance",
				Value:    innovationVar,
				Params:   params,
			}
		}

		gain := predVar / innovationVar
		mean = predMean + gain*innovation
		variance = (1 - gain) * predVar

		logLikelihood += -0.5*math.Log(2*math.Pi*innovationVar) -
			innovation*innovation/(2*innovationVar)

		history[t] = FilterStep{
			PredictedMean: predMean,
			PredictedVar:  predVar,
			Mean:          mean,
			Var:           variance,
			Innovation:    innovation,
			InnovationVar: innovationVar,
		}
	}

	return history, logLikelihood, nil
}
