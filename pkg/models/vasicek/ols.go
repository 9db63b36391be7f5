package vasicek

import (
	"gonum.org/v1/gonum/stat"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

const (
	// OLS cannot separate process from observation noise, so the
	// observation variance is seeded as a fraction of the residual
	// variance and left for the likelihood stage to resolve.
	observationVarSeedFraction = 0.1

	varianceFloor = 1e-12
)

// InitialGuess fits y_t = alpha + beta*y_{t-1} by ordinary least squares
// over the T-1 consecutive pairs and seeds the noise variances from the
// regression residuals.
func InitialGuess(obs common.Observations) (Parameters, error) {
	if len(obs) < 2 {
		return Parameters{}, &DegenerateInputError{
			Observations: len(obs),
			Reason:       "need at least two observations",
		}
	}
	if len(obs) == 2 {
		// A single pair cannot identify both intercept and slope.
		// Return a diffuse guess instead of failing, the filter runs
		// with a wide prior and the caller is warned about confidence.
		return diffuseGuess(obs), nil
	}

	x := []float64(obs[:len(obs)-1])
	y := []float64(obs[1:])

	if stat.Variance(x, nil) <= 0 {
		return Parameters{}, &DegenerateInputError{
			Observations: len(obs),
			Reason:       "constant sequence, regressor has zero variance",
		}
	}

	alpha, beta := stat.LinearRegression(x, y, nil, false)

	rss := 0.0
	for i := range x {
		r := y[i] - alpha - beta*x[i]
		rss += r * r
	}
	dof := len(x) - 2
	if dof < 1 {
		dof = 1
	}
	residVar := rss / float64(dof)
	if residVar < varianceFloor {
		residVar = varianceFloor
	}

	return Parameters{
		Alpha:          alpha,
		Beta:           beta,
		ProcessVar:     residVar,
		ObservationVar: observationVarSeedFraction * residVar,
	}, nil
}

func diffuseGuess(obs common.Observations) Parameters {
	d := obs[1] - obs[0]
	v := d * d
	if v < varianceFloor {
		v = varianceFloor
	}
	const beta = 0.5
	return Parameters{
		Alpha:          obs[1] * (1 - beta),
		Beta:           beta,
		ProcessVar:     v,
		ObservationVar: observationVarSeedFraction * v,
	}
}
