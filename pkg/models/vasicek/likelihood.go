package vasicek

import (
	"math"

	"gonum.org/v1/gonum/optimize"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// LogLikelihood evaluates the Gaussian log-likelihood of the observations
// under the candidate parameters by running the filter and summing the
// per-step innovation contributions.
func LogLikelihood(params Parameters, obs common.Observations, init InitialState) (float64, error) {
	_, ll, err := RunFilter(params, obs, init)
	return ll, err
}

const betaBound = 1e-6

func clampBeta(b float64) float64 {
	if b < betaBound {
		return betaBound
	}
	if b > 1-betaBound {
		return 1 - betaBound
	}
	return b
}

// The optimizer searches a transformed space: logit keeps beta inside
// (0,1), log keeps both variances positive.
func encode(p Parameters) []float64 {
	b := clampBeta(p.Beta)
	return []float64{
		p.Alpha,
		math.Log(b / (1 - b)),
		math.Log(math.Max(p.ProcessVar, varianceFloor)),
		math.Log(math.Max(p.ObservationVar, varianceFloor)),
	}
}

func decode(v []float64) Parameters {
	return Parameters{
		Alpha:          v[0],
		Beta:           1 / (1 + math.Exp(-v[1])),
		ProcessVar:     math.Max(math.Exp(v[2]), varianceFloor),
		ObservationVar: math.Max(math.Exp(v[3]), varianceFloor),
	}
}

// Maximize searches for the parameter vector maximizing the innovation
// log-likelihood, starting from start. The returned optimum never falls
// below the starting point. On an exhausted evaluation budget the best
// found vector is still returned, together with a ConvergenceError, and
// the caller decides whether to accept it.
func Maximize(start Parameters, obs common.Observations, init InitialState, budget int, tol float64) (Optimum, error) {
	startLL, err := LogLikelihood(start, obs, init)
	if err != nil {
		return Optimum{Params: start, LogLikelihood: math.Inf(-1)}, err
	}

	problem := optimize.Problem{
		Func: func(v []float64) float64 {
			ll, ferr := LogLikelihood(decode(v), obs, init)
			// Non-finite likelihoods mark degenerate corners of the
			// search space, not candidates worth chasing.
			if ferr != nil || math.IsNaN(ll) || math.IsInf(ll, 0) {
				return math.Inf(1)
			}
			return -ll
		},
	}
	settings := &optimize.Settings{
		MajorIterations: budget,
		FuncEvaluations: budget * 4,
		Converger: &optimize.FunctionConverge{
			Absolute:   tol,
			Iterations: 30,
		},
	}

	opt := Optimum{Params: start, LogLikelihood: startLL}
	res, optErr := optimize.Minimize(problem, encode(start), settings, &optimize.NelderMead{})
	if res != nil {
		opt.Evaluations = res.FuncEvaluations
		if ll := -res.F; ll > opt.LogLikelihood && !math.IsInf(ll, 0) {
			opt.Params = decode(res.X)
			opt.LogLikelihood = ll
		}
		opt.Converged = optErr == nil &&
			(res.Status == optimize.FunctionConvergence || res.Status == optimize.Success)
	}

	if !opt.Converged {
		reason := "optimizer budget exhausted"
		if optErr != nil {
			reason = optErr.Error()
		}
		return opt, &ConvergenceError{
			Iterations:    opt.Evaluations,
			LogLikelihood: opt.LogLikelihood,
			Params:        opt.Params,
			Reason:        reason,
		}
	}
	return opt, nil
}
