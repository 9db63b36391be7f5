package vasicek

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/peter-kozarec/shortrate/pkg/common"
	"github.com/peter-kozarec/shortrate/pkg/utility"
)

const (
	defaultTolerance       = 1e-6
	defaultMaxRefinements  = 100
	defaultOptimizerBudget = 500
	defaultOptimizerTol    = 1e-8

	lowConfidenceObservations = 10

	// Tiny slack so floating-point noise is not mistaken for a broken
	// ascent.
	ascentSlack = 1e-9
)

// Model estimates the latent short-rate process and its state-space
// parameters from a noisy observation sequence. A Model holds only
// configuration, every Fit call owns its own histories, so a single Model
// may serve concurrent fits.
type Model struct {
	logger *zap.Logger
	rng    *rand.Rand

	initial        *InitialState
	tolerance      float64
	maxRefinements int
	optBudget      int
	optTolerance   float64
	restarts       int
	workers        int
}

func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		logger:         zap.NewNop(),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		tolerance:      defaultTolerance,
		maxRefinements: defaultMaxRefinements,
		optBudget:      defaultOptimizerBudget,
		optTolerance:   defaultOptimizerTol,
		restarts:       1,
		workers:        runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fit runs the full pipeline: least-squares initialization followed by the
// EM-like refinement loop.
func (m *Model) Fit(ctx context.Context, obs common.Observations) (*FitResult, error) {
	if !obs.Finite() {
		return nil, &DegenerateInputError{
			Observations: len(obs),
			Reason:       "sequence contains non-finite values",
		}
	}
	start, err := InitialGuess(obs)
	if err != nil {
		return nil, err
	}
	return m.FitFrom(ctx, obs, start)
}

// FitFrom runs the refinement loop from an explicit starting guess. Each
// iteration filters and smooths under the current parameters, then
// re-estimates them by likelihood maximization, until the relative change
// in log-likelihood drops below the tolerance or the iteration budget runs
// out. The log-likelihood trajectory is non-decreasing; a decrease aborts
// with a ConvergenceError since it signals a numerical bug, not a worse
// but valid estimate.
func (m *Model) FitFrom(ctx context.Context, obs common.Observations, start Parameters) (*FitResult, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}

	runID := utility.NewRunID()
	logger := m.logger.With(zap.Stringer("run_id", runID))
	if len(obs) < lowConfidenceObservations {
		logger.Warn("short observation sequence, estimate will be low confidence",
			zap.Int("observations", len(obs)))
	}

	// The prior is fixed for the whole fit so every iteration maximizes
	// the same objective. Re-deriving it from the current parameters
	// would silently change the likelihood between iterations.
	init := m.initialState(start, obs)

	params := start
	result := &FitResult{RunID: runID, Params: params}
	last := math.Inf(-1)

	for i := 0; i < m.maxRefinements; i++ {
		// Cooperative cancellation, checked between iterations only.
		if err := ctx.Err(); err != nil {
			return result, err
		}

		filtered, ll, err := RunFilter(params, obs, init)
		if err != nil {
			return nil, err
		}
		smoothed, err := RunSmoother(params, filtered)
		if err != nil {
			return nil, err
		}

		result.Params = params
		result.Filtered = filtered
		result.Smoothed = smoothed
		result.LogLikelihoods = append(result.LogLikelihoods, ll)
		result.Iterations = i + 1

		if i > 0 {
			if ll < last-ascentSlack*(1+math.Abs(last)) {
				return result, &ConvergenceError{
					Iterations:    result.Iterations,
					LogLikelihood: ll,
					Params:        params,
					Reason:        "log-likelihood decreased between iterations",
				}
			}
			if math.Abs(ll-last)/(1+math.Abs(last)) < m.tolerance {
				result.Converged = true
				break
			}
		}
		last = ll

		// Moment-matching on smoothed state pairs serves only as a
		// warm start, the accepted update always comes from the
		// numerical maximization.
		optStart := params
		if warm, ok := momentMatch(obs, smoothed); ok {
			if wll, werr := LogLikelihood(warm, obs, init); werr == nil && wll > ll {
				optStart = warm
			}
		}

		opt, err := Maximize(optStart, obs, init, m.optBudget, m.optTolerance)
		var convErr *ConvergenceError
		if err != nil && !errors.As(err, &convErr) {
			return nil, err
		}
		if err != nil {
			logger.Warn("optimizer budget exhausted, keeping best-effort parameters",
				zap.Error(err))
		}
		if opt.LogLikelihood >= ll {
			params = opt.Params
		}

		logger.Debug("refinement iteration",
			zap.Int("iteration", i+1),
			zap.Float64("log_likelihood", ll),
			zap.String("params", params.String()))
	}

	if !result.Params.IsStationary() {
		logger.Warn("persistence estimate is non-stationary",
			zap.Float64("beta", result.Params.Beta))
	}
	if !result.Converged {
		return result, &ConvergenceError{
			Iterations:    result.Iterations,
			LogLikelihood: last,
			Params:        result.Params,
			Reason:        "refinement budget exhausted",
		}
	}
	return result, nil
}

// FitWithRestarts runs independent refinement loops from jittered starting
// guesses to mitigate local maxima. Restarts share nothing but read-only
// access to the observations; the best final log-likelihood wins.
func (m *Model) FitWithRestarts(ctx context.Context, obs common.Observations) (*FitResult, error) {
	if m.restarts <= 1 {
		return m.Fit(ctx, obs)
	}
	if !obs.Finite() {
		return nil, &DegenerateInputError{
			Observations: len(obs),
			Reason:       "sequence contains non-finite values",
		}
	}
	base, err := InitialGuess(obs)
	if err != nil {
		return nil, err
	}

	starts := make([]Parameters, m.restarts)
	starts[0] = base
	for i := 1; i < m.restarts; i++ {
		starts[i] = m.jitter(base)
	}

	type outcome struct {
		result *FitResult
		err    error
	}
	jobs := make(chan Parameters)
	outcomes := make(chan outcome, m.restarts)

	workers := m.workers
	if workers < 1 {
		workers = 1
	}
	if workers > m.restarts {
		workers = m.restarts
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range jobs {
				res, ferr := m.FitFrom(ctx, obs, start)
				outcomes <- outcome{res, ferr}
			}
		}()
	}
	for _, s := range starts {
		jobs <- s
	}
	close(jobs)
	wg.Wait()
	close(outcomes)

	var best *FitResult
	var bestErr error
	for o := range outcomes {
		if o.result == nil {
			if best == nil && bestErr == nil {
				bestErr = o.err
			}
			continue
		}
		if best == nil || finalLogLikelihood(o.result) > finalLogLikelihood(best) {
			best, bestErr = o.result, o.err
		}
	}
	if best == nil {
		return nil, bestErr
	}
	return best, bestErr
}

func (m *Model) initialState(params Parameters, obs common.Observations) InitialState {
	if m.initial != nil {
		return *m.initial
	}
	return DefaultInitialState(params, obs)
}

func (m *Model) jitter(p Parameters) Parameters {
	b := clampBeta(p.Beta)
	logit := math.Log(b/(1-b)) + m.rng.NormFloat64()*0.5
	return Parameters{
		Alpha:          p.Alpha + m.rng.NormFloat64()*(math.Abs(p.Alpha)*0.2+1e-3),
		Beta:           1 / (1 + math.Exp(-logit)),
		ProcessVar:     p.ProcessVar * math.Exp(m.rng.NormFloat64()*0.5),
		ObservationVar: p.ObservationVar * math.Exp(m.rng.NormFloat64()*0.5),
	}
}

func finalLogLikelihood(r *FitResult) float64 {
	if len(r.LogLikelihoods) == 0 {
		return math.Inf(-1)
	}
	return r.LogLikelihoods[len(r.LogLikelihoods)-1]
}

// momentMatch derives candidate parameters from smoothed state pairs:
// intercept and persistence from a regression of consecutive smoothed
// means, process variance from its residuals, observation variance from
// the spread between observations and smoothed states.
func momentMatch(obs common.Observations, smoothed SmoothedHistory) (Parameters, bool) {
	n := len(smoothed)
	if n < 3 || len(obs) != n {
		return Parameters{}, false
	}

	x := make([]float64, n-1)
	y := make([]float64, n-1)
	for t := 0; t < n-1; t++ {
		x[t] = smoothed[t].Mean
		y[t] = smoothed[t+1].Mean
	}
	if stat.Variance(x, nil) <= 0 {
		return Parameters{}, false
	}
	alpha, beta := stat.LinearRegression(x, y, nil, false)

	pv := 0.0
	for t := 0; t < n-1; t++ {
		r := y[t] - alpha - beta*x[t]
		pv += r * r
	}
	pv /= float64(n - 1)

	ov := 0.0
	for t := 0; t < n; t++ {
		d := obs[t] - smoothed[t].Mean
		ov += d*d + smoothed[t].Var
	}
	ov /= float64(n)

	if pv < varianceFloor {
		pv = varianceFloor
	}
	if ov < varianceFloor {
		ov = varianceFloor
	}

	cand := Parameters{Alpha: alpha, Beta: beta, ProcessVar: pv, ObservationVar: ov}
	if cand.Validate() != nil {
		return Parameters{}, false
	}
	return cand, true
}
