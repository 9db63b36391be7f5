package vasicek

import "fmt"

// DegenerateInputError reports an observation sequence the least-squares
// initializer cannot regress on. Not recoverable.
type DegenerateInputError struct {
	Observations int
	Reason       string
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate input (%d observations): %s", e.Observations, e.Reason)
}

// NumericalInstabilityError reports a non-positive variance encountered
// mid-recursion. The refinement iteration that produced it is aborted
// whole, no partial history is returned.
type NumericalInstabilityError struct {
	Step     int
	Quantity string
	Value    float64
	Params   Parameters
}

func (e *NumericalInstabilityError) Error() string {
	return fmt.Sprintf("numerical instability at step %d: %s = %g under %v",
		e.Step, e.Quantity, e.Value, e.Params)
}

// ConvergenceError reports an exhausted iteration budget or a broken
// ascent. Recoverable: the best-effort result is returned alongside it and
// the caller decides whether to accept.
type ConvergenceError struct {
	Iterations    int
	LogLikelihood float64
	Params        Parameters
	Reason        string
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("no convergence after %d iterations (log-likelihood %g under %v): %s",
		e.Iterations, e.LogLikelihood, e.Params, e.Reason)
}
