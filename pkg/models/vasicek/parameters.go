package vasicek

import (
	"fmt"
	"math"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// Parameters of the discretized short-rate state space
//
//	x_t = Alpha + Beta*x_{t-1} + eta_t,  eta_t ~ N(0, ProcessVar)
//	y_t = x_t + eps_t,                   eps_t ~ N(0, ObservationVar)
//
// Beta is deliberately not clamped. Values at or above one indicate a
// non-stationary fit and are reported, not repaired.
type Parameters struct {
	Alpha          float64
	Beta           float64
	ProcessVar     float64
	ObservationVar float64
}

func (p Parameters) String() string {
	return fmt.Sprintf("alpha=%g beta=%g process_var=%g observation_var=%g",
		p.Alpha, p.Beta, p.ProcessVar, p.ObservationVar)
}

func (p Parameters) Validate() error {
	if math.IsNaN(p.Alpha) || math.IsNaN(p.Beta) {
		return fmt.Errorf("parameters contain NaN: %v", p)
	}
	if !(p.ProcessVar > 0) {
		return fmt.Errorf("process variance must be positive, got %g", p.ProcessVar)
	}
	if !(p.ObservationVar > 0) {
		return fmt.Errorf("observation variance must be positive, got %g", p.ObservationVar)
	}
	return nil
}

func (p Parameters) IsStationary() bool {
	return p.Beta > 0 && p.Beta < 1
}

// StationaryVariance is the unconditional variance of the latent state.
// ok is false when the process is not stationary.
func (p Parameters) StationaryVariance() (v float64, ok bool) {
	if math.Abs(p.Beta) >= 1 {
		return 0, false
	}
	return p.ProcessVar / (1 - p.Beta*p.Beta), true
}

// Vasicek translates the discrete parameters to the continuous-time
// Ornstein-Uhlenbeck form given the sampling interval dt (in years).
func (p Parameters) Vasicek(dt float64) common.VasicekParameters {
	kappa := -math.Log(p.Beta) / dt
	return common.VasicekParameters{
		Kappa: kappa,
		Theta: p.Alpha / (1 - p.Beta),
		Sigma: math.Sqrt(p.ProcessVar * 2 * kappa / (1 - p.Beta*p.Beta)),
	}
}

// FromVasicek is the inverse translation under the same discretization.
func FromVasicek(v common.VasicekParameters, dt, observationVar float64) Parameters {
	beta := math.Exp(-v.Kappa * dt)
	return Parameters{
		Alpha:          v.Theta * (1 - beta),
		Beta:           beta,
		ProcessVar:     v.Sigma * v.Sigma / (2 * v.Kappa) * (1 - beta*beta),
		ObservationVar: observationVar,
	}
}
