package pricing

import (
	"fmt"
	"math"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// FDMPricer solves the Vasicek bond PDE
//
//	V_tau = kappa*(theta - r)*V_r + 0.5*sigma^2*V_rr - r*V,  V(tau=0) = 1
//
// on a rate grid with an implicit (backward Euler) scheme, one tridiagonal
// solve per time step.
type FDMPricer struct {
	nodes int
	steps int
}

func NewFDMPricer(nodes, steps int) *FDMPricer {
	if nodes < 3 {
		nodes = 3
	}
	if steps < 1 {
		steps = 1
	}
	return &FDMPricer{nodes: nodes, steps: steps}
}

func (p *FDMPricer) Price(v common.VasicekParameters, rate, tau float64) (float64, error) {
	if v.Kappa <= 0 {
		return 0, fmt.Errorf("mean-reversion speed must be positive, got %g", v.Kappa)
	}
	if tau <= 0 {
		return 0, fmt.Errorf("maturity must be positive, got %g", tau)
	}

	// Grid wide enough to cover the stationary distribution, the
	// diffusion over the horizon, and the current rate.
	spread := 4 * v.Sigma / math.Sqrt(2*v.Kappa)
	if d := 4 * v.Sigma * math.Sqrt(tau); d > spread {
		spread = d
	}
	if d := math.Abs(rate-v.Theta) + spread/2; d > spread {
		spread = d
	}
	rMin := v.Theta - spread
	rMax := v.Theta + spread

	n := p.nodes
	dr := (rMax - rMin) / float64(n-1)
	dtau := tau / float64(p.steps)
	s := 0.5 * v.Sigma * v.Sigma / (dr * dr)

	// Tridiagonal coefficients of (I - dtau*L), constant across steps.
	lower := make([]float64, n)
	diag := make([]float64, n)
	upper := make([]float64, n)
	for j := 1; j < n-1; j++ {
		r := rMin + float64(j)*dr
		mu := v.Kappa * (v.Theta - r)
		lower[j] = dtau * (mu/(2*dr) - s)
		diag[j] = 1 + dtau*(2*s+r)
		upper[j] = -dtau * (mu/(2*dr) + s)
	}
	// One-sided drift rows at the edges. The drift points inward on
	// both, which keeps the system diagonally dominant.
	muLo := v.Kappa * (v.Theta - rMin)
	diag[0] = 1 + dtau*(muLo/dr+rMin)
	upper[0] = -dtau * muLo / dr
	muHi := v.Kappa * (v.Theta - rMax)
	lower[n-1] = dtau * muHi / dr
	diag[n-1] = 1 - dtau*muHi/dr + dtau*rMax

	values := make([]float64, n)
	for j := range values {
		values[j] = 1.0
	}
	cp := make([]float64, n)
	dp := make([]float64, n)
	for m := 0; m < p.steps; m++ {
		solveTridiagonal(lower, diag, upper, values, cp, dp)
	}

	// Linear interpolation at the requested rate.
	pos := (rate - rMin) / dr
	j := int(pos)
	if j < 0 {
		j = 0
	}
	if j > n-2 {
		j = n - 2
	}
	w := pos - float64(j)
	return values[j]*(1-w) + values[j+1]*w, nil
}

// solveTridiagonal solves the system in place with the Thomas algorithm;
// rhs holds the right-hand side on entry and the solution on return.
func solveTridiagonal(lower, diag, upper, rhs, cp, dp []float64) {
	n := len(rhs)
	cp[0] = upper[0] / diag[0]
	dp[0] = rhs[0] / diag[0]
	for j := 1; j < n; j++ {
		den := diag[j] - lower[j]*cp[j-1]
		cp[j] = upper[j] / den
		dp[j] = (rhs[j] - lower[j]*dp[j-1]) / den
	}
	rhs[n-1] = dp[n-1]
	for j := n - 2; j >= 0; j-- {
		rhs[j] = dp[j] - cp[j]*rhs[j+1]
	}
}
