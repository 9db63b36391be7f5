package synthetic

import (
	"math"
	"math/rand"

	"github.com/peter-kozarec/shortrate/pkg/common"
	"github.com/peter-kozarec/shortrate/pkg/models/vasicek"
)

// RateGenerator produces a synthetic noisy observation sequence from known
// true parameters. Validation support only, production estimation never
// sees it.
type RateGenerator struct {
	rng    *rand.Rand
	params vasicek.Parameters

	// Pre-calculated step noise scales
	processStd     float64
	observationStd float64

	last float64
}

func NewRateGenerator(params vasicek.Parameters, rng *rand.Rand) *RateGenerator {
	g := &RateGenerator{
		rng:            rng,
		params:         params,
		processStd:     math.Sqrt(params.ProcessVar),
		observationStd: math.Sqrt(params.ObservationVar),
	}
	if params.IsStationary() {
		g.last = params.Alpha / (1 - params.Beta)
	}
	return g
}

// NewVasicekRateGenerator builds a generator from continuous-time Vasicek
// parameters sampled at interval dt (in years).
func NewVasicekRateGenerator(kappa, theta, sigma, observationVar, dt float64, rng *rand.Rand) *RateGenerator {
	params := vasicek.FromVasicek(common.VasicekParameters{
		Kappa: kappa,
		Theta: theta,
		Sigma: sigma,
	}, dt, observationVar)
	return NewRateGenerator(params, rng)
}

// SetInitialRate overrides the starting latent state (default: the
// stationary mean, or zero when the process is not stationary).
func (g *RateGenerator) SetInitialRate(r float64) {
	g.last = r
}

// Next advances the latent state one step and returns it together with its
// noisy observation.
func (g *RateGenerator) Next() (state, observation float64) {
	g.last = g.params.Alpha + g.params.Beta*g.last + g.processStd*g.rng.NormFloat64()
	return g.last, g.last + g.observationStd*g.rng.NormFloat64()
}

// Generate produces n steps of the latent path and its observations.
func (g *RateGenerator) Generate(n int) (states []float64, observations common.Observations) {
	states = make([]float64, n)
	observations = make(common.Observations, n)
	for i := 0; i < n; i++ {
		states[i], observations[i] = g.Next()
	}
	return states, observations
}
