package pricing

import (
	"math"
	"math/rand"
	"sync"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// MonteCarloPricer prices a zero-coupon bond by simulating short-rate
// paths and averaging the pathwise discount factors. Paths are split
// across workers; each worker owns its rng, nothing mutable is shared.
type MonteCarloPricer struct {
	paths   int
	steps   int
	workers int
	seed    int64
}

func NewMonteCarloPricer(paths, steps, workers int, seed int64) *MonteCarloPricer {
	if paths < 1 {
		paths = 1
	}
	if steps < 1 {
		steps = 1
	}
	if workers < 1 {
		workers = 1
	}
	return &MonteCarloPricer{paths: paths, steps: steps, workers: workers, seed: seed}
}

// Price returns the simulated bond price and its standard error.
func (p *MonteCarloPricer) Price(v common.VasicekParameters, rate, tau float64) (price, stderr float64) {
	dt := tau / float64(p.steps)

	// Exact OU transition over one step
	decay := math.Exp(-v.Kappa * dt)
	noiseStd := v.Sigma * math.Sqrt((1-decay*decay)/(2*v.Kappa))

	type partial struct {
		sum   float64
		sumSq float64
	}
	partials := make([]partial, p.workers)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		paths := p.paths / p.workers
		if w < p.paths%p.workers {
			paths++
		}
		wg.Add(1)
		go func(w, paths int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(p.seed + int64(w)))
			var sum, sumSq float64
			for i := 0; i < paths; i++ {
				r := rate
				integral := 0.0
				for s := 0; s < p.steps; s++ {
					next := v.Theta + (r-v.Theta)*decay + noiseStd*rng.NormFloat64()
					integral += 0.5 * (r + next) * dt
					r = next
				}
				d := math.Exp(-integral)
				sum += d
				sumSq += d * d
			}
			partials[w] = partial{sum, sumSq}
		}(w, paths)
	}
	wg.Wait()

	var sum, sumSq float64
	for _, pt := range partials {
		sum += pt.sum
		sumSq += pt.sumSq
	}
	n := float64(p.paths)
	price = sum / n
	variance := (sumSq - sum*sum/n) / (n - 1)
	if variance < 0 {
		variance = 0
	}
	stderr = math.Sqrt(variance / n)
	return price, stderr
}
