package common

import "math"

// Observations is an ordered sequence of noisy short-rate measurements,
// equally spaced in time. It is owned by the caller and treated as
// read-only by every component that receives it.
type Observations []float64

// Finite reports whether every observation is a finite real number.
func (o Observations) Finite() bool {
	for _, y := range o {
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return false
		}
	}
	return true
}
