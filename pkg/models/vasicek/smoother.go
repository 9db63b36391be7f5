package vasicek

// RunSmoother executes the backward Rauch-Tung-Striebel pass over a filter
// history, refining each estimate with information from the whole sequence.
// The terminal step carries no future information, so it equals the last
// filtered estimate.
func RunSmoother(params Parameters, filtered FilterHistory) (SmoothedHistory, error) {
	n := len(filtered)
	if n == 0 {
		return nil, &DegenerateInputError{Observations: 0, Reason: "empty filter history"}
	}

	smoothed := make(SmoothedHistory, n)
	smoothed[n-1] = SmoothedStep{
		Mean: filtered[n-1].Mean,
		Var:  filtered[n-1].Var,
	}

	for t := n - 2; t >= 0; t-- {
		next := filtered[t+1]
		if !(next.PredictedVar > 0) {
			return nil, &NumericalInstabilityError{
				Step:     t + 1,
				Quantity: "predicted variance",
				Value:    next.PredictedVar,
				Params:   params,
			}
		}
		gain := params.Beta * filtered[t].Var / next.PredictedVar
		smoothed[t] = SmoothedStep{
			Mean: filtered[t].Mean + gain*(smoothed[t+1].Mean-next.PredictedMean),
			Var:  filtered[t].Var + gain*gain*(smoothed[t+1].Var-next.PredictedVar),
			Gain: gain,
		}
	}

	return smoothed, nil
}
