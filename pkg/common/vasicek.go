package common

// VasicekParameters are the continuous-time parameters of the mean
// reverting short-rate model dr = kappa*(theta - r)*dt + sigma*dW.
type VasicekParameters struct {
	Kappa float64 `json:"kappa"`
	Theta float64 `json:"theta"`
	Sigma float64 `json:"sigma"`
}
