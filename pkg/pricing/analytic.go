package pricing

import (
	"math"

	"github.com/peter-kozarec/shortrate/pkg/common"
)

// AnalyticPrice is the closed-form Vasicek zero-coupon bond price for a
// maturity tau years away, given the current short rate. Face value 1.
func AnalyticPrice(v common.VasicekParameters, rate, tau float64) float64 {
	b := (1 - math.Exp(-v.Kappa*tau)) / v.Kappa
	a := math.Exp((v.Theta-v.Sigma*v.Sigma/(2*v.Kappa*v.Kappa))*(b-tau) -
		v.Sigma*v.Sigma*b*b/(4*v.Kappa))
	return a * math.Exp(-b*rate)
}
