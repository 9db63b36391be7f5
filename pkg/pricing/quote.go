package pricing

import (
	"github.com/peter-kozarec/shortrate/pkg/utility/fixed"
)

// Quote rescales a model price (per 100 face) to market decimals.
func Quote(price float64, digits int) fixed.Point {
	return fixed.FromFloat64(price * 100).Rescale(digits)
}

// QuoteInterval quotes a band of halfWidth around the price, both in
// per-unit-face terms. Pairs with the Monte-Carlo pricer, whose standard
// error gives the natural half width.
func QuoteInterval(price, halfWidth float64, digits int) (low, high fixed.Point) {
	mid := fixed.FromFloat64(price * 100)
	band := fixed.FromFloat64(halfWidth * 100)
	return mid.Sub(band).Rescale(digits), mid.Add(band).Rescale(digits)
}
