package pricing

import (
	"testing"
)

func TestQuote_Rescales(t *testing.T) {
	tests := []struct {
		name   string
		price  float64
		digits int
		want   string
	}{
		{name: "three decimals", price: 0.987652, digits: 3, want: "98.765"},
		{name: "two decimals", price: 0.95126, digits: 2, want: "95.13"},
		{name: "par", price: 1.0, digits: 2, want: "100.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quote(tt.price, tt.digits).String(); got != tt.want {
				t.Errorf("Quote(%v, %d) = %s, want %s", tt.price, tt.digits, got, tt.want)
			}
		})
	}
}

func TestQuoteInterval_Brackets(t *testing.T) {
	low, high := QuoteInterval(0.95, 0.001, 2)
	if got := low.String(); got != "94.90" {
		t.Errorf("low = %s, want 94.90", got)
	}
	if got := high.String(); got != "95.10" {
		t.Errorf("high = %s, want 95.10", got)
	}
}
