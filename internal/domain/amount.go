package domain

import "github.com/shopspring/decimal"

const (
	// MaxAmountIntegerDigits caps amounts below 10^15.
	MaxAmountIntegerDigits = 15
	// MaxAmountScale caps the fractional digits accepted before rounding.
	MaxAmountScale = 30
)

// NormalizeAmount rounds d to cents. It reports false, without rounding,
// when d has more integer digits or a finer scale than an amount may carry;
// rescaling such values costs time proportional to their exponent.
func NormalizeAmount(d decimal.Decimal) (decimal.Decimal, bool) {
	exp := d.Exponent()
	if exp < -MaxAmountScale || exp > MaxAmountIntegerDigits {
		return decimal.Zero, false
	}
	if !d.IsZero() && d.NumDigits()+int(exp) > MaxAmountIntegerDigits {
		return decimal.Zero, false
	}
	return d.Round(2), true
}
