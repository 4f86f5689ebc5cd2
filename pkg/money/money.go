// Package money holds the single rounding rule applied to every monetary field:
// two decimal places, half away from zero (half-up for the non-negative amounts
// a point of sale deals in).
package money

import (
	"github.com/shopspring/decimal"
)

// Places is the number of fractional digits kept for money
const Places = 2

// Round rounds an amount to Places
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(Places)
}

// FromFloat converts and rounds a float amount
func FromFloat(f float64) decimal.Decimal {
	return Round(decimal.NewFromFloat(f))
}

// LineAmount computes quantity × unit price, rounded
func LineAmount(quantity int, unitPrice decimal.Decimal) decimal.Decimal {
	return Round(Round(unitPrice).Mul(decimal.NewFromInt(int64(quantity))))
}

// Sum adds already rounded amounts and rounds the result
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return Round(total)
}

// IsPositive reports whether amount is strictly greater than zero after rounding
func IsPositive(amount decimal.Decimal) bool {
	return Round(amount).GreaterThan(decimal.Zero)
}
