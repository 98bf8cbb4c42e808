package models

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrNegativePrice = errors.New("price must not be negative")
	ErrPriceTooLarge = errors.New("price must not exceed 99999999.99")
)

// MaxPriceCents bounds catalog prices so line totals stay within int64.
const MaxPriceCents int64 = 99_999_999_99

var (
	hundred  = decimal.NewFromInt(100)
	maxCents = decimal.NewFromInt(MaxPriceCents)
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// DecimalToCents converts a major-unit amount to minor units, rounding half
// away from zero at the third decimal place.
func DecimalToCents(d decimal.Decimal) (int64, error) {
	if d.IsNegative() {
		return 0, ErrNegativePrice
	}
	cents := d.Mul(hundred).Round(0)
	if cents.GreaterThan(maxCents) {
		return 0, ErrPriceTooLarge
	}
	return cents.IntPart(), nil
}

func CentsToDecimal(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}
