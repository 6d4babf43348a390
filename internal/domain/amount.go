package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest magnitude accepted for any income or target amount
var MaxAmount = decimal.NewFromInt(1_000_000_000_000)

// Exponent window for parsed amounts; anything outside it is rejected before
// comparison so that values like 1e3000000 never get expanded.
const (
	minAmountExponent = -20
	maxAmountExponent = 12
)

// CheckAmount rejects amounts whose magnitude exceeds MaxAmount or whose
// precision is finer than 1e-20.
func CheckAmount(name string, d decimal.Decimal) error {
	exp := d.Exponent()
	if exp > maxAmountExponent {
		return fmt.Errorf("%w: %s is out of range (max %s)", ErrInvalidInput, name, MaxAmount)
	}
	if exp < minAmountExponent {
		return fmt.Errorf("%w: %s has too many decimal places", ErrInvalidInput, name)
	}
	if d.Abs().GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s is out of range (max %s)", ErrInvalidInput, name, MaxAmount)
	}
	return nil
}

// ParseAmount parses raw as a decimal and applies CheckAmount
func ParseAmount(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q is not a number", ErrInvalidInput, name, raw)
	}
	if err := CheckAmount(name, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}
