// Package number bridges the ledger's wad-scaled integers and the decimal
// values used by the price feed, config files and API views.
package number

import (
	"errors"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

var errNegative = errors.New("number: negative value")

// Decimal parses s, returning zero on malformed input.
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// ToWad converts a non-negative decimal to a 1e18-scaled integer, truncating
// anything beyond 18 fractional digits.
func ToWad(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, errNegative
	}

	v, err := uint256.FromDecimal(d.Shift(18).Truncate(0).String())
	if err != nil {
		return nil, err
	}
	return v, nil
}

// FromWad renders a 1e18-scaled integer as a decimal.
func FromWad(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(v.Dec())
	return d.Shift(-18)
}

// FromInt renders a raw integer amount as a decimal.
func FromInt(v *uint256.Int) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	d, _ := decimal.NewFromString(v.Dec())
	return d
}

// ToInt converts a non-negative decimal to a raw integer amount, truncating
// any fraction.
func ToInt(d decimal.Decimal) (*uint256.Int, error) {
	if d.IsNegative() {
		return nil, errNegative
	}

	v, err := uint256.FromDecimal(d.Truncate(0).String())
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Ceil rounds d up at the given precision.
func Ceil(d decimal.Decimal, precision int32) decimal.Decimal {
	return d.Shift(precision).Ceil().Shift(-precision)
}
