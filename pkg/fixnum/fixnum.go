// Package fixnum implements the deterministic fixed point arithmetic the
// ledger runs on. Values are unsigned 256-bit integers; fractional quantities
// (indices, rates, prices, health factors) are scaled so that 1.0 == 1e18.
// Overflow and division by zero are returned as errors, never truncated.
package fixnum

import (
	"errors"

	"github.com/holiman/uint256"
)

var (
	// ErrOverflow the result does not fit in 256 bits
	ErrOverflow = errors.New("fixnum: overflow")
	// ErrUnderflow the subtraction went below zero
	ErrUnderflow = errors.New("fixnum: underflow")
	// ErrDivisionByZero the divisor is zero
	ErrDivisionByZero = errors.New("fixnum: division by zero")
)

var (
	wad = uint256.MustFromDecimal("1000000000000000000")
	one = uint256.NewInt(1)
)

// Wad returns 1.0 at the canonical 1e18 scale.
func Wad() *uint256.Int {
	return wad.Clone()
}

// Zero returns a fresh zero value.
func Zero() *uint256.Int {
	return uint256.NewInt(0)
}

// New builds a value from a plain uint64.
func New(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}

// Max returns the largest representable value, used as the infinite-solvency
// sentinel.
func Max() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Clone copies v, mapping nil to zero so models loaded from storage are safe
// to compute with.
func Clone(v *uint256.Int) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return v.Clone()
}

// Add returns a+b or ErrOverflow.
func Add(a, b *uint256.Int) (*uint256.Int, error) {
	sum, overflow := new(uint256.Int).AddOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return sum, nil
}

// Sub returns a-b or ErrUnderflow.
func Sub(a, b *uint256.Int) (*uint256.Int, error) {
	diff, underflow := new(uint256.Int).SubOverflow(a, b)
	if underflow {
		return nil, ErrUnderflow
	}
	return diff, nil
}

// Mul returns a*b or ErrOverflow.
func Mul(a, b *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, ErrOverflow
	}
	return product, nil
}

// MulDivDown returns a*b/d rounded toward zero. The intermediate product is
// evaluated at full width, so a*b may exceed 256 bits as long as the quotient
// fits.
func MulDivDown(a, b, d *uint256.Int) (*uint256.Int, error) {
	if d.IsZero() {
		return nil, ErrDivisionByZero
	}
	quo, overflow := new(uint256.Int).MulDivOverflow(a, b, d)
	if overflow {
		return nil, ErrOverflow
	}
	return quo, nil
}

// MulDivUp returns a*b/d rounded away from zero.
func MulDivUp(a, b, d *uint256.Int) (*uint256.Int, error) {
	quo, err := MulDivDown(a, b, d)
	if err != nil {
		return nil, err
	}
	rem := new(uint256.Int).MulMod(a, b, d)
	if rem.IsZero() {
		return quo, nil
	}
	return Add(quo, one)
}

// WadMulDown multiplies two values where b carries the 1e18 scale.
func WadMulDown(a, b *uint256.Int) (*uint256.Int, error) {
	return MulDivDown(a, b, wad)
}

// WadMulUp is WadMulDown rounding away from zero.
func WadMulUp(a, b *uint256.Int) (*uint256.Int, error) {
	return MulDivUp(a, b, wad)
}

// WadDivDown returns a/b scaled up to 1e18, rounded toward zero.
func WadDivDown(a, b *uint256.Int) (*uint256.Int, error) {
	return MulDivDown(a, wad, b)
}

// WadDivUp is WadDivDown rounding away from zero.
func WadDivUp(a, b *uint256.Int) (*uint256.Int, error) {
	return MulDivUp(a, wad, b)
}

// Min returns the smaller operand.
func Min(a, b *uint256.Int) *uint256.Int {
	if a.Cmp(b) <= 0 {
		return a.Clone()
	}
	return b.Clone()
}

// IsZero reports whether v is nil or zero.
func IsZero(v *uint256.Int) bool {
	return v == nil || v.IsZero()
}
