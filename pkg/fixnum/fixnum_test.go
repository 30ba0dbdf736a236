package fixnum

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMulDivRounding(t *testing.T) {
	a := New(10)
	b := New(10)
	d := New(3)

	down, err := MulDivDown(a, b, d)
	require.NoError(t, err)
	assert.Equal(t, "33", down.Dec())

	up, err := MulDivUp(a, b, d)
	require.NoError(t, err)
	assert.Equal(t, "34", up.Dec())

	// exact division must not round up
	exact, err := MulDivUp(New(10), New(9), d)
	require.NoError(t, err)
	assert.Equal(t, "30", exact.Dec())
}

func TestMulDivWideIntermediate(t *testing.T) {
	// a*b overflows 256 bits but the quotient fits
	big := new(uint256.Int).SetAllOne()
	quo, err := MulDivDown(big, New(7), New(7))
	require.NoError(t, err)
	assert.True(t, quo.Eq(big))
}

func TestOverflow(t *testing.T) {
	big := new(uint256.Int).SetAllOne()

	_, err := Add(big, New(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = MulDivDown(big, New(2), New(1))
	assert.ErrorIs(t, err, ErrOverflow)

	_, err = Sub(New(1), New(2))
	assert.ErrorIs(t, err, ErrUnderflow)

	_, err = MulDivDown(New(1), New(1), Zero())
	assert.ErrorIs(t, err, ErrDivisionByZero)
}

func TestWadHelpers(t *testing.T) {
	half := uint256.MustFromDecimal("500000000000000000")

	v, err := WadMulDown(New(1000), half)
	require.NoError(t, err)
	assert.Equal(t, "500", v.Dec())

	v, err = WadDivDown(New(1), New(3))
	require.NoError(t, err)
	assert.Equal(t, "333333333333333333", v.Dec())

	v, err = WadDivUp(New(1), New(3))
	require.NoError(t, err)
	assert.Equal(t, "333333333333333334", v.Dec())
}

func TestCloneNil(t *testing.T) {
	assert.True(t, Clone(nil).IsZero())
	assert.True(t, IsZero(nil))
	assert.False(t, IsZero(Wad()))
}
