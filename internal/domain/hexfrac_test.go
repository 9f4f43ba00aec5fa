package domain

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHexFraction(t *testing.T) {
	tests := []struct {
		name    string
		hex     string
		wantNum string
		wantDen string
	}{
		{name: "All Zero", hex: "0000000000000000", wantNum: "0", wantDen: "1"},
		{name: "Half", hex: "8", wantNum: "1", wantDen: "2"},
		{name: "Single Digit", hex: "f", wantNum: "15", wantDen: "16"},
		{name: "Two Digits", hex: "01", wantNum: "1", wantDen: "256"},
		{name: "Upper Case", hex: "C0", wantNum: "3", wantDen: "4"},
		{name: "Sixteen Digits", hex: "7716a4422e7e50c1", wantNum: "8581226744155885761", wantDen: "18446744073709551616"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := HexFraction(tt.hex)
			require.NoError(t, err)
			assert.Equal(t, tt.wantNum, r.Num().String())
			assert.Equal(t, tt.wantDen, r.Denom().String())
		})
	}
}

func TestHexFraction_Invalid(t *testing.T) {
	for _, hex := range []string{"", "g", "-1", "+1", "0x10", "12 34"} {
		t.Run(hex, func(t *testing.T) {
			_, err := HexFraction(hex)
			assert.ErrorIs(t, err, ErrHashComputation)
		})
	}
}

func TestDecodeHexFraction(t *testing.T) {
	zero, err := DecodeHexFraction("0000000000000000")
	require.NoError(t, err)
	assert.Equal(t, 0.0, zero)

	v, err := DecodeHexFraction("7716a4422e7e50c1")
	require.NoError(t, err)
	assert.Equal(t, 0.46518923393022615, v)

	// Longer than a float64 mantissa still converges on the same value
	long, err := DecodeHexFraction("7716a4422e7e50c10000000000000000")
	require.NoError(t, err)
	assert.Equal(t, v, long)
}

func TestOffset_StaysBelowOne(t *testing.T) {
	v, err := DecodeHexFraction("ffffffffffffffff")
	require.NoError(t, err)
	assert.Less(t, v, 1.0)
	assert.Equal(t, math.Nextafter(1, 0), v)

	exact, err := HexFraction("ffffffffffffffff")
	require.NoError(t, err)
	assert.Equal(t, -1, exact.Cmp(big.NewRat(1, 1)))
}
