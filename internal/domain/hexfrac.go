package domain

import (
	"fmt"
	"math"
	"math/big"
)

// HexFraction interprets hex as the digits after a hexadecimal point
// The result is exact: int(hex, 16) / 16^len(hex), always in [0, 1)
func HexFraction(hex string) (*big.Rat, error) {
	if hex == "" {
		return nil, fmt.Errorf("%w: empty hex fraction", ErrHashComputation)
	}

	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return nil, fmt.Errorf("%w: %q is not a hexadecimal string", ErrHashComputation, hex)
		}
	}

	num, ok := new(big.Int).SetString(hex, 16)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not a hexadecimal string", ErrHashComputation, hex)
	}

	// 16^n == 2^(4n)
	den := new(big.Int).Lsh(big.NewInt(1), uint(4*len(hex)))

	return new(big.Rat).SetFrac(num, den), nil
}

// Offset converts an exact fraction to the nearest float64 below 1
// Fractions within half an ulp of 1 (e.g. 0.ffffffffffffffff) would otherwise round to 1.0
func Offset(r *big.Rat) float64 {
	f, _ := r.Float64()
	if f >= 1 {
		return math.Nextafter(1, 0)
	}
	return f
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// DecodeHexFraction is HexFraction followed by Offset
func DecodeHexFraction(hex string) (float64, error) {
	r, err := HexFraction(hex)
	if err != nil {
		return 0, err
	}
	return Offset(r), nil
}
