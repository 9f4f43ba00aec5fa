package domain

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"math/big"
)

const (
	// DigestLength is the number of hex characters in a HashDigest
	DigestLength = 2 * md5.Size
	halfLength   = DigestLength / 2
)

// GeohashResult is the outcome of a single geohash computation
// Adheres to the xkcd #426 algorithm: md5("{date}-{opening}") split into two hex fractions
type GeohashResult struct {
	Date      Date
	Opening   MarketValue
	Hash      string  // 32 lower-case hex characters
	LatOffset float64 // [0, 1), from Hash[:16]
	LonOffset float64 // [0, 1), from Hash[16:]

	latExact *big.Rat
	lonExact *big.Rat
}

// HashInput builds the exact string that gets hashed for a date and opening value
func HashInput(date Date, opening MarketValue) string {
	return date.String() + "-" + opening.String()
}

// Derive computes the geohash for a date and the market opening value of that date
// It is a pure function: the same inputs always yield the same result
func Derive(date Date, opening MarketValue) (GeohashResult, error) {
	if date.IsZero() {
		return GeohashResult{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if opening.IsZero() {
		return GeohashResult{}, fmt.Errorf("%w: opening value is required", ErrInvalidInput)
	}

	sum := md5.Sum([]byte(HashInput(date, opening)))
	digest := hex.EncodeToString(sum[:])

	return FromDigest(date, opening, digest)
}

// FromDigest decodes the two coordinate offsets of an already computed digest
func FromDigest(date Date, opening MarketValue, digest string) (GeohashResult, error) {
	if len(digest) != DigestLength {
		return GeohashResult{}, fmt.Errorf("%w: digest %q has %d characters, want %d",
			ErrHashComputation, digest, len(digest), DigestLength)
	}

	lat, err := HexFraction(digest[:halfLength])
	if err != nil {
		return GeohashResult{}, err
	}
	lon, err := HexFraction(digest[halfLength:])
	if err != nil {
		return GeohashResult{}, err
	}

	return GeohashResult{
		Date:      date,
		Opening:   opening,
		Hash:      digest,
		LatOffset: Offset(lat),
		LonOffset: Offset(lon),
		latExact:  lat,
		lonExact:  lon,
	}, nil
}

// ExactOffsets returns the offsets as exact fractions of 16^16
func (r GeohashResult) ExactOffsets() (lat, lon *big.Rat) {
	if r.latExact == nil || r.lonExact == nil {
		return nil, nil
	}
	return new(big.Rat).Set(r.latExact), new(big.Rat).Set(r.lonExact)
}

// Apply places the offsets inside a graticule, producing the meetup coordinates
func (r GeohashResult) Apply(g Graticule) Coordinates {
	return Coordinates{
		Lat: g.lat.extend(r.LatOffset),
		Lon: g.lon.extend(r.LonOffset),
	}
}
