package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Coordinates is a point in decimal degrees
type Coordinates struct {
	Lat float64
	Lon float64
}

// Graticule is the 1x1 degree cell a geohash offset is applied to
// "-0" and "0" are distinct cells, so the sign is kept separately from the magnitude
type Graticule struct {
	lat axis
	lon axis
}

type axis struct {
	degrees  int // magnitude, never negative
	negative bool
}

func (a axis) extend(offset float64) float64 {
	v := float64(a.degrees) + offset
	if a.negative {
		return -v
	}
	return v
}

func (a axis) String() string {
	if a.negative {
		return "-" + strconv.Itoa(a.degrees)
	}
	return strconv.Itoa(a.degrees)
}

// ParseGraticule parses "LAT,LON" such as "37,-122" or "-0,-0"
func ParseGraticule(s string) (Graticule, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Graticule{}, fmt.Errorf("%w: graticule %q must be LAT,LON", ErrInvalidInput, s)
	}

	lat, err := parseAxis(parts[0], 89)
	if err != nil {
		return Graticule{}, fmt.Errorf("%w: latitude %q: %v", ErrInvalidInput, parts[0], err)
	}
	lon, err := parseAxis(parts[1], 179)
	if err != nil {
		return Graticule{}, fmt.Errorf("%w: longitude %q: %v", ErrInvalidInput, parts[1], err)
	}

	return Graticule{lat: lat, lon: lon}, nil
}

func parseAxis(s string, limit int) (axis, error) {
	s = strings.TrimSpace(s)
	var a axis
	if strings.HasPrefix(s, "-") {
		a.negative = true
		s = s[1:]
	}
	if s == "" || strings.ContainsAny(s, "+-") {
		return axis{}, errors.New("not an integer")
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return axis{}, errors.New("not an integer")
	}
	if n > limit {
		return axis{}, fmt.Errorf("out of range, magnitude must be at most %d", limit)
	}
	a.degrees = n
	return a, nil
}

// String returns the graticule in the same LAT,LON form ParseGraticule accepts
func (g Graticule) String() string {
	return g.lat.String() + "," + g.lon.String()
}
