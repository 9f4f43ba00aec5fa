package domain

import (
	"fmt"
	"time"
)

// DateLayout is the only accepted textual form of a Date (ISO 8601 calendar date)
const DateLayout = "2006-01-02"

// Date represents a calendar date with no time or timezone component
// It is used both as the resolver lookup key and as part of the hash input
type Date struct {
	t   time.Time
	set bool
}

// ParseDate validates and parses a YYYY-MM-DD string
// Returns ErrInvalidInput for anything that is not a real calendar date
func ParseDate(s string) (Date, error) {
	if len(s) != len(DateLayout) {
		return Date{}, fmt.Errorf("%w: date %q must be formatted as YYYY-MM-DD", ErrInvalidInput, s)
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: date %q is not a calendar date", ErrInvalidInput, s)
	}

	return Date{t: t, set: true}, nil
}

// NewDate builds a Date from its components, normalizing out-of-range values the way time.Date does
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC), set: true}
}

// String returns the YYYY-MM-DD form used in hash inputs and cache keys
func (d Date) String() string {
	return d.t.Format(DateLayout)
}

// IsZero reports whether the date was never set
// 0001-01-01 is a valid date and is not zero
func (d Date) IsZero() bool {
	return !d.set
}

// Weekday returns the day of the week of the date
func (d Date) Weekday() time.Weekday {
	return d.t.Weekday()
}

// Time returns midnight of the date in UTC
func (d Date) Time() time.Time {
	return d.t
}

// Before reports whether d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// AddDays returns the date n calendar days later (or earlier when n is negative)
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n), set: d.set}
}
