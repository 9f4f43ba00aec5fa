package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// MarketValue is the opening value of the reference index on a given date
// It remembers the precision it was received with, so "10458.60" keeps its trailing zero
// when it is formatted back into a hash input
type MarketValue struct {
	value decimal.Decimal
}

// ParseMarketValue parses the textual value produced by a market data source
func ParseMarketValue(s string) (MarketValue, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MarketValue{}, fmt.Errorf("%w: empty market value", ErrUpstream)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return MarketValue{}, fmt.Errorf("%w: malformed market value %q", ErrUpstream, s)
	}

	if d.LessThanOrEqual(decimal.Zero) {
		return MarketValue{}, fmt.Errorf("%w: market value must be positive, got %q", ErrUpstream, s)
	}

	return MarketValue{value: d}, nil
}

// NewMarketValue wraps a decimal as a MarketValue, keeping its exponent
func NewMarketValue(d decimal.Decimal) MarketValue {
	return MarketValue{value: d}
}

// Decimal returns the underlying decimal value
func (m MarketValue) Decimal() decimal.Decimal {
	return m.value
}

// IsZero reports whether the value is absent
func (m MarketValue) IsZero() bool {
	return m.value.IsZero()
}

// String renders the exact decimal text, with the precision the value was received with
func (m MarketValue) String() string {
	if exp := m.value.Exponent(); exp < 0 {
		return m.value.StringFixed(-exp)
	}
	return m.value.String()
}

// MarketValueResolver looks up the opening value of the reference index for a date
// Implementations return ErrNotFound when the date has no value and ErrUpstream when the
// source is unreachable or returns malformed data. Repeated calls for a date return the same value.
type MarketValueResolver interface {
	Resolve(ctx context.Context, date Date) (MarketValue, error)
}

// ResolverFunc adapts a function to the MarketValueResolver interface
type ResolverFunc func(ctx context.Context, date Date) (MarketValue, error)

// Resolve calls f(ctx, date)
func (f ResolverFunc) Resolve(ctx context.Context, date Date) (MarketValue, error) {
	return f(ctx, date)
}
