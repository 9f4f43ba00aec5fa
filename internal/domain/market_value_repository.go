package domain

import "context"

// MarketValueRepository defines the interface for stored opening values
// A repository is also a MarketValueResolver over the values it holds
type MarketValueRepository interface {
	MarketValueResolver

	// Upsert stores the opening value for a date, replacing any previous value
	Upsert(ctx context.Context, date Date, value MarketValue) error
}
