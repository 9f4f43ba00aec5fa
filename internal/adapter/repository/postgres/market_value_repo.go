package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/simaogato/geohash-backend/internal/domain"
)

const schema = `
	CREATE TABLE IF NOT EXISTS djia_openings (
		date    DATE PRIMARY KEY,
		opening TEXT NOT NULL
	)
`

// marketValueRepository implements domain.MarketValueRepository
type marketValueRepository struct {
	db *DB
}

// NewMarketValueRepository creates a new market value repository
func NewMarketValueRepository(db *DB) domain.MarketValueRepository {
	return &marketValueRepository{db: db}
}

// EnsureSchema creates the djia_openings table if it does not exist yet
func EnsureSchema(ctx context.Context, db *DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create djia_openings table: %w", err)
	}
	return nil
}

// Resolve retrieves the opening value stored for a date
func (r *marketValueRepository) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	query := `
		SELECT opening
		FROM djia_openings
		WHERE date = $1
	`

	var openingStr string
	err := r.db.QueryRowContext(ctx, query, date.String()).Scan(&openingStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.MarketValue{}, fmt.Errorf("%w: no opening stored for %s", domain.ErrNotFound, date)
		}
		return domain.MarketValue{}, fmt.Errorf("%w: failed to get opening for %s: %v", domain.ErrUpstream, date, err)
	}

	// Stored as text so the hash input is exactly what the source published
	opening, err := domain.ParseMarketValue(openingStr)
	if err != nil {
		return domain.MarketValue{}, fmt.Errorf("stored opening for %s: %w", date, err)
	}

	return opening, nil
}

// Upsert stores the opening value for a date
func (r *marketValueRepository) Upsert(ctx context.Context, date domain.Date, value domain.MarketValue) error {
	query := `
		INSERT INTO djia_openings (date, opening)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET opening = EXCLUDED.opening
	`

	if value.IsZero() {
		return fmt.Errorf("%w: opening for %s is required", domain.ErrInvalidInput, date)
	}

	_, err := r.db.ExecContext(ctx, query, date.String(), value.String())
	if err != nil {
		return fmt.Errorf("failed to upsert opening for %s: %w", date, err)
	}

	return nil
}
