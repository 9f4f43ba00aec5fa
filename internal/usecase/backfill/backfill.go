package backfill

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/markethours"
)

// Report summarizes a backfill run
type Report struct {
	Stored  int // values fetched from the source and written
	Present int // values already in the repository
	Skipped int // weekends and dates the source has no value for
}

// Backfiller copies opening values from a source into a repository
type Backfiller struct {
	source domain.MarketValueResolver
	repo   domain.MarketValueRepository
}

// NewBackfiller creates a new Backfiller instance
func NewBackfiller(source domain.MarketValueResolver, repo domain.MarketValueRepository) *Backfiller {
	return &Backfiller{
		source: source,
		repo:   repo,
	}
}

// Run ensures every trading day in [from, to] has an opening value in the repository
// Logic:
//   - Weekends are skipped without touching either side
//   - A date already stored is left alone
//   - Otherwise the source is asked; "no data" (holidays) is skipped, any other failure aborts the run
func (b *Backfiller) Run(ctx context.Context, from, to domain.Date) (*Report, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("%w: range end %s is before start %s", domain.ErrInvalidInput, to, from)
	}

	report := &Report{}
	for date := from; !to.Before(date); date = date.AddDays(1) {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if !markethours.IsWeekday(date) {
			report.Skipped++
			continue
		}

		// Try to get the value from the repository first
		_, err := b.repo.Resolve(ctx, date)
		if err == nil {
			report.Present++
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return report, fmt.Errorf("check stored opening for %s: %w", date, err)
		}

		// Value doesn't exist, fetch and store it
		value, err := b.source.Resolve(ctx, date)
		if errors.Is(err, domain.ErrNotFound) {
			slog.InfoContext(ctx, "no opening value, skipping", slog.String("date", date.String()))
			report.Skipped++
			continue
		}
		if err != nil {
			return report, fmt.Errorf("fetch opening for %s: %w", date, err)
		}

		if err := b.repo.Upsert(ctx, date, value); err != nil {
			return report, err
		}
		report.Stored++
	}

	return report, nil
}
