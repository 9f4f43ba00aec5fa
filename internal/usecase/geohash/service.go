package geohash

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/logger"
	"github.com/simaogato/geohash-backend/internal/metrics"
)

// GeohashService composes the market value lookup with the geohash derivation
type GeohashService struct {
	Resolver domain.MarketValueResolver
	metrics  *metrics.Metrics
}

// NewGeohashService creates a new GeohashService instance
func NewGeohashService(resolver domain.MarketValueResolver) *GeohashService {
	return &GeohashService{
		Resolver: resolver,
	}
}

// WithMetrics counts every successfully derived geohash on m
func (s *GeohashService) WithMetrics(m *metrics.Metrics) *GeohashService {
	s.metrics = m
	return s
}

// Geohash computes the geohash for a raw YYYY-MM-DD date string
// Logic:
//   - Parse the date; a malformed date fails with ErrInvalidInput before the resolver is called
//   - Resolve the opening value (the only blocking call)
//   - Derive hash and offsets from date + opening
func (s *GeohashService) Geohash(ctx context.Context, rawDate string) (*domain.GeohashResult, error) {
	date, err := domain.ParseDate(rawDate)
	if err != nil {
		return nil, err
	}

	return s.GeohashForDate(ctx, date)
}

// GeohashForDate is Geohash for an already validated date
func (s *GeohashService) GeohashForDate(ctx context.Context, date domain.Date) (*domain.GeohashResult, error) {
	opening, err := s.Resolver.Resolve(ctx, date)
	if err != nil {
		slog.WarnContext(ctx, "market value lookup failed",
			append(logger.LogWithRequestID(ctx), slog.String("date", date.String()), slog.Any("error", err))...)
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrUpstream) {
			// Unclassified resolver failures (timeouts, cancellations) are upstream failures
			err = fmt.Errorf("%w: %w", domain.ErrUpstream, err)
		}
		return nil, fmt.Errorf("resolve opening for %s: %w", date, err)
	}
	if opening.IsZero() {
		// The resolver broke its contract; the caller's input was fine
		return nil, fmt.Errorf("resolve opening for %s: %w: resolver returned no value", date, domain.ErrUpstream)
	}

	result, err := domain.Derive(date, opening)
	if err != nil {
		return nil, fmt.Errorf("derive geohash for %s: %w", date, err)
	}
	if s.metrics != nil {
		s.metrics.GeohashesTotal.Inc()
	}

	return &result, nil
}
