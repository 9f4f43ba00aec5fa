// Package cache provides a caching decorator for market value resolvers.
// Only successful lookups are stored; entries are never invalidated.
package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/logger"
	"github.com/simaogato/geohash-backend/internal/metrics"
)

// Store is a key/value store for opening values in their exact text form
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key string, value string) error
}

// DefaultLookupTimeout bounds a shared lookup, which outlives the callers that started it
const DefaultLookupTimeout = 30 * time.Second

// Resolver serves opening values from a Store and falls back to the next resolver on a miss.
// Concurrent misses for the same date share one call to the next resolver. The shared call
// runs detached from any single caller, so one caller giving up does not fail the others.
type Resolver struct {
	backend string
	store   Store
	next    domain.MarketValueResolver
	metrics *metrics.Metrics
	group   singleflight.Group

	// LookupTimeout bounds the shared call to the next resolver
	LookupTimeout time.Duration
}

// NewResolver wraps next with store. backend names the store in logs and metrics.
// m may be nil.
func NewResolver(backend string, store Store, next domain.MarketValueResolver, m *metrics.Metrics) *Resolver {
	return &Resolver{
		backend: backend,
		store:   store,
		next:    next,
		metrics: m,

		LookupTimeout: DefaultLookupTimeout,
	}
}

// Key returns the store key of a date
func Key(date domain.Date) string {
	return "djia:" + date.String()
}

// Resolve implements domain.MarketValueResolver
func (r *Resolver) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	key := Key(date)

	cached, found, err := r.store.Get(ctx, key)
	switch {
	case err != nil:
		r.count("error")
		slog.WarnContext(ctx, "cache read failed, falling back to source",
			append(logger.LogWithRequestID(ctx), slog.String("backend", r.backend), slog.String("key", key), slog.Any("error", err))...)
	case found:
		value, err := domain.ParseMarketValue(cached)
		if err == nil {
			r.count("hit")
			return value, nil
		}
		r.count("error")
		slog.WarnContext(ctx, "discarding corrupt cache entry",
			append(logger.LogWithRequestID(ctx), slog.String("backend", r.backend), slog.String("key", key), slog.String("value", cached))...)
	default:
		r.count("miss")
	}

	ch := r.group.DoChan(key, func() (any, error) {
		// Keeps the request ID for logging but none of the caller's deadline
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.LookupTimeout)
		defer cancel()

		value, err := r.next.Resolve(flightCtx, date)
		if err != nil {
			return domain.MarketValue{}, err
		}

		if err := r.store.Set(flightCtx, key, value.String()); err != nil {
			slog.WarnContext(ctx, "cache write failed",
				append(logger.LogWithRequestID(ctx), slog.String("backend", r.backend), slog.String("key", key), slog.Any("error", err))...)
		}
		return value, nil
	})

	select {
	case <-ctx.Done():
		return domain.MarketValue{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.MarketValue{}, res.Err
		}
		return res.Val.(domain.MarketValue), nil
	}
}

func (r *Resolver) count(result string) {
	if r.metrics != nil {
		r.metrics.CacheLookups.WithLabelValues(r.backend, result).Inc()
	}
}
