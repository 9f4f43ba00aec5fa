// Package resolver holds cross-cutting market value resolver decorators.
package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/metrics"
)

// Instrumented records lookup latency and outcome of a resolver
type Instrumented struct {
	source  string
	next    domain.MarketValueResolver
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewInstrumented wraps next; source labels the observations.
func NewInstrumented(source string, next domain.MarketValueResolver, m *metrics.Metrics) *Instrumented {
	return &Instrumented{source: source, next: next, metrics: m, now: time.Now}
}

// Resolve implements domain.MarketValueResolver
func (i *Instrumented) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	start := i.now()
	value, err := i.next.Resolve(ctx, date)
	i.metrics.ResolveDur.WithLabelValues(i.source, Outcome(err)).Observe(i.now().Sub(start).Seconds())
	return value, err
}

// Outcome classifies a resolver error as ok, not_found or upstream_error
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "upstream_error"
	}
}
