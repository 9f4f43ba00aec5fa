package breaker

import (
	"context"
	"errors"
	"fmt"

	"github.com/simaogato/geohash-backend/internal/domain"
)

// Resolver guards a market value source with a circuit breaker.
// Only upstream failures trip the breaker; "no data for date" answers do not,
// and neither do lookups the caller abandoned (its context was canceled or timed out).
type Resolver struct {
	next    domain.MarketValueResolver
	breaker *CircuitBreaker
}

// abandonedError carries the error of a lookup whose caller had already given up
type abandonedError struct {
	err error
}

func (e abandonedError) Error() string { return e.err.Error() }
func (e abandonedError) Unwrap() error { return e.err }

// NewResolver wraps next with cb. cb.IsFailure and cb.IsIgnored are set so that
// only upstream failures count against the breaker.
func NewResolver(next domain.MarketValueResolver, cb *CircuitBreaker) *Resolver {
	cb.IsFailure = func(err error) bool {
		return !errors.Is(err, domain.ErrNotFound)
	}
	cb.IsIgnored = func(err error) bool {
		var abandoned abandonedError
		return errors.As(err, &abandoned)
	}
	return &Resolver{next: next, breaker: cb}
}

// Resolve implements domain.MarketValueResolver
func (r *Resolver) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	var value domain.MarketValue

	err := r.breaker.Execute(func() error {
		v, err := r.next.Resolve(ctx, date)
		if err != nil {
			// A client-side timeout of the source itself still counts: ctx is only done
			// when the caller went away
			if ctx.Err() != nil {
				return abandonedError{err: err}
			}
			return err
		}
		value = v
		return nil
	})

	var abandoned abandonedError
	switch {
	case errors.As(err, &abandoned):
		return domain.MarketValue{}, abandoned.err
	case errors.Is(err, ErrOpen):
		return domain.MarketValue{}, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	case err != nil:
		return domain.MarketValue{}, err
	}

	return value, nil
}
