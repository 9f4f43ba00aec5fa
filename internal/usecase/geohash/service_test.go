package geohash

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/geohash-backend/internal/domain"
	"github.com/simaogato/geohash-backend/internal/metrics"
)

// MockMarketValueResolver is a mock implementation of MarketValueResolver for testing
type MockMarketValueResolver struct {
	mock.Mock
}

func (m *MockMarketValueResolver) Resolve(ctx context.Context, date domain.Date) (domain.MarketValue, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(domain.MarketValue), args.Error(1)
}

func TestGeohash_Success(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	// Setup: DJIA opened at 10458.68 on 2005-05-26
	opening, err := domain.ParseMarketValue("10458.68")
	require.NoError(t, err)
	mockResolver.On("Resolve", ctx, domain.NewDate(2005, time.May, 26)).Return(opening, nil)

	// Execute
	result, err := service.Geohash(ctx, "2005-05-26")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "10458.68", result.Opening.String())
	assert.Equal(t, "db9318c2259923d08b672cb305440f97", result.Hash)
	assert.Equal(t, 0.8577132677070023, result.LatOffset)
	assert.Equal(t, 0.5445430695592821, result.LonOffset)

	mockResolver.AssertExpectations(t)
}

func TestGeohash_InvalidDate(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	for _, raw := range []string{"", "2005-5-26", "2005-02-30", "26/05/2005", "tomorrow"} {
		t.Run(raw, func(t *testing.T) {
			result, err := service.Geohash(ctx, raw)

			assert.Nil(t, result)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}

	// Malformed dates fail fast, before any lookup
	mockResolver.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestGeohash_NotFound(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	date := domain.NewDate(2005, time.May, 28)
	mockResolver.On("Resolve", ctx, date).
		Return(domain.MarketValue{}, fmt.Errorf("%w: 2005-05-28 is a Saturday", domain.ErrNotFound))

	result, err := service.Geohash(ctx, "2005-05-28")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "2005-05-28")
}

func TestGeohash_ResolverReturnedNoValue(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	date := domain.NewDate(2005, time.May, 26)
	mockResolver.On("Resolve", ctx, date).Return(domain.MarketValue{}, nil)

	result, err := service.Geohash(ctx, "2005-05-26")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGeohash_UpstreamFailure(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	date := domain.NewDate(2005, time.May, 26)
	mockResolver.On("Resolve", ctx, date).
		Return(domain.MarketValue{}, fmt.Errorf("%w: connection refused", domain.ErrUpstream))

	result, err := service.Geohash(ctx, "2005-05-26")

	assert.Nil(t, result)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestGeohash_UnclassifiedResolverErrorIsUpstream(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	service := NewGeohashService(mockResolver)

	date := domain.NewDate(2005, time.May, 26)
	mockResolver.On("Resolve", ctx, date).Return(domain.MarketValue{}, context.DeadlineExceeded)

	_, err := service.Geohash(ctx, "2005-05-26")

	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}

func TestGeohashForDate_Deterministic(t *testing.T) {
	ctx := context.Background()
	mockResolver := new(MockMarketValueResolver)
	m := metrics.NewMetrics()
	service := NewGeohashService(mockResolver).WithMetrics(m)

	date := domain.NewDate(2024, time.March, 15)
	opening, err := domain.ParseMarketValue("38714.77")
	require.NoError(t, err)
	mockResolver.On("Resolve", ctx, date).Return(opening, nil).Times(2)

	first, err := service.GeohashForDate(ctx, date)
	require.NoError(t, err)
	second, err := service.GeohashForDate(ctx, date)
	require.NoError(t, err)

	assert.Equal(t, first.Hash, second.Hash)
	assert.Equal(t, first.LatOffset, second.LatOffset)
	assert.Equal(t, first.LonOffset, second.LonOffset)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.GeohashesTotal))
	mockResolver.AssertExpectations(t)
}
