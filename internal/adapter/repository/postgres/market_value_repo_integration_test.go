//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/geohash-backend/internal/domain"
)

func getDBConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	return "host=localhost port=5432 user=postgres password=postgres dbname=geohash sslmode=disable"
}

func TestMarketValueRepository_Integration(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewDB(ctx, getDBConnectionString())
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, EnsureSchema(ctx, db))

	repo := NewMarketValueRepository(db)
	date := domain.NewDate(2005, time.May, 26)

	_, err = db.ExecContext(ctx, `DELETE FROM djia_openings WHERE date = $1`, date.String())
	require.NoError(t, err)

	_, err = repo.Resolve(ctx, date)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	first, err := domain.ParseMarketValue("10458.60")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, date, first))

	got, err := repo.Resolve(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, "10458.60", got.String())

	second, err := domain.ParseMarketValue("10458.68")
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, date, second))

	got, err = repo.Resolve(ctx, date)
	require.NoError(t, err)
	assert.Equal(t, "10458.68", got.String())

	result, err := domain.Derive(date, got)
	require.NoError(t, err)
	assert.Equal(t, "db9318c2259923d08b672cb305440f97", result.Hash)

	// Values come back with the precision they were stored with
	for _, text := range []string{"10458.6", "10458.680", "10458"} {
		v, err := domain.ParseMarketValue(text)
		require.NoError(t, err)
		require.NoError(t, repo.Upsert(ctx, date, v))

		got, err = repo.Resolve(ctx, date)
		require.NoError(t, err)
		assert.Equal(t, text, got.String())
	}

	assert.ErrorIs(t, repo.Upsert(ctx, date, domain.MarketValue{}), domain.ErrInvalidInput)
}
