//go:build integration

package repository_test

import (
	"log/slog"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/dataset"
	"github.com/UnknownOlympus/meridian/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

const seedEvents = `
	CREATE TABLE earthquakes (
		id        INTEGER PRIMARY KEY,
		latitude  NUMERIC(9, 6),
		longitude TEXT,
		place     TEXT NOT NULL
	);
	INSERT INTO earthquakes (id, latitude, longitude, place) VALUES
		(3, 13.0827, '80 16 15 E', 'Chennai'),
		(1, 28.6139, '77.2090', 'Delhi'),
		(2, NULL, '72.8777', 'Mumbai');
`

func TestFetchEventsIntegration(t *testing.T) {
	ctx := t.Context()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("meridian"),
		postgres.WithUsername("meridian"),
		postgres.WithPassword("meridian"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	defer pool.Close()

	_, err = pool.Exec(ctx, seedEvents)
	require.NoError(t, err)

	repo := repository.NewRepository(pool, slog.Default())
	require.NoError(t, repo.Ping(ctx))

	table, err := repo.FetchEvents(ctx, "public.earthquakes")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "latitude", "longitude", "place"}, table.Columns)
	require.Len(t, table.Rows, 3)

	records, report, err := dataset.Filter(table)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Dropped)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].ID)
	assert.InDelta(t, 28.6139, records[0].Latitude, 1e-9)
	assert.Equal(t, "Chennai", records[1].Label)
	assert.InDelta(t, 80+16.0/60+15.0/3600, records[1].Longitude, 1e-9)
}
