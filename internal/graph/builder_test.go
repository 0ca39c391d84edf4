package graph_test

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/graph"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomRecords returns n records with unique ids scattered over the Indian subcontinent.
func randomRecords(n int, seed int64) []models.Record {
	r := rand.New(rand.NewSource(seed))
	records := make([]models.Record, n)
	for i := range records {
		records[i] = models.Record{
			ID:        fmt.Sprintf("R%d", i),
			Latitude:  8 + r.Float64()*29,
			Longitude: 68 + r.Float64()*29,
			Label:     fmt.Sprintf("place %d", i),
		}
	}

	return records
}

func TestBuild(t *testing.T) {
	t.Parallel()
	logger := slog.Default()

	t.Run("complete graph edge count and weights", func(t *testing.T) {
		t.Parallel()
		for _, n := range []int{0, 1, 2, 3, 7, 25} {
			g, err := graph.NewBuilder(logger, 1).Build(t.Context(), randomRecords(n, int64(n)))

			require.NoError(t, err)
			require.Len(t, g.Nodes, n)
			require.Len(t, g.Edges, n*(n-1)/2, "n=%d", n)

			seen := make(map[graph.Pair]bool, len(g.Edges))
			for _, e := range g.Edges {
				assert.Less(t, e.From, e.To)
				assert.GreaterOrEqual(t, e.Weight, 0.0)
				assert.False(t, seen[e.Key()], "duplicate edge %v", e)
				seen[e.Key()] = true
				assert.Equal(t, g.Weight(e.To, e.From), e.Weight, "weight must be symmetric")
			}
		}
	})

	t.Run("planar euclidean weight", func(t *testing.T) {
		t.Parallel()
		records := []models.Record{
			{ID: "a", Latitude: 0, Longitude: 0},
			{ID: "b", Latitude: 4, Longitude: 3},
		}

		g, err := graph.NewBuilder(logger, 1).Build(t.Context(), records)

		require.NoError(t, err)
		require.Len(t, g.Edges, 1)
		assert.Equal(t, graph.Edge{From: 0, To: 1, Weight: 5}, g.Edges[0])
	})

	t.Run("edges are ordered by slot pairs", func(t *testing.T) {
		t.Parallel()
		g, err := graph.NewBuilder(logger, 1).Build(t.Context(), randomRecords(4, 1))

		require.NoError(t, err)
		want := []graph.Pair{
			{A: 0, B: 1}, {A: 0, B: 2}, {A: 0, B: 3},
			{A: 1, B: 2}, {A: 1, B: 3}, {A: 2, B: 3},
		}
		got := make([]graph.Pair, 0, len(g.Edges))
		for _, e := range g.Edges {
			got = append(got, e.Key())
		}
		assert.Equal(t, want, got)
	})

	t.Run("concurrent build matches sequential build", func(t *testing.T) {
		t.Parallel()
		records := randomRecords(60, 7)

		seq, err := graph.NewBuilder(logger, 1).Build(t.Context(), records)
		require.NoError(t, err)
		par, err := graph.NewBuilder(logger, 8).Build(t.Context(), records)
		require.NoError(t, err)

		assert.Equal(t, seq.Nodes, par.Nodes)
		assert.Equal(t, seq.Edges, par.Edges)
	})

	t.Run("cancelled context stops a concurrent build", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		g, err := graph.NewBuilder(logger, 4).Build(ctx, randomRecords(10, 3))

		require.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, g)
	})

	t.Run("duplicate identifiers keep first slot and last position", func(t *testing.T) {
		t.Parallel()
		records := []models.Record{
			{ID: "a", Latitude: 1, Longitude: 1, Label: "first"},
			{ID: "b", Latitude: 2, Longitude: 2, Label: "b"},
			{ID: "a", Latitude: 3, Longitude: 3, Label: "second"},
			{ID: "a", Latitude: 5, Longitude: 5, Label: "third"},
		}

		g, err := graph.NewBuilder(logger, 1).Build(t.Context(), records)

		require.NoError(t, err)
		require.Len(t, g.Nodes, 2)
		require.Len(t, g.Edges, 1)
		assert.Equal(t, []string{"a"}, g.Duplicates)

		node, ok := g.Node("a")
		require.True(t, ok)
		assert.Equal(t, "third", node.Label)
		assert.Equal(t, models.Coordinates{Longitude: 5, Latitude: 5}, node.Position)

		idx, ok := g.Lookup("a")
		require.True(t, ok)
		assert.Equal(t, 0, idx)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		t.Parallel()
		g, err := graph.NewBuilder(logger, 1).Build(t.Context(), randomRecords(2, 2))

		require.NoError(t, err)
		_, ok := g.Node("missing")
		assert.False(t, ok)
	})
}

func TestCompleteEdgeCount(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, graph.CompleteEdgeCount(0))
	assert.Equal(t, 0, graph.CompleteEdgeCount(1))
	assert.Equal(t, 1, graph.CompleteEdgeCount(2))
	assert.Equal(t, 45, graph.CompleteEdgeCount(10))
}

func TestMakePair(t *testing.T) {
	t.Parallel()
	assert.Equal(t, graph.MakePair(3, 1), graph.MakePair(1, 3))
	assert.Equal(t, graph.Pair{A: 1, B: 3}, graph.MakePair(3, 1))
}
