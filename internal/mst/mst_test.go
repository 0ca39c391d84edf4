package mst_test

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"testing"

	"github.com/UnknownOlympus/meridian/internal/graph"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/mst"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var methods = []mst.Method{mst.MethodKruskal, mst.MethodPrim}

// buildComplete builds the complete graph over the given (lon, lat) points.
func buildComplete(t *testing.T, points ...[2]float64) *graph.Graph {
	t.Helper()
	records := make([]models.Record, len(points))
	for i, p := range points {
		records[i] = models.Record{ID: fmt.Sprintf("N%d", i), Longitude: p[0], Latitude: p[1]}
	}

	g, err := graph.NewBuilder(slog.Default(), 1).Build(t.Context(), records)
	require.NoError(t, err)

	return g
}

func randomPoints(r *rand.Rand, n int) [][2]float64 {
	points := make([][2]float64, n)
	for i := range points {
		points[i] = [2]float64{r.Float64() * 20, r.Float64() * 20}
	}

	return points
}

// isSpanningTree reports whether edges form a spanning tree over n slots.
func isSpanningTree(n int, edges []graph.Edge) bool {
	if len(edges) != n-1 {
		return false
	}
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(u int) int {
		if parent[u] != u {
			parent[u] = find(parent[u])
		}
		return parent[u]
	}
	for _, e := range edges {
		a, b := find(e.From), find(e.To)
		if a == b {
			return false
		}
		parent[a] = b
	}

	return true
}

// bruteForceMinimum enumerates every (n−1)-edge subset and returns the lightest spanning tree weight.
func bruteForceMinimum(n int, edges []graph.Edge) float64 {
	best := math.Inf(1)
	chosen := make([]graph.Edge, 0, n-1)

	var walk func(start int)
	walk = func(start int) {
		if len(chosen) == n-1 {
			if isSpanningTree(n, chosen) {
				var total float64
				for _, e := range chosen {
					total += e.Weight
				}
				best = math.Min(best, total)
			}
			return
		}
		for i := start; i < len(edges); i++ {
			chosen = append(chosen, edges[i])
			walk(i + 1)
			chosen = chosen[:len(chosen)-1]
		}
	}
	walk(0)

	return best
}

func TestMinimumAgainstBruteForce(t *testing.T) {
	t.Parallel()
	r := rand.New(rand.NewSource(2023))

	for n := 2; n <= 6; n++ {
		for round := range 5 {
			g := buildComplete(t, randomPoints(r, n)...)
			want := bruteForceMinimum(n, g.Edges)

			for _, method := range methods {
				tree, err := mst.Compute(g, method)

				require.NoError(t, err, "n=%d round=%d method=%s", n, round, method)
				require.Len(t, tree.Edges, n-1)
				assert.True(t, isSpanningTree(n, tree.Edges), "method=%s", method)
				assert.InDelta(t, want, tree.Weight, 1e-9, "n=%d round=%d method=%s", n, round, method)
			}
		}
	}
}

func TestSparseConnectedGraph(t *testing.T) {
	t.Parallel()
	// Square 0-1-2-3 with a heavy diagonal 0-2.
	g := &graph.Graph{
		Nodes: make([]graph.Node, 4),
		Edges: []graph.Edge{
			{From: 0, To: 1, Weight: 1},
			{From: 1, To: 2, Weight: 2},
			{From: 2, To: 3, Weight: 1},
			{From: 0, To: 3, Weight: 4},
			{From: 0, To: 2, Weight: 5},
		},
	}

	for _, method := range methods {
		tree, err := mst.Compute(g, method)

		require.NoError(t, err)
		assert.InDelta(t, 4.0, tree.Weight, 1e-12)
		assert.True(t, tree.Contains(0, 1))
		assert.True(t, tree.Contains(2, 1))
		assert.True(t, tree.Contains(2, 3))
		assert.False(t, tree.Contains(0, 2))
		assert.InDelta(t, bruteForceMinimum(4, g.Edges), tree.Weight, 1e-12)
	}
}

func TestTrivialGraphs(t *testing.T) {
	t.Parallel()

	for _, method := range methods {
		t.Run(string(method), func(t *testing.T) {
			t.Parallel()

			tree, err := mst.Compute(nil, method)
			require.NoError(t, err)
			assert.Empty(t, tree.Edges)

			tree, err = mst.Compute(&graph.Graph{}, method)
			require.NoError(t, err)
			assert.Empty(t, tree.Edges)
			assert.Zero(t, tree.Weight)

			tree, err = mst.Compute(buildComplete(t, [2]float64{77.2, 28.6}), method)
			require.NoError(t, err)
			assert.Empty(t, tree.Edges)
			assert.Zero(t, tree.Weight)
		})
	}
}

func TestDisconnected(t *testing.T) {
	t.Parallel()
	g := &graph.Graph{
		Nodes: make([]graph.Node, 4),
		Edges: []graph.Edge{{From: 0, To: 1, Weight: 1}, {From: 2, To: 3, Weight: 1}},
	}

	for _, method := range methods {
		tree, err := mst.Compute(g, method)

		require.ErrorIs(t, err, mst.ErrDisconnected, "method=%s", method)
		assert.Empty(t, tree.Edges)
	}
}

func TestEqualWeightsAreDeterministic(t *testing.T) {
	t.Parallel()
	// Unit square corners: four sides of weight 1 and two diagonals of sqrt(2).
	points := [][2]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	for _, method := range methods {
		first, err := mst.Compute(buildComplete(t, points...), method)
		require.NoError(t, err)
		assert.InDelta(t, 3.0, first.Weight, 1e-12)

		for range 10 {
			again, err := mst.Compute(buildComplete(t, points...), method)
			require.NoError(t, err)
			assert.Equal(t, first.Edges, again.Edges, "method=%s", method)
		}
	}

	kruskal, err := mst.Kruskal(buildComplete(t, points...))
	require.NoError(t, err)
	// Equal weights are taken in (From, To) order: 0-1, 0-3, 1-2.
	assert.Equal(t, []graph.Pair{{A: 0, B: 1}, {A: 0, B: 3}, {A: 1, B: 2}}, pairs(kruskal.Edges))
}

func TestThreePointScenario(t *testing.T) {
	t.Parallel()
	g := buildComplete(t, [2]float64{0, 0}, [2]float64{0, 1}, [2]float64{10, 10})
	want := 1 + math.Min(math.Hypot(10, 10), math.Hypot(10, 9))

	for _, method := range methods {
		tree, err := mst.Compute(g, method)

		require.NoError(t, err)
		require.Len(t, tree.Edges, 2)
		assert.True(t, tree.Contains(0, 1), "the unit edge must be in the tree")
		assert.True(t, tree.Contains(1, 2), "the third node joins through its nearest neighbour")
		assert.InDelta(t, want, tree.Weight, 1e-12)
	}
}

func TestUnknownMethod(t *testing.T) {
	t.Parallel()
	_, err := mst.Compute(&graph.Graph{}, mst.Method("boruvka"))

	require.ErrorIs(t, err, mst.ErrUnknownMethod)
	assert.Contains(t, err.Error(), "boruvka")
}

func TestSet(t *testing.T) {
	t.Parallel()
	tree := mst.Tree{Edges: []graph.Edge{{From: 0, To: 2, Weight: 1}, {From: 1, To: 2, Weight: 1}}}

	set := tree.Set()
	assert.Len(t, set, 2)
	assert.Contains(t, set, graph.MakePair(2, 0))
	assert.NotContains(t, set, graph.MakePair(0, 1))
}

func pairs(edges []graph.Edge) []graph.Pair {
	out := make([]graph.Pair, len(edges))
	for i, e := range edges {
		out[i] = e.Key()
	}

	return out
}
