package mst

import (
	"math"

	"github.com/UnknownOlympus/meridian/internal/graph"
)

// Prim computes a minimum spanning tree by growing it from slot 0 over a dense weight matrix.
// Missing pairs are treated as absent edges, so a graph that is not complete may still be
// spanned; when it cannot be, ErrDisconnected is returned.
//
// Complexity: O(V²) time and memory, the natural fit for a complete graph.
func Prim(g *graph.Graph) (Tree, error) {
	if g == nil || len(g.Nodes) < 2 {
		return Tree{}, nil
	}

	n := len(g.Nodes)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			dist[i][j] = math.Inf(1)
		}
	}
	for _, e := range g.Edges {
		if e.From == e.To || !validSlot(e.From, n) || !validSlot(e.To, n) {
			continue
		}
		if e.Weight < dist[e.From][e.To] {
			dist[e.From][e.To] = e.Weight
			dist[e.To][e.From] = e.Weight
		}
	}

	inTree := make([]bool, n)
	best := make([]float64, n)
	parent := make([]int, n)
	for v := range best {
		best[v] = math.Inf(1)
		parent[v] = -1
	}
	best[0] = 0

	tree := Tree{Edges: make([]graph.Edge, 0, n-1)}
	for range n {
		u := -1
		for v := range n {
			if !inTree[v] && (u < 0 || best[v] < best[u]) {
				u = v
			}
		}
		if math.IsInf(best[u], 1) {
			return Tree{}, ErrDisconnected
		}

		inTree[u] = true
		if p := parent[u]; p >= 0 {
			pair := graph.MakePair(p, u)
			tree.Edges = append(tree.Edges, graph.Edge{From: pair.A, To: pair.B, Weight: dist[p][u]})
			tree.Weight += dist[p][u]
		}

		for v := range n {
			if !inTree[v] && dist[u][v] < best[v] {
				best[v] = dist[u][v]
				parent[v] = u
			}
		}
	}

	return tree, nil
}
