package mst

import (
	"sort"

	"github.com/UnknownOlympus/meridian/internal/graph"
)

// Kruskal computes a minimum spanning tree with a stable weight sort and a union-find.
//
// A nil graph, an empty graph or a single node yield an empty tree. ErrDisconnected is returned
// when fewer than n−1 edges can be joined. Self-loops and edges naming unknown slots are ignored.
//
// Complexity: O(E log E) time, O(E + V) memory.
func Kruskal(g *graph.Graph) (Tree, error) {
	if g == nil || len(g.Nodes) < 2 {
		return Tree{}, nil
	}

	n := len(g.Nodes)
	edges := make([]graph.Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		if e.From == e.To || !validSlot(e.From, n) || !validSlot(e.To, n) {
			continue
		}
		edges = append(edges, e)
	}

	sort.SliceStable(edges, func(i, j int) bool {
		return edges[i].Weight < edges[j].Weight
	})

	uf := newUnionFind(n)
	tree := Tree{Edges: make([]graph.Edge, 0, n-1)}
	for _, e := range edges {
		if !uf.union(e.From, e.To) {
			continue
		}
		tree.Edges = append(tree.Edges, e)
		tree.Weight += e.Weight
		if len(tree.Edges) == n-1 {
			break
		}
	}

	if len(tree.Edges) < n-1 {
		return Tree{}, ErrDisconnected
	}

	return tree, nil
}

func validSlot(i, n int) bool { return i >= 0 && i < n }

// unionFind is a disjoint-set forest over slots 0..n-1 with path compression and union by rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{parent: make([]int, n), rank: make([]int, n)}
	for i := range uf.parent {
		uf.parent[i] = i
	}

	return uf
}

func (uf *unionFind) find(u int) int {
	for uf.parent[u] != u {
		uf.parent[u] = uf.parent[uf.parent[u]]
		u = uf.parent[u]
	}

	return u
}

// union merges the sets of u and v and reports whether they were disjoint.
func (uf *unionFind) union(u, v int) bool {
	ru, rv := uf.find(u), uf.find(v)
	if ru == rv {
		return false
	}

	switch {
	case uf.rank[ru] < uf.rank[rv]:
		uf.parent[ru] = rv
	case uf.rank[ru] > uf.rank[rv]:
		uf.parent[rv] = ru
	default:
		uf.parent[rv] = ru
		uf.rank[ru]++
	}

	return true
}
