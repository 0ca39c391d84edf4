// Package mst computes minimum spanning trees over graph.Graph.
//
// Two algorithms are available. Kruskal sorts the edges by weight with a stable sort and joins
// components through a union-find; equal weights are taken in the (From, To) order of the edge
// slice. Prim grows the tree from slot 0 over a dense weight matrix; on equal keys the lowest
// slot is taken first. Both are deterministic for a given graph, but on ties they may pick
// different trees of the same total weight.
package mst

import (
	"errors"
	"fmt"

	"github.com/UnknownOlympus/meridian/internal/graph"
)

// ErrDisconnected indicates that no spanning tree covers every node.
var ErrDisconnected = errors.New("mst: graph is disconnected")

// ErrUnknownMethod is returned by Compute for an unsupported method name.
var ErrUnknownMethod = errors.New("mst: unknown method")

// Method selects the MST algorithm.
type Method string

const (
	// MethodKruskal sorts all edges and joins components with a union-find.
	MethodKruskal Method = "kruskal"
	// MethodPrim grows the tree from the first node.
	MethodPrim Method = "prim"
)

// Tree is a spanning tree: n−1 edges over n nodes and their summed weight.
// The zero Tree is the tree of an empty or single-node graph.
type Tree struct {
	Edges  []graph.Edge
	Weight float64
}

// Contains reports whether the tree holds the edge between slots u and v.
func (t Tree) Contains(u, v int) bool {
	want := graph.MakePair(u, v)
	for _, e := range t.Edges {
		if e.Key() == want {
			return true
		}
	}

	return false
}

// Set returns the tree edges keyed by their unordered slot pair.
func (t Tree) Set() map[graph.Pair]struct{} {
	set := make(map[graph.Pair]struct{}, len(t.Edges))
	for _, e := range t.Edges {
		set[e.Key()] = struct{}{}
	}

	return set
}

// Compute runs the selected algorithm. An empty method means Kruskal.
func Compute(g *graph.Graph, method Method) (Tree, error) {
	switch method {
	case MethodKruskal, "":
		return Kruskal(g)
	case MethodPrim:
		return Prim(g)
	default:
		return Tree{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}
