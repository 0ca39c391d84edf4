// Package graph builds the complete weighted graph over filtered disaster-event records.
//
// Weights are planar Euclidean distances in coordinate units: longitude and latitude are
// treated as flat Cartesian values. This is accurate enough at national or regional scale
// and degrades near the poles or across large spans.
package graph

import (
	"math"

	"github.com/UnknownOlympus/meridian/internal/models"
)

// Node is one record in the graph, addressed by its slot in Graph.Nodes.
type Node struct {
	ID       string
	Position models.Coordinates
	Label    string
}

// Edge is an undirected weighted pair of node slots with From < To.
type Edge struct {
	From   int
	To     int
	Weight float64
}

// Key returns the unordered pair identifying the edge.
func (e Edge) Key() Pair { return MakePair(e.From, e.To) }

// Pair is an unordered pair of node slots stored with the smaller slot first.
type Pair struct {
	A, B int
}

// MakePair returns the canonical pair for slots u and v.
func MakePair(u, v int) Pair {
	if u > v {
		u, v = v, u
	}

	return Pair{A: u, B: v}
}

// Graph is a weighted undirected graph over unique node identifiers.
type Graph struct {
	Nodes []Node
	Edges []Edge
	// Duplicates lists identifiers that appeared more than once in the input, in first-seen order.
	Duplicates []string

	index map[string]int
}

// Lookup returns the slot of the node with the given identifier.
func (g *Graph) Lookup(id string) (int, bool) {
	idx, ok := g.index[id]
	return idx, ok
}

// Node returns the node with the given identifier.
func (g *Graph) Node(id string) (Node, bool) {
	idx, ok := g.index[id]
	if !ok {
		return Node{}, false
	}

	return g.Nodes[idx], true
}

// Weight returns the weight of the edge between slots u and v, computed from the node positions.
func (g *Graph) Weight(u, v int) float64 {
	return Distance(g.Nodes[u].Position, g.Nodes[v].Position)
}

// CompleteEdgeCount returns n·(n−1)/2, the number of edges of a complete graph on n nodes.
func CompleteEdgeCount(n int) int {
	if n < 2 {
		return 0
	}

	return n * (n - 1) / 2
}

// Distance returns the planar Euclidean distance between two points.
func Distance(a, b models.Coordinates) float64 {
	return math.Hypot(a.Longitude-b.Longitude, a.Latitude-b.Latitude)
}
