package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/meridian/internal/models"
	"golang.org/x/sync/errgroup"
)

// Builder constructs complete graphs. With more than one worker the rows of the upper
// triangle are weighted concurrently; every pair owns a precomputed slot in the edge slice,
// so the output is identical to the sequential build.
type Builder struct {
	log     *slog.Logger
	workers int
}

// NewBuilder returns a Builder that spreads edge weighting over workers goroutines.
// Values below one mean a sequential build.
func NewBuilder(log *slog.Logger, workers int) *Builder {
	if workers < 1 {
		workers = 1
	}

	return &Builder{log: log, workers: workers}
}

// Build creates one node per unique identifier and one edge per unordered pair of nodes.
//
// Duplicate identifiers keep the slot of their first occurrence while the position and label of
// the last occurrence win. They are listed on Graph.Duplicates. Edges are ordered by (From, To).
func (b *Builder) Build(ctx context.Context, records []models.Record) (*Graph, error) {
	g := &Graph{
		Nodes: make([]Node, 0, len(records)),
		index: make(map[string]int, len(records)),
	}

	seen := make(map[string]bool)
	for _, rec := range records {
		node := Node{ID: rec.ID, Position: rec.Position(), Label: rec.Label}
		if idx, ok := g.index[rec.ID]; ok {
			g.Nodes[idx] = node
			if !seen[rec.ID] {
				seen[rec.ID] = true
				g.Duplicates = append(g.Duplicates, rec.ID)
			}
			continue
		}
		g.index[rec.ID] = len(g.Nodes)
		g.Nodes = append(g.Nodes, node)
	}

	if len(g.Duplicates) > 0 {
		b.log.WarnContext(ctx, "Duplicate node identifiers, the last occurrence wins",
			"count", len(g.Duplicates), "ids", g.Duplicates)
	}

	n := len(g.Nodes)
	g.Edges = make([]Edge, CompleteEdgeCount(n))

	if b.workers == 1 || n < 3 {
		for i := range n {
			g.fillRow(i)
		}
	} else if err := b.fillConcurrently(ctx, g); err != nil {
		return nil, fmt.Errorf("failed to weight graph edges: %w", err)
	}

	b.log.DebugContext(ctx, "Graph built", "nodes", n, "edges", len(g.Edges), "workers", b.workers)

	return g, nil
}

func (b *Builder) fillConcurrently(ctx context.Context, g *Graph) error {
	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(b.workers)
	for i := range len(g.Nodes) - 1 {
		grp.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			g.fillRow(i)
			return nil
		})
	}

	return grp.Wait()
}

// fillRow writes the edges (i, j) for every j > i. Nodes are read-only at this point.
func (g *Graph) fillRow(i int) {
	n := len(g.Nodes)
	offset := rowOffset(i, n)
	for j := i + 1; j < n; j++ {
		g.Edges[offset+j-i-1] = Edge{From: i, To: j, Weight: g.Weight(i, j)}
	}
}

// rowOffset is the index of edge (i, i+1) in the (From, To) ordered edge slice.
func rowOffset(i, n int) int {
	return i*(n-1) - i*(i-1)/2
}
