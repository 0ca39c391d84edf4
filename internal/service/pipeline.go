package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/meridian/internal/dataset"
	"github.com/UnknownOlympus/meridian/internal/graph"
	"github.com/UnknownOlympus/meridian/internal/mapview"
	"github.com/UnknownOlympus/meridian/internal/metrics"
	"github.com/UnknownOlympus/meridian/internal/models"
	"github.com/UnknownOlympus/meridian/internal/mst"
	"github.com/UnknownOlympus/meridian/internal/overlay"
	"github.com/UnknownOlympus/meridian/internal/source"
)

const previewRows = 5

// Run results recorded on the runs counter.
const (
	resultSuccess       = "success"
	resultNoData        = "no_data"
	resultSourceFailure = "source_error"
	resultFailure       = "failure"
)

// Result describes a completed run.
type Result struct {
	Path    string           // Path of the written artifact.
	Report  dataset.Report   // Report of the record filter.
	Graph   *graph.Graph     // Graph is the complete graph over the kept records.
	Tree    mst.Tree         // Tree is its minimum spanning tree.
	Overlay *overlay.Overlay // Overlay is what was rendered.
}

// Pipeline loads one dataset and renders its minimum spanning tree over the complete graph.
type Pipeline struct {
	log      *slog.Logger     // Logger for pipeline activities
	source   source.Source    // Source of the event table
	builder  *graph.Builder   // Builder of the complete graph
	method   mst.Method       // MST algorithm
	renderer mapview.Renderer // Sink for the overlay
	metrics  *metrics.Metrics // Metrics for tracking runs
	zoom     int              // Initial map zoom
}

// NewPipeline creates a new instance of Pipeline.
func NewPipeline(
	log *slog.Logger,
	src source.Source,
	builder *graph.Builder,
	method mst.Method,
	renderer mapview.Renderer,
	metrics *metrics.Metrics,
	zoom int,
) *Pipeline {
	return &Pipeline{
		log:      log,
		source:   src,
		builder:  builder,
		method:   method,
		renderer: renderer,
		metrics:  metrics,
		zoom:     zoom,
	}
}

// Run executes every stage for the dataset called name. Nothing is written unless all stages
// succeed. Errors keep their class: source.ErrSourceUnavailable for unreachable data and
// dataset.ErrNoUsableData when no record survives the filter.
func (p *Pipeline) Run(ctx context.Context, name string) (*Result, error) {
	res, err := p.run(ctx, name)
	p.metrics.Runs.WithLabelValues(resultLabel(err)).Inc()
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (p *Pipeline) run(ctx context.Context, name string) (*Result, error) {
	var table *models.Table
	err := p.stage("load", func() error {
		var errLoad error
		table, errLoad = p.source.Load(ctx)
		return errLoad
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	p.describe(ctx, name, table)

	var (
		records []models.Record
		report  dataset.Report
	)
	err = p.stage("filter", func() error {
		var errFilter error
		records, report, errFilter = dataset.Filter(table)
		return errFilter
	})
	p.metrics.RecordsProcessed.WithLabelValues("kept").Add(float64(report.Kept))
	p.metrics.RecordsProcessed.WithLabelValues("dropped").Add(float64(report.Dropped))
	if err != nil {
		return nil, err
	}
	if report.Dropped > 0 {
		p.log.InfoContext(ctx, "Dropped rows without usable coordinates",
			"dataset", name, "dropped", report.Dropped, "kept", report.Kept)
	}

	var g *graph.Graph
	err = p.stage("graph", func() error {
		var errBuild error
		g, errBuild = p.builder.Build(ctx, records)
		return errBuild
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build graph: %w", err)
	}
	p.metrics.GraphNodes.Set(float64(len(g.Nodes)))
	p.metrics.GraphEdges.Set(float64(len(g.Edges)))

	var tree mst.Tree
	err = p.stage("mst", func() error {
		var errTree error
		tree, errTree = mst.Compute(g, p.method)
		return errTree
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute minimum spanning tree: %w", err)
	}
	p.metrics.TreeWeight.Set(tree.Weight)
	p.log.InfoContext(ctx, "Minimum spanning tree",
		"dataset", name, "method", p.methodName(), "weight", tree.Weight, "edges", treeEdges(g, tree))

	ov := overlay.Classify(g, tree, p.zoom)

	var path string
	err = p.stage("render", func() error {
		var errRender error
		path, errRender = p.renderer.Render(ctx, ov, name)
		return errRender
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render map: %w", err)
	}
	p.log.InfoContext(ctx, "Map written", "dataset", name, "path", path)

	return &Result{Path: path, Report: report, Graph: g, Tree: tree, Overlay: ov}, nil
}

// describe logs the dataset summary and a preview of its first rows.
func (p *Pipeline) describe(ctx context.Context, name string, table *models.Table) {
	p.log.InfoContext(ctx, "Dataset loaded", "dataset", name, "columns", table.Columns, "rows", table.Len())

	for row := range min(previewRows, table.Len()) {
		p.log.DebugContext(ctx, "Dataset preview", "dataset", name, "row", row, "values", table.Rows[row])
	}
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	err := fn()
	p.metrics.StageSeconds.WithLabelValues(name).Observe(time.Since(start).Seconds())

	return err
}

func (p *Pipeline) methodName() mst.Method {
	if p.method == "" {
		return mst.MethodKruskal
	}

	return p.method
}

// treeEdges lists tree edges as identifier pairs.
func treeEdges(g *graph.Graph, tree mst.Tree) []string {
	edges := make([]string, 0, len(tree.Edges))
	for _, e := range tree.Edges {
		edges = append(edges, g.Nodes[e.From].ID+" - "+g.Nodes[e.To].ID)
	}

	return edges
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return resultSuccess
	case errors.Is(err, dataset.ErrNoUsableData):
		return resultNoData
	case errors.Is(err, source.ErrSourceUnavailable):
		return resultSourceFailure
	default:
		return resultFailure
	}
}
