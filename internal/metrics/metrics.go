package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics groups the collectors updated by a pipeline run.
type Metrics struct {
	RecordsProcessed *prometheus.CounterVec
	Runs             *prometheus.CounterVec
	StageSeconds     *prometheus.HistogramVec
	GraphNodes       prometheus.Gauge
	GraphEdges       prometheus.Gauge
	TreeWeight       prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RecordsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_records_processed_total",
			Help: "Total number of source rows processed by the record filter.",
		}, []string{"status"}),
		Runs: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_runs_total",
			Help: "Total number of pipeline runs by result.",
		}, []string{"result"}),
		StageSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meridian_stage_duration_seconds",
			Help:    "Duration of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		GraphNodes: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_graph_nodes",
			Help: "Number of nodes in the last built graph.",
		}),
		GraphEdges: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_graph_edges",
			Help: "Number of edges in the last built graph.",
		}),
		TreeWeight: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_tree_weight",
			Help: "Total weight of the last minimum spanning tree, in coordinate units.",
		}),
	}
}
