package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GraphMetricsCollector tracks the session graph size and CSV imports
type GraphMetricsCollector struct {
	nodes            prometheus.Gauge
	edges            prometheus.Gauge
	mutationsTotal   *prometheus.CounterVec
	importRowsTotal  *prometheus.CounterVec
	importDiagnostic *prometheus.CounterVec
}

// NewGraphMetricsCollector creates a new graph metrics collector
func NewGraphMetricsCollector(namespace string) *GraphMetricsCollector {
	namespace = namespaceOr(namespace)
	const subsystem = "graph"

	return &GraphMetricsCollector{
		nodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "nodes",
			Help:      "Bodies currently in the session graph",
		}),
		edges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "edges",
			Help:      "Edges currently in the session graph",
		}),
		mutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "mutations_total",
				Help:      "Graph mutations by operation and outcome",
			},
			[]string{"operation", "status"},
		),
		importRowsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "import_rows_total",
				Help:      "Imported rows by outcome",
			},
			[]string{"status"},
		),
		importDiagnostic: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "import_diagnostics_total",
				Help:      "Import diagnostics by error kind",
			},
			[]string{"kind"},
		),
	}
}

// Register registers all graph metrics with the Prometheus registry
func (c *GraphMetricsCollector) Register() error {
	return register(c.nodes, c.edges, c.mutationsTotal, c.importRowsTotal, c.importDiagnostic)
}

// RecordSize sets the node and edge gauges
func (c *GraphMetricsCollector) RecordSize(nodes, edges int) {
	c.nodes.Set(float64(nodes))
	c.edges.Set(float64(edges))
}

// RecordMutation counts an add or remove attempt
func (c *GraphMetricsCollector) RecordMutation(operation string, err error) {
	status := "success"
	if err != nil {
		status = "rejected"
	}
	c.mutationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordImport counts the rows of one import and its diagnostics by kind
func (c *GraphMetricsCollector) RecordImport(accepted, rejected int, diagnosticKinds []string) {
	c.importRowsTotal.WithLabelValues("accepted").Add(float64(accepted))
	c.importRowsTotal.WithLabelValues("rejected").Add(float64(rejected))
	for _, kind := range diagnosticKinds {
		c.importDiagnostic.WithLabelValues(kind).Inc()
	}
}
