package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starroute-go/internal/domain/navigation"
	"github.com/andrescamacho/starroute-go/internal/domain/shared"
)

// TravelMetricsCollector handles trip and fuel metrics
type TravelMetricsCollector struct {
	// Trip metrics
	tripsTotal       *prometheus.CounterVec
	tripDuration     *prometheus.HistogramVec
	distanceTraveled prometheus.Counter
	hopsTotal        prometheus.Counter
	pathFailures     *prometheus.CounterVec

	// Fuel metrics
	fuelConsumed   prometheus.Counter
	refuelsTotal   *prometheus.CounterVec
	finalFuel      *prometheus.HistogramVec
	ruleEffects    *prometheus.CounterVec
	missingWeights prometheus.Counter
}

// NewTravelMetricsCollector creates a new travel metrics collector
func NewTravelMetricsCollector(namespace string) *TravelMetricsCollector {
	namespace = namespaceOr(namespace)
	const subsystem = "travel"

	return &TravelMetricsCollector{
		tripsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trips_total",
				Help:      "Total number of simulated trips by status and abort reason",
			},
			[]string{"status", "reason"},
		),

		tripDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "trip_duration_seconds",
				Help:      "Time from proposal to result, including confirmation wait",
				Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10, 60},
			},
			[]string{"status"},
		),

		distanceTraveled: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "distance_traveled_total",
				Help:      "Total distance walked across all trips, aborted ones included",
			},
		),

		hopsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "hops_total",
				Help:      "Total number of edges walked",
			},
		),

		pathFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "path_failures_total",
				Help:      "Trips that could not be routed, by reason",
			},
			[]string{"reason"},
		),

		fuelConsumed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_consumed_units_total",
				Help:      "Total units of fuel burned by walked edges",
			},
		),

		refuelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "refuels_total",
				Help:      "Station refuels by station",
			},
			[]string{"station"},
		),

		finalFuel: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "final_fuel_units",
				Help:      "Fuel balance at the end of each trip",
				Buckets:   []float64{-1000, -100, 0, 100, 250, 500, 1000, 2500, 5000},
			},
			[]string{"status"},
		),

		ruleEffects: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "rule_effects_total",
				Help:      "Calendar rule effects applied to trips, by rule and kind",
			},
			[]string{"rule", "kind"},
		),

		missingWeights: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "missing_weight_hops_total",
				Help:      "Walked edges whose weight was unavailable and counted as zero",
			},
		),
	}
}

var _ navigation.MetricsRecorder = (*TravelMetricsCollector)(nil)

// Register registers all travel metrics with the Prometheus registry
func (c *TravelMetricsCollector) Register() error {
	return register(
		c.tripsTotal,
		c.tripDuration,
		c.distanceTraveled,
		c.hopsTotal,
		c.pathFailures,
		c.fuelConsumed,
		c.refuelsTotal,
		c.finalFuel,
		c.ruleEffects,
		c.missingWeights,
	)
}

// RecordTravel records a finished trip
func (c *TravelMetricsCollector) RecordTravel(result *navigation.TravelResult, duration time.Duration) {
	status := string(result.Status)

	c.tripsTotal.WithLabelValues(status, string(result.Reason)).Inc()
	c.tripDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.finalFuel.WithLabelValues(status).Observe(result.FinalFuel)

	for _, effect := range result.Effects {
		c.ruleEffects.WithLabelValues(effect.Rule, string(effect.Kind)).Inc()
	}

	for _, step := range result.Steps {
		c.hopsTotal.Inc()
		c.distanceTraveled.Add(step.Distance)
		c.fuelConsumed.Add(step.Distance)
		for _, station := range step.RefueledAt {
			c.refuelsTotal.WithLabelValues(station).Inc()
		}
		if step.WeightMissing {
			c.missingWeights.Inc()
		}
	}
}

// RecordPathFailure records a trip that could not be routed
func (c *TravelMetricsCollector) RecordPathFailure(_ navigation.TravelPlan, err error) {
	reason := "UNKNOWN"
	var pathErr *shared.PathError
	if errors.As(err, &pathErr) {
		reason = string(pathErr.Reason)
	}
	c.pathFailures.WithLabelValues(reason).Inc()
}
