// Package metrics provides Prometheus instrumentation for the inventory
// service.
//
// The CLI is short-lived, so nothing is scraped over HTTP. Instead, when
// --metrics-file is set, the registry is written once per command in the
// node_exporter textfile-collector format:
//
//	m := metrics.New()
//	svc := services.NewInventoryService(store, services.WithMetrics(m))
//	...
//	m.WriteTextfile("/var/lib/node_exporter/stockroom.prom")
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "stockroom"

// Inventory holds the inventory metrics and the registry they live in.
type Inventory struct {
	Registry *prometheus.Registry

	// Operations counts service calls by operation and result
	// ("ok" | "invalid" | "not_found" | "insufficient_stock" | "error").
	Operations *prometheus.CounterVec

	// OperationDuration tracks how long each service call takes.
	OperationDuration *prometheus.HistogramVec

	// UnitsSold counts units removed from stock by recorded sales.
	UnitsSold prometheus.Counter

	// Products is the catalog size seen by the last full read.
	Products prometheus.Gauge

	// LowStockProducts counts products under the configured threshold at the
	// last full read.
	LowStockProducts prometheus.Gauge
}

// New builds an Inventory with a fresh registry, including the Go runtime
// collector.
func New() *Inventory {
	m := &Inventory{
		Registry: prometheus.NewRegistry(),
		Operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "operations_total",
			Help:      "Total inventory operations by result.",
		}, []string{"operation", "result"}),
		OperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "operation_duration_seconds",
			Help:      "Duration of inventory operations in seconds.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1},
		}, []string{"operation"}),
		UnitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "units_sold_total",
			Help:      "Units removed from stock by recorded sales.",
		}),
		Products: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "products",
			Help:      "Number of products in the catalog.",
		}),
		LowStockProducts: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "inventory",
			Name:      "low_stock_products",
			Help:      "Products below the configured low-stock threshold at the last full read.",
		}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		m.Operations,
		m.OperationDuration,
		m.UnitsSold,
		m.Products,
		m.LowStockProducts,
	)
	return m
}

// Observe records one finished operation.
func (m *Inventory) Observe(operation, result string, took time.Duration) {
	m.Operations.WithLabelValues(operation, result).Inc()
	m.OperationDuration.WithLabelValues(operation).Observe(took.Seconds())
}

// WriteTextfile writes every registered metric to path atomically.
func (m *Inventory) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}
	return nil
}
