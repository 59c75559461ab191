// Package metrics provides internal Prometheus metrics collection.
// This package is internal and should not be imported by external projects.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Collector holds the Prometheus metrics of the tokenization pipeline.
type Collector struct {
	// Encode metrics
	encodeRequestsTotal *prometheus.CounterVec
	encodeDuration      *prometheus.HistogramVec
	tokensEncodedTotal  *prometheus.CounterVec

	// Usage tracker metrics
	usageTotalTokens   prometheus.Gauge
	usageHistoryLength prometheus.Gauge

	logger *zap.Logger
}

// NewCollector creates a metrics collector. All metrics are registered on
// reg under the given namespace; a nil reg uses the default registerer.
func NewCollector(namespace string, reg prometheus.Registerer, logger *zap.Logger) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	factory := promauto.With(reg)

	c := &Collector{
		logger: logger.With(zap.String("component", "metrics")),
	}

	c.encodeRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "encode_requests_total",
			Help:      "Total number of encode requests",
		},
		[]string{"encoding", "status"},
	)

	c.encodeDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "encode_duration_seconds",
			Help:      "Encode request duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
		[]string{"encoding"},
	)

	c.tokensEncodedTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_encoded_total",
			Help:      "Total number of tokens produced by encode calls",
		},
		[]string{"encoding"},
	)

	c.usageTotalTokens = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_total_tokens",
			Help:      "Current running total of tracked tokens",
		},
	)

	c.usageHistoryLength = factory.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "usage_history_length",
			Help:      "Number of snapshots in the usage history",
		},
	)

	c.logger.Debug("metrics collector initialized", zap.String("namespace", namespace))
	return c
}

// RecordEncode records one encode call.
func (c *Collector) RecordEncode(encoding string, tokens int, duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	c.encodeRequestsTotal.WithLabelValues(encoding, status).Inc()
	c.encodeDuration.WithLabelValues(encoding).Observe(duration.Seconds())
	if err == nil {
		c.tokensEncodedTotal.WithLabelValues(encoding).Add(float64(tokens))
	}
}

// RecordUsage updates the usage tracker gauges. It satisfies usage.Recorder.
func (c *Collector) RecordUsage(totalTokens, historyLength int) {
	c.usageTotalTokens.Set(float64(totalTokens))
	c.usageHistoryLength.Set(float64(historyLength))
}
