package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// serverMetrics holds the collectors for the stream side of the server.
type serverMetrics struct {
	batches       prometheus.Counter
	mutations     prometheus.Counter
	archiveErrors prometheus.Counter
}

func newServerMetrics(reg prometheus.Registerer, namespace string, clients func() int) *serverMetrics {
	factory := promauto.With(reg)

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "server",
		Name:      "clients",
		Help:      "Number of connected WebSocket clients",
	}, func() float64 {
		return float64(clients())
	})

	return &serverMetrics{
		batches: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "batches_total",
			Help:      "Total number of mutation batches flushed",
		}),
		mutations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "mutations_total",
			Help:      "Total number of mutations flushed",
		}),
		archiveErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "archive_errors_total",
			Help:      "Total number of batches the sink failed to store",
		}),
	}
}
