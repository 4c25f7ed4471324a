// Package metrics exposes Prometheus collectors for the monitor service.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	monitorTicksTotal         prometheus.Counter
	monitorRequestsTotal      *prometheus.CounterVec
	monitorNotificationsTotal *prometheus.CounterVec
	monitorFetchSeconds       prometheus.Histogram

	once sync.Once
)

// Init initializes the Prometheus metrics collectors.
// It is safe to call this function multiple times.
func Init() {
	once.Do(func() {
		monitorTicksTotal = promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "monitor_ticks_total",
				Help: "Total number of watch-list evaluation ticks.",
			},
		)

		monitorRequestsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_requests_total",
				Help: "Total watch requests processed, labeled by outcome.",
			},
			[]string{"outcome"},
		)

		monitorNotificationsTotal = promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "monitor_notifications_total",
				Help: "Total webhook notifications attempted, labeled by status.",
			},
			[]string{"status"},
		)

		monitorFetchSeconds = promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "monitor_fetch_duration_seconds",
				Help:    "Histogram of schedule-page fetch latencies.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 15},
			},
		)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveTick increments the tick counter.
func ObserveTick() {
	if monitorTicksTotal == nil {
		return
	}
	monitorTicksTotal.Inc()
}

// ObserveRequest increments the request counter for the given outcome.
func ObserveRequest(outcome string) {
	if monitorRequestsTotal == nil {
		return
	}
	monitorRequestsTotal.WithLabelValues(outcome).Inc()
}

// ObserveNotification increments the notification counter for the given status.
func ObserveNotification(status string) {
	if monitorNotificationsTotal == nil {
		return
	}
	monitorNotificationsTotal.WithLabelValues(status).Inc()
}

// ObserveFetch records one schedule-page fetch duration.
func ObserveFetch(d time.Duration) {
	if monitorFetchSeconds == nil {
		return
	}
	monitorFetchSeconds.Observe(d.Seconds())
}
