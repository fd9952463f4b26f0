// Package metrics объявляет метрики Prometheus для HTTP API и рассылки.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/Anubhav-Ghosh1/QR-Moments/internal/services/sweep"
)

// Metrics набор метрик приложения.
type Metrics struct {
	requests      *prometheus.CounterVec
	duration      *prometheus.HistogramVec
	sweepRuns     *prometheus.CounterVec
	sweepDigests  *prometheus.CounterVec
	sweepDuration prometheus.Histogram
}

// New регистрирует метрики в reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrmoments",
			Name:      "http_requests_total",
			Help:      "Number of HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "qrmoments",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
		sweepRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrmoments",
			Name:      "sweep_runs_total",
			Help:      "Expiry sweep runs by result.",
		}, []string{"result"}),
		sweepDigests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "qrmoments",
			Name:      "sweep_digests_total",
			Help:      "Digests processed by the expiry sweep by outcome.",
		}, []string{"outcome"}),
		sweepDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "qrmoments",
			Name:      "sweep_duration_seconds",
			Help:      "Expiry sweep duration.",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 60, 300},
		}),
	}
	reg.MustRegister(m.requests, m.duration, m.sweepRuns, m.sweepDigests, m.sweepDuration)
	return m
}

// Middleware учитывает запросы по шаблону маршрута chi.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		m.requests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
		m.duration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveSweep учитывает итог запуска рассылки.
func (m *Metrics) ObserveSweep(report sweep.Report, duration time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.sweepRuns.WithLabelValues(result).Inc()
	m.sweepDigests.WithLabelValues("sent").Add(float64(report.Sent))
	m.sweepDigests.WithLabelValues("skipped").Add(float64(report.Skipped))
	m.sweepDigests.WithLabelValues("failed").Add(float64(report.Failed))
	m.sweepDuration.Observe(duration.Seconds())
}
