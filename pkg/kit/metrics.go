package kit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	labelService = "service"
	labelMethod  = "method"
	labelPath    = "path"
	labelStatus  = "status"
	labelPool    = "pool"
	labelReason  = "reason"
	labelOutcome = "outcome"

	defaultStatusCode = http.StatusOK
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{labelService, labelMethod, labelPath, labelStatus},
		),
		Latency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP latency",
			},
			[]string{labelService, labelMethod, labelPath},
		),
	}

	reg.MustRegister(m.Requests, m.Latency)
	return m
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (m *Metrics) Middleware(service string, pathLabel func(*http.Request) string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sw := &statusWriter{
				ResponseWriter: w,
				status:         defaultStatusCode,
			}

			start := time.Now()
			next.ServeHTTP(sw, r)

			path := pathLabel(r)
			m.Latency.WithLabelValues(service, r.Method, path).
				Observe(time.Since(start).Seconds())

			m.Requests.WithLabelValues(service, r.Method, path, strconv.Itoa(sw.status)).
				Inc()
		})
	}
}

// PoolMetrics tracks enqueue outcomes and task execution of a WorkerPool.
// A nil *PoolMetrics is valid and records nothing.
type PoolMetrics struct {
	Submitted  *prometheus.CounterVec
	Rejected   *prometheus.CounterVec
	Completed  *prometheus.CounterVec
	QueueDepth *prometheus.GaugeVec
}

func NewPoolMetrics(reg *prometheus.Registry) *PoolMetrics {
	m := &PoolMetrics{
		Submitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_pool_submitted_total",
				Help: "Tasks accepted onto the queue",
			},
			[]string{labelPool},
		),
		Rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_pool_rejected_total",
				Help: "Tasks refused at enqueue time",
			},
			[]string{labelPool, labelReason},
		),
		Completed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "task_pool_completed_total",
				Help: "Tasks that finished running",
			},
			[]string{labelPool, labelOutcome},
		),
		QueueDepth: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "task_pool_queue_depth",
				Help: "Tasks waiting for a worker",
			},
			[]string{labelPool},
		),
	}

	reg.MustRegister(m.Submitted, m.Rejected, m.Completed, m.QueueDepth)
	return m
}

func (m *PoolMetrics) submitted(pool string, depth int) {
	if m == nil {
		return
	}
	m.Submitted.WithLabelValues(pool).Inc()
	m.QueueDepth.WithLabelValues(pool).Set(float64(depth))
}

func (m *PoolMetrics) rejected(pool, reason string) {
	if m == nil {
		return
	}
	m.Rejected.WithLabelValues(pool, reason).Inc()
}

func (m *PoolMetrics) dequeued(pool string, depth int) {
	if m == nil {
		return
	}
	m.QueueDepth.WithLabelValues(pool).Set(float64(depth))
}

func (m *PoolMetrics) completed(pool, outcome string) {
	if m == nil {
		return
	}
	m.Completed.WithLabelValues(pool, outcome).Inc()
}
