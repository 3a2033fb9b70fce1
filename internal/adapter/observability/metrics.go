package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTPRequestsTotal counts requests by route, method and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests processed.",
		}, []string{"route", "method", "status"},
	)
	// HTTPRequestDuration observes request latency by route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"},
	)
	// AIRequestsTotal counts generative calls by kind and outcome.
	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total generative-text calls.",
		}, []string{"kind", "outcome"},
	)
	// AIRequestDuration observes generative call latency by kind.
	AIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "Generative-text call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind"},
	)
	// SessionsStartedTotal counts sessions by flow.
	SessionsStartedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_started_total",
			Help: "Conversational sessions started.",
		}, []string{"flow"},
	)
	// SessionsCompletedTotal counts sessions reaching completion by flow.
	SessionsCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sessions_completed_total",
			Help: "Conversational sessions that reached completion.",
		}, []string{"flow"},
	)
	// TurnsTotal counts processed turns by flow.
	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_turns_total",
			Help: "Interview turns processed.",
		}, []string{"flow"},
	)
	// MatchScoreHistogram observes match scores produced by the engine.
	MatchScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_score",
			Help:    "Distribution of match scores for recommended listings.",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)
)

// InitMetrics registers all metrics. Call once per process.
func InitMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		AIRequestsTotal,
		AIRequestDuration,
		SessionsStartedTotal,
		SessionsCompletedTotal,
		TurnsTotal,
		MatchScoreHistogram,
	)
}

// statusWriter captures the response status for metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// HTTPMetricsMiddleware records request counts and latency per chi route.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(sw.status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}

// ObserveAICall records one generative call.
func ObserveAICall(kind string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	AIRequestsTotal.WithLabelValues(kind, outcome).Inc()
	AIRequestDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}
