package observability

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	AIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ai_requests_total",
			Help: "Total number of AI scoring requests by outcome",
		},
		[]string{"outcome"},
	)
	AIRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ai_request_duration_seconds",
			Help:    "AI scoring request duration in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60},
		},
	)

	SiteFetchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_fetches_total",
			Help: "Total number of website fetches by outcome (ok, error, skipped)",
		},
		[]string{"outcome"},
	)

	NotifyTasksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "notify_tasks_total",
			Help: "Total number of notification tasks by outcome (enqueued, sent, duplicate, failed)",
		},
		[]string{"outcome"},
	)

	// Score distributions from completed analyses.
	OverallScoreHistogram = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "assessment_overall_score",
			Help:    "Distribution of overall scores ([0,100])",
			Buckets: []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
		},
	)
)

var registerOnce sync.Once

// InitMetrics registers all collectors once per process.
func InitMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(AIRequestsTotal)
		prometheus.MustRegister(AIRequestDuration)
		prometheus.MustRegister(SiteFetchesTotal)
		prometheus.MustRegister(NotifyTasksTotal)
		prometheus.MustRegister(OverallScoreHistogram)
	})
}

// HTTPMetricsMiddleware records Prometheus metrics for each request.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		dur := time.Since(start).Seconds()
		// Route pattern may be unavailable outside chi router; guard nil
		var route string
		if rc := chi.RouteContext(r.Context()); rc != nil {
			route = rc.RoutePattern()
		}
		if route == "" {
			route = r.URL.Path
		}
		method := r.Method
		status := ww.Status()
		HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(dur)
	})
}

// ObserveAnalysis records the overall score from a completed analysis.
func ObserveAnalysis(overallScore int) {
	if overallScore >= 0 && overallScore <= 100 {
		OverallScoreHistogram.Observe(float64(overallScore))
	}
}
