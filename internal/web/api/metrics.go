package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/fieldmark/designer/internal/session"
	"github.com/fieldmark/designer/internal/uispec"
	utilstrings "github.com/fieldmark/designer/internal/util/strings"
)

type metrics struct {
	operations      *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer, sessions *session.Manager) *metrics {
	factory := promauto.With(reg)
	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "designer_sessions_open",
		Help: "Number of open designer sessions",
	}, func() float64 { return float64(sessions.Len()) })

	return &metrics{
		operations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "designer_operations_total",
			Help: "Operations applied to sessions by name and result",
		}, []string{"operation", "result"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "designer_http_request_duration_seconds",
			Help:    "HTTP request latency by route",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14), // 0.5ms to ~4s
		}, []string{"method", "route"}),
	}
}

// observe counts one applied operation. Operation names are recorded in
// snake_case.
func (m *metrics) observe(operation string, err error) {
	m.operations.WithLabelValues(utilstrings.ToSnakeCase(operation), result(err)).Inc()
}

func result(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, uispec.ErrNotFound):
		return "not_found"
	case errors.Is(err, uispec.ErrConflict):
		return "conflict"
	case errors.Is(err, uispec.ErrIntegrity):
		return "integrity"
	case errors.Is(err, uispec.ErrProtected):
		return "protected"
	case errors.Is(err, uispec.ErrInvalid):
		return "invalid"
	default:
		return "error"
	}
}

// instrument records request latency labelled with the matched route pattern
func (m *metrics) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
