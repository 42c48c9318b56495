package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/muscleoxy/checkout-service/internal/logger"
	"github.com/muscleoxy/checkout-service/internal/metrics"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request", logger.Fields{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rec.status,
			"duration_ms": time.Since(start).Milliseconds(),
		})
	})
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		path := metricPath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(path, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(path, r.Method).Observe(time.Since(start).Seconds())
	})
}

// metricPath keeps label cardinality bounded: every invoice download
// counts under one label.
func metricPath(p string) string {
	if strings.HasPrefix(p, "/invoices/") {
		return "/invoices/{file}"
	}
	return p
}
