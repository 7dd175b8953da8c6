package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/jbweber/homelab/territoire/internal/logger"
	"github.com/jbweber/homelab/territoire/internal/metrics"
)

// RequestLogger logs one line per request. 5xx responses are logged at
// error level and 4xx at warn.
func RequestLogger(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			kv := []interface{}{
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"remote_ip", r.RemoteAddr,
				"request_id", middleware.GetReqID(r.Context()),
			}
			switch {
			case status >= http.StatusInternalServerError:
				log.Error("request", kv...)
			case status >= http.StatusBadRequest:
				log.Warn("request", kv...)
			default:
				log.Info("request", kv...)
			}
		})
	}
}

// RequestMetrics records the count and duration of requests by route
// pattern, so /api/v0/villes/{id} is a single series.
func RequestMetrics(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)

			route := "unmatched"
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if p := rctx.RoutePattern(); p != "" {
					route = p
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			m.ObserveRequest(r.Method, route, status, time.Since(start))
		})
	}
}
