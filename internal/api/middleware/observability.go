package middleware

import (
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zatekoja/coachplan/internal/infrastructure/observability"
)

// ObservabilityMiddleware traces each request and records request metrics by route pattern
func ObservabilityMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := observability.StartSpan(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			req := r.WithContext(ctx)

			start := time.Now()
			next.ServeHTTP(rw, req)
			duration := time.Since(start)

			// Pattern is filled in by the mux on the request it dispatched.
			route := req.Pattern
			if route == "" {
				route = r.URL.Path
			}

			observability.SetSpanAttributes(span,
				attribute.String("http.method", r.Method),
				attribute.String("http.route", route),
				attribute.Int("http.status_code", rw.statusCode),
			)
			if rw.statusCode >= http.StatusInternalServerError {
				observability.RecordError(span, fmt.Errorf("%s %s returned %d", r.Method, route, rw.statusCode))
			}
			observability.RecordRequestMetric(ctx, metrics, r.Method, route, rw.statusCode, duration)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	rw.statusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}
