package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type httpMetrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
	inFlight metric.Int64UpDownCounter
	denied   metric.Int64Counter
}

func newHTTPMetrics(meter metric.Meter, namespace string) (*httpMetrics, error) {
	requests, errRequests := meter.Int64Counter(
		fmt.Sprintf("%s_http_requests_total", namespace),
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	duration, errDuration := meter.Float64Histogram(
		fmt.Sprintf("%s_http_request_duration_seconds", namespace),
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	inFlight, errInFlight := meter.Int64UpDownCounter(
		fmt.Sprintf("%s_http_requests_in_flight", namespace),
		metric.WithDescription("HTTP requests currently being served"),
		metric.WithUnit("{request}"),
	)
	denied, errDenied := meter.Int64Counter(
		fmt.Sprintf("%s_http_denied_total", namespace),
		metric.WithDescription("Requests refused with 403 Forbidden or 429 Too Many Requests"),
		metric.WithUnit("{request}"),
	)
	if err := errors.Join(errRequests, errDuration, errInFlight, errDenied); err != nil {
		return nil, err
	}

	return &httpMetrics{
		requests: requests,
		duration: duration,
		inFlight: inFlight,
		denied:   denied,
	}, nil
}

// HTTPMetricsMiddleware returns a Gin middleware that records request count, duration
// and concurrency labelled by method, route pattern and status code. Responses that
// refuse access (bad credentials, invalid token, missing permission, login throttling)
// are also counted on a dedicated denied counter so they can be alerted on.
// When the instruments cannot be created the middleware only calls the next handler.
func HTTPMetricsMiddleware(meterProvider metric.MeterProvider, namespace string) gin.HandlerFunc {
	m, err := newHTTPMetrics(meterProvider.Meter(namespace), namespace)
	if err != nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		ctx := c.Request.Context()
		start := time.Now()

		m.inFlight.Add(ctx, 1)
		defer m.inFlight.Add(ctx, -1)

		c.Next()

		status := c.Writer.Status()
		attrs := metric.WithAttributes(
			attribute.String("method", c.Request.Method),
			attribute.String("path", sanitizePath(c.FullPath())),
			attribute.String("status_code", strconv.Itoa(status)),
		)

		m.requests.Add(ctx, 1, attrs)
		m.duration.Record(ctx, time.Since(start).Seconds(), attrs)
		if isDenied(status) {
			m.denied.Add(ctx, 1, attrs)
		}
	}
}

func isDenied(status int) bool {
	return status == http.StatusForbidden || status == http.StatusTooManyRequests
}

// sanitizePath keeps the route pattern so label cardinality stays bounded.
// Unmatched routes share the "unknown" label.
func sanitizePath(fullPath string) string {
	if fullPath == "" {
		return "unknown"
	}
	return fullPath
}
