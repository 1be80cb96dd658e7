package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "blog_api"

// Outcomes of a request as seen by the guard pipeline.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeInvalid   = "invalid"
	OutcomeForbidden = "forbidden"
	OutcomeNotFound  = "not_found"
	OutcomeThrottled = "throttled"
	OutcomeFailed    = "failed"
	OutcomeOther     = "other"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route template, method, status and outcome.",
		},
		[]string{"route", "method", "status", "outcome"},
	)
	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route template and method.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"route", "method"},
	)
)

func init() { prometheus.MustRegister(requestsTotal, requestDuration) }

// Outcome buckets a response status into the pipeline's terminal states.
func Outcome(status int) string {
	switch {
	case status >= 200 && status < 300:
		return OutcomeCompleted
	case status == http.StatusUnauthorized:
		return OutcomeRejected
	case status == http.StatusBadRequest:
		return OutcomeInvalid
	case status == http.StatusForbidden:
		return OutcomeForbidden
	case status == http.StatusNotFound:
		return OutcomeNotFound
	case status == http.StatusTooManyRequests, status == http.StatusServiceUnavailable:
		return OutcomeThrottled
	case status >= 500:
		return OutcomeFailed
	}
	return OutcomeOther
}

// Metrics labels by route template; unmatched requests share one label.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(status), Outcome(status)).Inc()
		requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}
