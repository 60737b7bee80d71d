// Package metrics exposes prometheus collectors for the hello service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Greeting sources, used as the "source" label of hello_greetings_total
const (
	SourceDefault = "default"
	SourcePath    = "path"
	SourceBody    = "body"
)

const unmatchedRoute = "unmatched"

var (
	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "status"})

	requestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency distributions.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	greetingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "hello_greetings_total",
		Help: "Greetings served, by where the name came from.",
	}, []string{"source"})
)

func init() {
	prometheus.MustRegister(requestsTotal, requestDuration, greetingsTotal)
}

// GreetingServed records one greeting built from the given source
func GreetingServed(source string) {
	greetingsTotal.WithLabelValues(source).Inc()
}

// Middleware records request counts and latency per matched route.
// Requests that match no route are grouped under "unmatched" to keep label cardinality bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		status := strconv.Itoa(c.Writer.Status())
		requestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the default registry in the prometheus text format
func Handler() http.Handler {
	return promhttp.Handler()
}
