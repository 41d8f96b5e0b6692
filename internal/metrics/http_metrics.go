package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestCounter counts all HTTP requests with labels.
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDurationHistogram records request duration in seconds.
	RequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// StatusCategoryCounter counts responses by status class.
	StatusCategoryCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Total number of responses by status category (2xx, 4xx, 5xx)",
		},
		[]string{"category", "method", "path"},
	)
)

func init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDurationHistogram)
	prometheus.MustRegister(StatusCategoryCounter)
}

// Middleware records request count, duration and status category for
// every handled request. Route path (not raw URL) is used as the label
// to keep cardinality bounded.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		method := c.Method()
		path := c.Route().Path
		statusStr := strconv.Itoa(status)

		RequestCounter.WithLabelValues(method, path, statusStr).Inc()
		RequestDurationHistogram.WithLabelValues(method, path, statusStr).Observe(time.Since(start).Seconds())

		category := ""
		switch {
		case status >= 200 && status < 300:
			category = "2xx"
		case status >= 400 && status < 500:
			category = "4xx"
		case status >= 500 && status < 600:
			category = "5xx"
		}
		if category != "" {
			StatusCategoryCounter.WithLabelValues(category, method, path).Inc()
		}

		return err
	}
}

// Handler exposes the Prometheus scrape endpoint as a Fiber handler.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
