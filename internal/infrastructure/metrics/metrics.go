package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polarizados_http_requests_total",
		Help: "Total number of HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "polarizados_http_request_duration_seconds",
		Help:    "HTTP request latency by route and method",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	orderTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polarizados_service_order_transitions_total",
		Help: "Service order status transitions by target status",
	}, []string{"to"})

	inspectionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polarizados_inspections_submitted_total",
		Help: "Total number of 360 inspections submitted",
	})

	inspectionPhotosTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polarizados_inspection_photos_total",
		Help: "Total number of inspection photos stored",
	})

	quotesApprovedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "polarizados_quotes_approved_total",
		Help: "Total number of quotes approved by clients",
	})

	notificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "polarizados_notifications_sent_total",
		Help: "Notifications sent by channel and result",
	}, []string{"channel", "result"})
)

// GinMiddleware records request counts and latencies.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}

func RecordOrderTransition(to string) {
	orderTransitionsTotal.WithLabelValues(to).Inc()
}

func RecordInspection(photos int) {
	inspectionsTotal.Inc()
	inspectionPhotosTotal.Add(float64(photos))
}

func RecordQuoteApproved() {
	quotesApprovedTotal.Inc()
}

func RecordNotification(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	notificationsSentTotal.WithLabelValues(channel, result).Inc()
}
