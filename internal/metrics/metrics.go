package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldshop_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "goldshop_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldshop_login_attempts_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	InvoicesCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldshop_invoices_created_total",
			Help: "Invoices created by type and material",
		},
		[]string{"invoice_type", "material"},
	)

	TransferDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "goldshop_transfer_decisions_total",
			Help: "Transfer approvals and rejections by outcome",
		},
		[]string{"outcome"},
	)
)

// HTTPMetrics records request counts and latency per route.
func HTTPMetrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		path := c.Route().Path
		method := c.Method()
		code := strconv.Itoa(status)

		HTTPRequestsTotal.WithLabelValues(method, path, code).Inc()
		HTTPRequestDuration.WithLabelValues(method, path, code).Observe(time.Since(start).Seconds())

		return err
	}
}

// RecordInvoiceCreated tags the invoice counter.
func RecordInvoiceCreated(invoiceType, material string) {
	InvoicesCreated.WithLabelValues(invoiceType, material).Inc()
}

// RecordTransferDecision tags the transfer counter with Approved or Rejected.
func RecordTransferDecision(outcome string) {
	TransferDecisions.WithLabelValues(outcome).Inc()
}
