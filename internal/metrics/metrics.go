package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the order and payment flow.
var (
	OrdersCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of gateway orders created",
		},
	)

	OrderFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_failures_total",
			Help: "Total number of failed order creations",
		},
	)

	PaymentsVerifiedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_verified_total",
			Help: "Total number of successfully verified payments",
		},
	)

	SignatureMismatchTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_signature_mismatch_total",
			Help: "Total number of payment callbacks with a bad signature",
		},
	)

	PaymentReplaysTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_replays_total",
			Help: "Total number of verification calls replayed for an already-recorded payment",
		},
	)

	InvoicesGeneratedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invoices_generated_total",
			Help: "Total number of invoice documents written",
		},
	)

	InvoiceFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invoice_failures_total",
			Help: "Total number of invoice rendering failures",
		},
	)

	GatewayOrderDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gateway_order_duration_seconds",
			Help:    "Duration of payment-gateway order creation calls",
			Buckets: prometheus.DefBuckets,
		},
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"path", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(
		OrdersCreatedTotal,
		OrderFailuresTotal,
		PaymentsVerifiedTotal,
		SignatureMismatchTotal,
		PaymentReplaysTotal,
		InvoicesGeneratedTotal,
		InvoiceFailuresTotal,
		GatewayOrderDuration,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
