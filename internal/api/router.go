package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/muscleoxy/checkout-service/internal/api/handlers"
)

// NewRouter builds the HTTP router for the checkout service.
func NewRouter(orders *handlers.OrderHandler, invoices *handlers.InvoiceHandler) http.Handler {
	r := chi.NewRouter()

	r.Post("/create-order", orders.CreateOrder)
	r.Post("/verify-payment", orders.VerifyPayment)

	// invoice downloads are token-gated, never a public directory
	r.Get("/invoices/{file}", invoices.Download)

	r.Handle("/metrics", promhttp.Handler())

	// liveness
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Server running"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return r
}
