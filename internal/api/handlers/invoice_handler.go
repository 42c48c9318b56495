package handlers

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/muscleoxy/checkout-service/internal/invoice"
	"github.com/muscleoxy/checkout-service/internal/service"
)

// InvoiceHandler serves rendered invoice PDFs. Every download needs a
// token scoped to the invoice's order; there is no directory listing
// and no unauthenticated access.
type InvoiceHandler struct {
	verification *service.VerificationService
	dir          string
}

func NewInvoiceHandler(verification *service.VerificationService, dir string) *InvoiceHandler {
	return &InvoiceHandler{
		verification: verification,
		dir:          dir,
	}
}

// Download handles GET /invoices/{file}.
func (h *InvoiceHandler) Download(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "file")
	orderID, ok := invoice.OrderIDFromFileName(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
		return
	}

	token := r.URL.Query().Get("token")
	if token == "" {
		if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	if !h.verification.CheckInvoiceToken(token, orderID) {
		// deliberately indistinguishable from a missing invoice
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "invoice not found"})
		return
	}

	http.ServeFile(w, r, filepath.Join(h.dir, invoice.FileName(orderID)))
}
