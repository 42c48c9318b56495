package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muscleoxy/checkout-service/internal/logger"
	"github.com/muscleoxy/checkout-service/internal/service"
)

// --- Request DTOs ---

type CreateOrderRequest struct {
	ProductID  string  `json:"productId,omitempty"`
	Price      float64 `json:"price,omitempty"`
	Quantity   float64 `json:"quantity,omitempty"`
	CouponCode string  `json:"couponCode,omitempty"`
}

type VerifyPaymentRequest struct {
	RazorpayOrderID   string  `json:"razorpay_order_id"`
	RazorpayPaymentID string  `json:"razorpay_payment_id"`
	RazorpaySignature string  `json:"razorpay_signature"`
	ProductID         string  `json:"productId,omitempty"`
	Quantity          int     `json:"quantity,omitempty"`
	CouponCode        string  `json:"couponCode,omitempty"`
	FinalAmount       float64 `json:"finalAmount"`
	CustomerName      string  `json:"customerName"`
	CustomerEmail     string  `json:"customerEmail"`
}

// --- Handler struct & constructor ---

type OrderHandler struct {
	pricing      *service.PricingService
	verification *service.VerificationService
}

func NewOrderHandler(pricing *service.PricingService, verification *service.VerificationService) *OrderHandler {
	return &OrderHandler{
		pricing:      pricing,
		verification: verification,
	}
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// --- Handlers ---

// CreateOrder handles POST /create-order.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	quote, err := h.pricing.CreateOrder(r.Context(), service.QuoteRequest{
		ProductID:  req.ProductID,
		Price:      req.Price,
		Quantity:   req.Quantity,
		CouponCode: req.CouponCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Product not found"})
		case errors.Is(err, service.ErrInvalidPrice):
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid price"})
		default:
			logger.Error("create order", logger.Fields{"err": err.Error()})
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Order failed"})
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":       quote.GatewayOrder,
		"finalAmount": quote.FinalAmount,
	})
}

// VerifyPayment handles POST /verify-payment.
func (h *OrderHandler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	var req VerifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid_body"})
		return
	}

	res, err := h.verification.VerifyPayment(r.Context(), service.VerifyRequest{
		GatewayOrderID: req.RazorpayOrderID,
		PaymentID:      req.RazorpayPaymentID,
		Signature:      req.RazorpaySignature,
		ProductID:      req.ProductID,
		Quantity:       req.Quantity,
		CouponCode:     req.CouponCode,
		FinalAmount:    req.FinalAmount,
		CustomerName:   req.CustomerName,
		CustomerEmail:  req.CustomerEmail,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"success": false,
				"message": "Invalid signature",
			})
			return
		}
		logger.Error("verify payment", logger.Fields{"err": err.Error()})
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Verification failed"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"invoiceUrl": res.InvoiceURL,
	})
}
