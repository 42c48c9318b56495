package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/muscleoxy/checkout-service/internal/cache"
	"github.com/muscleoxy/checkout-service/internal/invoice"
	"github.com/muscleoxy/checkout-service/internal/metrics"
	"github.com/muscleoxy/checkout-service/internal/models"
	"github.com/muscleoxy/checkout-service/internal/repository"
)

type OrderRepo interface {
	Insert(ctx context.Context, o *models.Order) error
	GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error)
	MarkInvoiceGenerated(ctx context.Context, orderID string) error
}

type SignatureVerifier interface {
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

type InvoiceRenderer interface {
	Render(o *models.Order) (string, error)
}

type VerifyRequest struct {
	GatewayOrderID string
	PaymentID      string
	Signature      string
	ProductID      string
	Quantity       int
	CouponCode     string
	FinalAmount    float64
	CustomerName   string
	CustomerEmail  string
}

type VerifyResult struct {
	InvoiceURL string
}

type VerificationService struct {
	orders      OrderRepo
	verifier    SignatureVerifier
	renderer    InvoiceRenderer
	replays     *cache.ReplayCache
	baseURL     string
	tokenSecret string
}

func NewVerificationService(orders OrderRepo, verifier SignatureVerifier, renderer InvoiceRenderer, replays *cache.ReplayCache, baseURL, tokenSecret string) *VerificationService {
	return &VerificationService{
		orders:      orders,
		verifier:    verifier,
		renderer:    renderer,
		replays:     replays,
		baseURL:     baseURL,
		tokenSecret: tokenSecret,
	}
}

// VerifyPayment checks the gateway signature and, on match, records
// the order and renders its invoice. An order record exists if and
// only if the signature verified.
//
// A payment id that was already recorded is treated as a replay: the
// original invoice reference is returned and nothing new is written.
func (s *VerificationService) VerifyPayment(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	if !s.verifier.VerifyPaymentSignature(req.GatewayOrderID, req.PaymentID, req.Signature) {
		metrics.SignatureMismatchTotal.Inc()
		return nil, ErrInvalidSignature
	}

	if url, ok := s.replays.Get(req.PaymentID); ok {
		metrics.PaymentReplaysTotal.Inc()
		return &VerifyResult{InvoiceURL: url}, nil
	}
	existing, err := s.orders.GetByPaymentID(ctx, req.PaymentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.replay(req.PaymentID, existing.ID)
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	o := &models.Order{
		ID:            uuid.NewString(),
		ProductID:     optional(req.ProductID),
		Quantity:      qty,
		CouponCode:    optional(req.CouponCode),
		Amount:        req.FinalAmount,
		PaymentID:     req.PaymentID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		InvoiceStatus: models.InvoicePending,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.orders.Insert(ctx, o); err != nil {
		if errors.Is(err, repository.ErrDuplicatePayment) {
			// lost the race against a concurrent call for the same payment
			winner, gerr := s.orders.GetByPaymentID(ctx, req.PaymentID)
			if gerr == nil && winner != nil {
				return s.replay(req.PaymentID, winner.ID)
			}
		}
		return nil, err
	}
	metrics.PaymentsVerifiedTotal.Inc()

	if _, err := s.renderer.Render(o); err != nil {
		// record stays invoice-pending; the retry worker sweeps it up
		metrics.InvoiceFailuresTotal.Inc()
		return nil, err
	}
	if err := s.orders.MarkInvoiceGenerated(ctx, o.ID); err != nil {
		return nil, err
	}
	metrics.InvoicesGeneratedTotal.Inc()

	url, err := s.invoiceURL(o.ID)
	if err != nil {
		return nil, err
	}
	s.replays.Set(req.PaymentID, url)
	return &VerifyResult{InvoiceURL: url}, nil
}

// CheckInvoiceToken reports whether token grants access to orderID's
// invoice.
func (s *VerificationService) CheckInvoiceToken(token, orderID string) bool {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.tokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}
	id, _ := claims["order_id"].(string)
	return id != "" && id == orderID
}

func (s *VerificationService) replay(paymentID, orderID string) (*VerifyResult, error) {
	metrics.PaymentReplaysTotal.Inc()
	url, err := s.invoiceURL(orderID)
	if err != nil {
		return nil, err
	}
	s.replays.Set(paymentID, url)
	return &VerifyResult{InvoiceURL: url}, nil
}

func (s *VerificationService) invoiceURL(orderID string) (string, error) {
	token, err := s.issueToken(orderID)
	if err != nil {
		return "", err
	}
	return s.baseURL + "/invoices/" + invoice.FileName(orderID) + "?token=" + token, nil
}

func (s *VerificationService) issueToken(orderID string) (string, error) {
	claims := jwt.MapClaims{
		"order_id": orderID,
		"exp":      time.Now().Add(30 * 24 * time.Hour).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.tokenSecret))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
