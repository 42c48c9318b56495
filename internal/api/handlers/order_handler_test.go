package handlers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muscleoxy/checkout-service/internal/api"
	"github.com/muscleoxy/checkout-service/internal/api/handlers"
	"github.com/muscleoxy/checkout-service/internal/cache"
	"github.com/muscleoxy/checkout-service/internal/config"
	"github.com/muscleoxy/checkout-service/internal/gateway"
	"github.com/muscleoxy/checkout-service/internal/invoice"
	"github.com/muscleoxy/checkout-service/internal/models"
	"github.com/muscleoxy/checkout-service/internal/repository"
	"github.com/muscleoxy/checkout-service/internal/service"
)

const testSecret = "testsecret"

// --- in-memory stand-ins for the pq repos ---

type memProducts map[string]float64

func (m memProducts) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	price, ok := m[id]
	if !ok {
		return nil, nil
	}
	return &models.Product{ID: id, Price: price}, nil
}

type memCoupons map[string]models.Coupon

func (m memCoupons) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	c, ok := m[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type memOrders struct {
	byPayment map[string]*models.Order
}

func (m *memOrders) Insert(ctx context.Context, o *models.Order) error {
	if _, ok := m.byPayment[o.PaymentID]; ok {
		return repository.ErrDuplicatePayment
	}
	m.byPayment[o.PaymentID] = o
	return nil
}

func (m *memOrders) GetByPaymentID(ctx context.Context, paymentID string) (*models.Order, error) {
	return m.byPayment[paymentID], nil
}

func (m *memOrders) MarkInvoiceGenerated(ctx context.Context, orderID string) error {
	for _, o := range m.byPayment {
		if o.ID == orderID {
			o.InvoiceStatus = models.InvoiceGenerated
		}
	}
	return nil
}

type stubGateway struct{}

func (stubGateway) CreateOrder(amountMinor int64, currency, receipt string) (map[string]interface{}, error) {
	return map[string]interface{}{
		"id":       "order_test123",
		"amount":   amountMinor,
		"currency": currency,
		"status":   "created",
	}, nil
}

func newTestServer(t *testing.T, mode config.PricingMode) (http.Handler, *memOrders) {
	t.Helper()

	orders := &memOrders{byPayment: map[string]*models.Order{}}
	renderer := &invoice.Renderer{Dir: t.TempDir()}
	verifier := gateway.New("rzp_test_key", testSecret)

	pricing := service.NewPricingService(
		memProducts{"p1": 499},
		memCoupons{"SAVE10": {Code: "SAVE10", Type: models.DiscountPercentage, Value: 10}},
		stubGateway{},
		mode,
	)
	verification := service.NewVerificationService(
		orders, verifier, renderer, cache.NewReplayCache(), "http://localhost:8080", testSecret,
	)

	router := api.NewRouter(
		handlers.NewOrderHandler(pricing, verification),
		handlers.NewInvoiceHandler(verification, renderer.Dir),
	)
	return router, orders
}

func postJSON(t *testing.T, h http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func signPayment(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestCreateOrderEndpoint(t *testing.T) {
	h, _ := newTestServer(t, config.PricingCatalog)

	rec := postJSON(t, h, "/create-order", map[string]interface{}{
		"productId":  "p1",
		"quantity":   2,
		"couponCode": "SAVE10",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Order       map[string]interface{} `json:"order"`
		FinalAmount float64                `json:"finalAmount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, float64(898), resp.FinalAmount)
	assert.Equal(t, "order_test123", resp.Order["id"])
	assert.Equal(t, float64(89800), resp.Order["amount"])
}

func TestCreateOrderProductNotFound(t *testing.T) {
	h, _ := newTestServer(t, config.PricingCatalog)

	rec := postJSON(t, h, "/create-order", map[string]interface{}{"productId": "ghost"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, rec.Body.String())
}

func TestCreateOrderInvalidPrice(t *testing.T) {
	h, _ := newTestServer(t, config.PricingDirect)

	rec := postJSON(t, h, "/create-order", map[string]interface{}{"quantity": 2})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid price"}`, rec.Body.String())
}

func verifyBody(signature string) map[string]interface{} {
	return map[string]interface{}{
		"razorpay_order_id":   "order_abc",
		"razorpay_payment_id": "pay_def",
		"razorpay_signature":  signature,
		"productId":           "p1",
		"quantity":            2,
		"couponCode":          "SAVE10",
		"finalAmount":         898,
		"customerName":        "Asha",
		"customerEmail":       "asha@example.com",
	}
}

func TestVerifyPaymentEndpoint(t *testing.T) {
	h, orders := newTestServer(t, config.PricingCatalog)

	rec := postJSON(t, h, "/verify-payment", verifyBody(signPayment("order_abc", "pay_def")))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool   `json:"success"`
		InvoiceURL string `json:"invoiceUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Contains(t, resp.InvoiceURL, "/invoices/invoice-")
	require.Len(t, orders.byPayment, 1)
}

func TestVerifyPaymentForgedSignature(t *testing.T) {
	h, orders := newTestServer(t, config.PricingCatalog)

	rec := postJSON(t, h, "/verify-payment", verifyBody(signPayment("order_abc", "pay_forged")))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"success":false,"message":"Invalid signature"}`, rec.Body.String())
	assert.Empty(t, orders.byPayment, "no record may be created on mismatch")
}

func TestInvoiceDownloadRequiresToken(t *testing.T) {
	h, _ := newTestServer(t, config.PricingCatalog)

	// create the invoice through the real verification flow
	rec := postJSON(t, h, "/verify-payment", verifyBody(signPayment("order_abc", "pay_def")))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		InvoiceURL string `json:"invoiceUrl"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	path := strings.TrimPrefix(resp.InvoiceURL, "http://localhost:8080")

	// with token
	req := httptest.NewRequest(http.MethodGet, path, nil)
	got := httptest.NewRecorder()
	h.ServeHTTP(got, req)
	require.Equal(t, http.StatusOK, got.Code)
	assert.Greater(t, got.Body.Len(), 0)

	// without token
	bare := strings.Split(path, "?")[0]
	req = httptest.NewRequest(http.MethodGet, bare, nil)
	got = httptest.NewRecorder()
	h.ServeHTTP(got, req)
	assert.Equal(t, http.StatusNotFound, got.Code)

	// with a token for a different order
	req = httptest.NewRequest(http.MethodGet, bare+"?token=bogus", nil)
	got = httptest.NewRecorder()
	h.ServeHTTP(got, req)
	assert.Equal(t, http.StatusNotFound, got.Code)
}

func TestLivenessEndpoints(t *testing.T) {
	h, _ := newTestServer(t, config.PricingCatalog)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Server running", rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
