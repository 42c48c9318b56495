package gateway

import (
	"fmt"
	"time"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/muscleoxy/checkout-service/internal/metrics"
)

// Client wraps the Razorpay SDK. The SDK returns order objects as
// untyped maps; those are passed through to the API response as-is,
// matching what the gateway sends.
type Client struct {
	api       *razorpay.Client
	keySecret string
}

func New(keyID, keySecret string) *Client {
	return &Client{
		api:       razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

// CreateOrder asks the gateway for an order. amountMinor is in minor
// currency units (hundredths).
func (c *Client) CreateOrder(amountMinor int64, currency, receipt string) (map[string]interface{}, error) {
	data := map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}

	start := time.Now()
	order, err := c.api.Order.Create(data, nil)
	metrics.GatewayOrderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("gateway order create: %w", err)
	}
	return order, nil
}

// VerifyPaymentSignature checks the callback signature against the
// configured key secret.
func (c *Client) VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	return VerifySignature(orderID, paymentID, signature, c.keySecret)
}
