package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muscleoxy/checkout-service/internal/config"
	"github.com/muscleoxy/checkout-service/internal/models"
)

type fakeProducts map[string]float64

func (f fakeProducts) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	price, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &models.Product{ID: id, Price: price}, nil
}

type fakeCoupons map[string]models.Coupon

func (f fakeCoupons) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	c, ok := f[code]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type fakeGateway struct {
	lastAmount   int64
	lastCurrency string
	calls        int
	fail         bool
}

func (g *fakeGateway) CreateOrder(amountMinor int64, currency, receipt string) (map[string]interface{}, error) {
	g.calls++
	if g.fail {
		return nil, errors.New("gateway down")
	}
	g.lastAmount = amountMinor
	g.lastCurrency = currency
	return map[string]interface{}{
		"id":       "order_test123",
		"amount":   amountMinor,
		"currency": currency,
	}, nil
}

func testCoupons() fakeCoupons {
	return fakeCoupons{
		"SAVE10":  {Code: "SAVE10", Type: models.DiscountPercentage, Value: 10},
		"FLAT100": {Code: "FLAT100", Type: models.DiscountFlat, Value: 100},
		"FLAT50":  {Code: "FLAT50", Type: models.DiscountFlat, Value: 50},
	}
}

func TestCreateOrderCatalogMode(t *testing.T) {
	tests := []struct {
		name        string
		req         QuoteRequest
		wantAmount  float64
		wantGateway int64
	}{
		{
			name:        "no coupon",
			req:         QuoteRequest{ProductID: "p1", Quantity: 2},
			wantAmount:  998,
			wantGateway: 99800,
		},
		{
			name:        "percentage coupon",
			req:         QuoteRequest{ProductID: "p1", Quantity: 2, CouponCode: "SAVE10"},
			wantAmount:  898,
			wantGateway: 89800,
		},
		{
			name:        "flat coupon clamps to minimum charge",
			req:         QuoteRequest{ProductID: "cheap", Quantity: 1, CouponCode: "FLAT100"},
			wantAmount:  1,
			wantGateway: 100,
		},
		{
			name:        "floor law",
			req:         QuoteRequest{ProductID: "ten", Quantity: 1, CouponCode: "FLAT50"},
			wantAmount:  1,
			wantGateway: 100,
		},
		{
			name:        "unknown coupon silently ignored",
			req:         QuoteRequest{ProductID: "p1", Quantity: 1, CouponCode: "NOPE"},
			wantAmount:  499,
			wantGateway: 49900,
		},
		{
			name:        "quantity defaults to one",
			req:         QuoteRequest{ProductID: "p1"},
			wantAmount:  499,
			wantGateway: 49900,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeGateway{}
			svc := NewPricingService(
				fakeProducts{"p1": 499, "cheap": 5, "ten": 10},
				testCoupons(),
				gw,
				config.PricingCatalog,
			)

			quote, err := svc.CreateOrder(context.Background(), tc.req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantAmount, quote.FinalAmount)
			assert.Equal(t, tc.wantGateway, gw.lastAmount)
			assert.Equal(t, "INR", gw.lastCurrency)
			assert.Equal(t, "order_test123", quote.GatewayOrder["id"])
		})
	}
}

func TestCreateOrderProductNotFound(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPricingService(fakeProducts{}, testCoupons(), gw, config.PricingCatalog)

	_, err := svc.CreateOrder(context.Background(), QuoteRequest{ProductID: "ghost", Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Zero(t, gw.calls, "gateway must not be called for an unknown product")
}

func TestCreateOrderDirectMode(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPricingService(fakeProducts{}, testCoupons(), gw, config.PricingDirect)

	quote, err := svc.CreateOrder(context.Background(), QuoteRequest{Price: 499, Quantity: 2, CouponCode: "SAVE10"})
	require.NoError(t, err)
	assert.Equal(t, float64(898), quote.FinalAmount)
	assert.Equal(t, int64(89800), gw.lastAmount)

	_, err = svc.CreateOrder(context.Background(), QuoteRequest{Price: 0, Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidPrice)

	_, err = svc.CreateOrder(context.Background(), QuoteRequest{Price: -3, Quantity: 1})
	require.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCreateOrderRoundsFractionalTotals(t *testing.T) {
	gw := &fakeGateway{}
	svc := NewPricingService(fakeProducts{}, testCoupons(), gw, config.PricingDirect)

	// 19.99 * 3 = 59.97 -> 60
	quote, err := svc.CreateOrder(context.Background(), QuoteRequest{Price: 19.99, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, float64(60), quote.FinalAmount)
	assert.Equal(t, int64(6000), gw.lastAmount)
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	gw := &fakeGateway{fail: true}
	svc := NewPricingService(fakeProducts{"p1": 499}, testCoupons(), gw, config.PricingCatalog)

	_, err := svc.CreateOrder(context.Background(), QuoteRequest{ProductID: "p1", Quantity: 1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProductNotFound)
	assert.NotErrorIs(t, err, ErrInvalidPrice)
}
