package service

import (
	"context"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/muscleoxy/checkout-service/internal/config"
	"github.com/muscleoxy/checkout-service/internal/metrics"
	"github.com/muscleoxy/checkout-service/internal/models"
)

// Repos and gateway the pricing flow needs (interfaces to allow mocking).
type ProductRepo interface {
	GetProduct(ctx context.Context, id string) (*models.Product, error)
}

type CouponRepo interface {
	GetCoupon(ctx context.Context, code string) (*models.Coupon, error)
}

type Gateway interface {
	CreateOrder(amountMinor int64, currency, receipt string) (map[string]interface{}, error)
}

type QuoteRequest struct {
	ProductID  string
	Price      float64
	Quantity   float64
	CouponCode string
}

type Quote struct {
	FinalAmount  float64
	GatewayOrder map[string]interface{}
}

type PricingService struct {
	products ProductRepo
	coupons  CouponRepo
	gateway  Gateway
	mode     config.PricingMode
}

func NewPricingService(products ProductRepo, coupons CouponRepo, gw Gateway, mode config.PricingMode) *PricingService {
	return &PricingService{
		products: products,
		coupons:  coupons,
		gateway:  gw,
		mode:     mode,
	}
}

// CreateOrder computes the chargeable total and requests a gateway
// order for it.
//
// The total is price × quantity, discounted by the coupon if the code
// resolves (unknown codes are ignored), rounded to the nearest whole
// currency unit, and clamped so the charge is never below 1. The
// gateway is asked for the amount in minor units (hundredths); the
// returned FinalAmount stays in major units.
func (s *PricingService) CreateOrder(ctx context.Context, req QuoteRequest) (*Quote, error) {
	ctx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()

	price := req.Price
	if s.mode == config.PricingCatalog {
		p, err := s.products.GetProduct(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, ErrProductNotFound
		}
		price = p.Price
	} else if price <= 0 {
		return nil, ErrInvalidPrice
	}

	qty := req.Quantity
	if qty == 0 {
		qty = 1
	}
	total := price * qty

	if req.CouponCode != "" {
		c, err := s.coupons.GetCoupon(ctx, req.CouponCode)
		if err != nil {
			return nil, err
		}
		if c != nil {
			total = c.Apply(total)
		}
	}

	total = math.Round(total)
	if total < 1 {
		total = 1
	}

	order, err := s.gateway.CreateOrder(int64(total*100), "INR", "rcpt-"+uuid.NewString())
	if err != nil {
		metrics.OrderFailuresTotal.Inc()
		return nil, err
	}
	metrics.OrdersCreatedTotal.Inc()

	return &Quote{
		FinalAmount:  total,
		GatewayOrder: order,
	}, nil
}
