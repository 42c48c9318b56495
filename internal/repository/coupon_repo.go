package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/muscleoxy/checkout-service/internal/models"
)

type CouponRepo struct {
	db *sql.DB
}

func NewCouponRepo(db *sql.DB) *CouponRepo {
	return &CouponRepo{db: db}
}

// GetCoupon looks a coupon up by code, fresh on every call. Returns
// (nil, nil) when the code does not resolve; the pricing service
// silently ignores unknown codes.
func (r *CouponRepo) GetCoupon(ctx context.Context, code string) (*models.Coupon, error) {
	var c models.Coupon
	var rawType string

	query := `
		SELECT code, discount_type, discount_value, created_at, updated_at
		FROM coupons
		WHERE code = $1;
	`

	err := r.db.QueryRowContext(ctx, query, code).Scan(
		&c.Code,
		&rawType,
		&c.Value,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	c.Type = models.ParseDiscountType(rawType)
	return &c, nil
}
