package models

import "time"

type DiscountType int

const (
	DiscountNone DiscountType = iota
	DiscountPercentage
	DiscountFlat
)

// ParseDiscountType normalizes the stored discount type string. Older
// coupon records use "percent" where newer ones use "percentage"; both
// map to the same rule. Anything unrecognized discounts nothing.
func ParseDiscountType(s string) DiscountType {
	switch s {
	case "percentage", "percent":
		return DiscountPercentage
	case "flat":
		return DiscountFlat
	}
	return DiscountNone
}

type Coupon struct {
	Code      string
	Type      DiscountType
	Value     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Apply returns the total after this coupon's discount. Exactly one
// rule can fire per coupon record.
func (c *Coupon) Apply(total float64) float64 {
	switch c.Type {
	case DiscountPercentage:
		return total - total*c.Value/100
	case DiscountFlat:
		return total - c.Value
	default:
		return total
	}
}
