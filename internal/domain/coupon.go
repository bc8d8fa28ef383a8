package domain

import "time"

// CouponType is how a coupon's value is interpreted.
type CouponType string

const (
	// CouponTypePercentage discounts a percentage of the subtotal; Value is
	// whole percent (10 = 10%).
	CouponTypePercentage CouponType = "percentage"

	// CouponTypeFixed discounts a fixed amount; Value is in minor units.
	CouponTypeFixed CouponType = "fixed"
)

// Coupon is a resolved discount code. Resolution happens at checkout time
// only; an invalid or expired coupon degrades to no discount rather than
// failing the order.
type Coupon struct {
	Code      string
	Type      CouponType
	Value     int64
	Active    bool
	ExpiresAt *time.Time
}

// Redeemable reports whether the coupon can be applied at the given time.
func (c *Coupon) Redeemable(now time.Time) bool {
	if !c.Active {
		return false
	}
	if c.ExpiresAt != nil && now.After(*c.ExpiresAt) {
		return false
	}
	return true
}
