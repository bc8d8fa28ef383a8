package repository

import (
	"context"
)

const getCouponByCode = `
SELECT code, type, value, active, expires_at
FROM coupons
WHERE code = $1
`

// GetCouponByCode fetches a coupon by its code.
func (q *Queries) GetCouponByCode(ctx context.Context, code string) (Coupon, error) {
	row := q.db.QueryRow(ctx, getCouponByCode, code)
	var c Coupon
	err := row.Scan(&c.Code, &c.Type, &c.Value, &c.Active, &c.ExpiresAt)
	return c, err
}
