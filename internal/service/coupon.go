package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
)

// CouponResolver looks up coupon codes at checkout time. Resolution is
// deliberately late: a code that was valid when typed into the cart may
// have expired by the time the order is placed.
type CouponResolver interface {
	Resolve(ctx context.Context, code string) (*domain.Coupon, error)
}

type couponResolver struct {
	store repository.Store
	now   func() time.Time
}

// NewCouponResolver creates a new CouponResolver instance
func NewCouponResolver(store repository.Store) CouponResolver {
	return &couponResolver{store: store, now: time.Now}
}

// Resolve returns the coupon for code, or ErrInvalidCoupon if the code is
// unknown, deactivated, or expired. Callers decide whether that is fatal;
// checkout drops the coupon and proceeds without a discount.
func (r *couponResolver) Resolve(ctx context.Context, code string) (*domain.Coupon, error) {
	row, err := r.store.GetCouponByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvalidCoupon
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}

	coupon := &domain.Coupon{
		Code:   row.Code,
		Type:   domain.CouponType(row.Type),
		Value:  row.Value,
		Active: row.Active,
	}
	if row.ExpiresAt.Valid {
		expires := row.ExpiresAt.Time
		coupon.ExpiresAt = &expires
	}

	if !coupon.Redeemable(r.now()) {
		return nil, ErrInvalidCoupon
	}

	return coupon, nil
}
