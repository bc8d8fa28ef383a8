package service

import (
	"github.com/dukerupert/vanir/internal/domain"
)

// PricingConfig holds the operator-tuned pricing knobs. Values are read
// from the environment at startup and never change at runtime.
type PricingConfig struct {
	FreeShippingThresholdCents int64
	FlatShippingFeeCents       int64
	CashSurchargeBps           int64
	Currency                   string
}

// Totals is the full price breakdown of a checkout. Every component is in
// minor units and already rounded; summing them reproduces TotalCents
// exactly.
type Totals struct {
	SubtotalCents  int64
	ShippingCents  int64
	SurchargeCents int64
	DiscountCents  int64
	TotalCents     int64
}

// CalculateTotals computes the price breakdown for a checkout. It is a
// pure function of its inputs: the same subtotal, payment method, coupon
// and config always produce the same totals.
//
// Rounding happens exactly once per derived component, half-up. Applying
// the surcharge rate and then rounding the sum would double-round.
//
// The cash-handling surcharge applies to cash_on_delivery only; the cash
// office collects at the counter and carries no courier handling cost.
func CalculateTotals(subtotalCents int64, method domain.PaymentMethod, coupon *domain.Coupon, cfg PricingConfig) Totals {
	t := Totals{SubtotalCents: subtotalCents}

	if subtotalCents < cfg.FreeShippingThresholdCents {
		t.ShippingCents = cfg.FlatShippingFeeCents
	}

	if method == domain.PaymentMethodCashOnDelivery {
		t.SurchargeCents = roundHalfUpBps(subtotalCents, cfg.CashSurchargeBps)
	}

	if coupon != nil {
		switch coupon.Type {
		case domain.CouponTypePercentage:
			t.DiscountCents = roundHalfUpBps(subtotalCents, coupon.Value*100)
		case domain.CouponTypeFixed:
			t.DiscountCents = coupon.Value
		}
	}

	t.TotalCents = subtotalCents + t.ShippingCents + t.SurchargeCents - t.DiscountCents
	if t.TotalCents < 0 {
		// oversized fixed coupons floor the total at zero; the recorded
		// discount shrinks to match so the arithmetic still balances
		t.DiscountCents += t.TotalCents
		t.TotalCents = 0
	}

	return t
}

// roundHalfUpBps applies a basis-point rate to an amount in minor units,
// rounding half-up. amount and bps must be non-negative.
func roundHalfUpBps(amount, bps int64) int64 {
	return (amount*bps + 5000) / 10000
}
