package service

import (
	"testing"

	"github.com/dukerupert/vanir/internal/domain"
)

var testPricing = PricingConfig{
	FreeShippingThresholdCents: 10000,
	FlatShippingFeeCents:       500,
	CashSurchargeBps:           150,
	Currency:                   "USD",
}

func TestCalculateTotals(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		method   domain.PaymentMethod
		coupon   *domain.Coupon
		want     Totals
	}{
		{
			name:     "bank transfer below free shipping threshold",
			subtotal: 3000,
			method:   domain.PaymentMethodBankTransfer,
			want:     Totals{SubtotalCents: 3000, ShippingCents: 500, TotalCents: 3500},
		},
		{
			name:     "subtotal at threshold ships free",
			subtotal: 10000,
			method:   domain.PaymentMethodBankTransfer,
			want:     Totals{SubtotalCents: 10000, TotalCents: 10000},
		},
		{
			name:     "subtotal just under threshold pays shipping",
			subtotal: 9999,
			method:   domain.PaymentMethodBankTransfer,
			want:     Totals{SubtotalCents: 9999, ShippingCents: 500, TotalCents: 10499},
		},
		{
			name:     "cash on delivery adds surcharge",
			subtotal: 10000,
			method:   domain.PaymentMethodCashOnDelivery,
			want:     Totals{SubtotalCents: 10000, SurchargeCents: 150, TotalCents: 10150},
		},
		{
			name:     "cash office carries no surcharge",
			subtotal: 10000,
			method:   domain.PaymentMethodCashOffice,
			want:     Totals{SubtotalCents: 10000, TotalCents: 10000},
		},
		{
			name:     "surcharge rounds half up",
			subtotal: 3333, // 1.5% = 49.995 cents
			method:   domain.PaymentMethodCashOnDelivery,
			want:     Totals{SubtotalCents: 3333, ShippingCents: 500, SurchargeCents: 50, TotalCents: 3883},
		},
		{
			name:     "percentage coupon applies to subtotal only",
			subtotal: 33330,
			method:   domain.PaymentMethodBankTransfer,
			coupon:   &domain.Coupon{Code: "TEN", Type: domain.CouponTypePercentage, Value: 10, Active: true},
			want:     Totals{SubtotalCents: 33330, DiscountCents: 3333, TotalCents: 29997},
		},
		{
			name:     "percentage coupon half cent rounds up",
			subtotal: 10005, // 10% = 1000.5 cents
			method:   domain.PaymentMethodBankTransfer,
			coupon:   &domain.Coupon{Code: "TEN", Type: domain.CouponTypePercentage, Value: 10, Active: true},
			want:     Totals{SubtotalCents: 10005, DiscountCents: 1001, TotalCents: 9004},
		},
		{
			name:     "fixed coupon subtracts flat amount",
			subtotal: 10000,
			method:   domain.PaymentMethodBankTransfer,
			coupon:   &domain.Coupon{Code: "OFF5", Type: domain.CouponTypeFixed, Value: 500, Active: true},
			want:     Totals{SubtotalCents: 10000, DiscountCents: 500, TotalCents: 9500},
		},
		{
			name:     "oversized fixed coupon clamps total at zero",
			subtotal: 500,
			method:   domain.PaymentMethodBankTransfer,
			coupon:   &domain.Coupon{Code: "BIG", Type: domain.CouponTypeFixed, Value: 2000, Active: true},
			want:     Totals{SubtotalCents: 500, ShippingCents: 500, DiscountCents: 1000, TotalCents: 0},
		},
		{
			name:     "empty subtotal still charges shipping",
			subtotal: 0,
			method:   domain.PaymentMethodBankTransfer,
			want:     Totals{SubtotalCents: 0, ShippingCents: 500, TotalCents: 500},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateTotals(tt.subtotal, tt.method, tt.coupon, testPricing)
			if got != tt.want {
				t.Errorf("CalculateTotals() = %+v, want %+v", got, tt.want)
			}
			if sum := got.SubtotalCents + got.ShippingCents + got.SurchargeCents - got.DiscountCents; sum != got.TotalCents {
				t.Errorf("components do not sum to total: %d != %d", sum, got.TotalCents)
			}
		})
	}
}

func TestRoundHalfUpBps(t *testing.T) {
	tests := []struct {
		amount int64
		bps    int64
		want   int64
	}{
		{10000, 150, 150},  // exact
		{3333, 150, 50},    // 49.995 rounds up
		{1000, 25, 3},      // 2.5 rounds up, not to even
		{999, 25, 2},       // 2.4975 rounds down
		{0, 150, 0},
		{1, 1, 0}, // 0.0001 cents
	}

	for _, tt := range tests {
		if got := roundHalfUpBps(tt.amount, tt.bps); got != tt.want {
			t.Errorf("roundHalfUpBps(%d, %d) = %d, want %d", tt.amount, tt.bps, got, tt.want)
		}
	}
}
