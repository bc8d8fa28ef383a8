package repository

import (
	"github.com/jackc/pgx/v5/pgtype"
)

// Product is a catalog entry row. Stock is authoritative here; services
// never cache it. UnitsSold and RevenueCents are cumulative sales counters
// maintained by the inventory ledger.
type Product struct {
	ID             pgtype.UUID
	Name           string
	PriceCents     int64
	StockQuantity  int64
	TrackQuantity  bool
	AllowBackorder bool
	Status         string
	UnitsSold      int64
	RevenueCents   int64
	CreatedAt      pgtype.Timestamptz
	UpdatedAt      pgtype.Timestamptz
}

// Cart is the per-owner cart row. One cart per owner, created lazily.
type Cart struct {
	ID        pgtype.UUID
	OwnerID   pgtype.UUID
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// CartItem is a single cart line. AddedPriceCents records the catalog
// price at the time the line was first added, for price-change detection.
type CartItem struct {
	ID              pgtype.UUID
	CartID          pgtype.UUID
	ProductID       pgtype.UUID
	Quantity        int64
	AddedPriceCents int64
	CreatedAt       pgtype.Timestamptz
	UpdatedAt       pgtype.Timestamptz
}

// GetCartItemsRow joins cart lines with current product data for display
// and validation. Product columns are nullable because the product may
// have been deleted since the line was added.
type GetCartItemsRow struct {
	ID              pgtype.UUID
	CartID          pgtype.UUID
	ProductID       pgtype.UUID
	Quantity        int64
	AddedPriceCents int64
	ProductName     pgtype.Text
	PriceCents      pgtype.Int8
}

// Order is an immutable order snapshot row.
type Order struct {
	ID             pgtype.UUID
	OwnerID        pgtype.UUID
	OrderNumber    string
	Status         string
	PaymentStatus  string
	PaymentMethod  string
	ContactName    string
	ContactEmail   string
	ContactPhone   string
	ShipLine1      string
	ShipLine2      pgtype.Text
	ShipCity       string
	ShipState      pgtype.Text
	ShipPostalCode string
	ShipCountry    string
	SubtotalCents  int64
	ShippingCents  int64
	SurchargeCents int64
	DiscountCents  int64
	TotalCents     int64
	CouponCode     pgtype.Text
	IdempotencyKey pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

// OrderItem is an immutable order line snapshot. UnitPriceCents is the
// catalog price at materialization time, independent of later changes.
type OrderItem struct {
	ID                pgtype.UUID
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	ProductName       string
	UnitPriceCents    int64
	Quantity          int64
	LineSubtotalCents int64
}

// Coupon is a discount code row.
type Coupon struct {
	Code      string
	Type      string
	Value     int64
	Active    bool
	ExpiresAt pgtype.Timestamptz
}
