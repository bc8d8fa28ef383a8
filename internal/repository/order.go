package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const orderColumns = `id, owner_id, order_number, status, payment_status, payment_method,
       contact_name, contact_email, contact_phone,
       ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
       subtotal_cents, shipping_cents, surcharge_cents, discount_cents, total_cents,
       coupon_code, idempotency_key, created_at`

const createOrder = `
INSERT INTO orders (
	owner_id, order_number, status, payment_status, payment_method,
	contact_name, contact_email, contact_phone,
	ship_line1, ship_line2, ship_city, ship_state, ship_postal_code, ship_country,
	subtotal_cents, shipping_cents, surcharge_cents, discount_cents, total_cents,
	coupon_code, idempotency_key
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7, $8,
	$9, $10, $11, $12, $13, $14,
	$15, $16, $17, $18, $19,
	$20, $21
)
RETURNING ` + orderColumns

type CreateOrderParams struct {
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
}

// CreateOrder inserts an order snapshot row.
func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error) {
	row := q.db.QueryRow(ctx, createOrder,
		arg.OwnerID, arg.OrderNumber, arg.Status, arg.PaymentStatus, arg.PaymentMethod,
		arg.ContactName, arg.ContactEmail, arg.ContactPhone,
		arg.ShipLine1, arg.ShipLine2, arg.ShipCity, arg.ShipState, arg.ShipPostalCode, arg.ShipCountry,
		arg.SubtotalCents, arg.ShippingCents, arg.SurchargeCents, arg.DiscountCents, arg.TotalCents,
		arg.CouponCode, arg.IdempotencyKey,
	)
	return scanOrder(row)
}

const createOrderItem = `
INSERT INTO order_items (order_id, product_id, product_name, unit_price_cents, quantity, line_subtotal_cents)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, order_id, product_id, product_name, unit_price_cents, quantity, line_subtotal_cents
`

type CreateOrderItemParams struct {
	OrderID           pgtype.UUID
	ProductID         pgtype.UUID
	ProductName       string
	UnitPriceCents    int64
	Quantity          int64
	LineSubtotalCents int64
}

// CreateOrderItem inserts an immutable order line snapshot.
func (q *Queries) CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error) {
	row := q.db.QueryRow(ctx, createOrderItem,
		arg.OrderID, arg.ProductID, arg.ProductName, arg.UnitPriceCents, arg.Quantity, arg.LineSubtotalCents,
	)
	var i OrderItem
	err := row.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &i.UnitPriceCents, &i.Quantity, &i.LineSubtotalCents)
	return i, err
}

const getOrderByNumber = `
SELECT ` + orderColumns + `
FROM orders
WHERE owner_id = $1 AND order_number = $2
`

type GetOrderByNumberParams struct {
	OwnerID     pgtype.UUID
	OrderNumber string
}

// GetOrderByNumber fetches an order by its human-referenceable number,
// scoped to the owner.
func (q *Queries) GetOrderByNumber(ctx context.Context, arg GetOrderByNumberParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderByNumber, arg.OwnerID, arg.OrderNumber))
}

const getOrderByIdempotencyKey = `
SELECT ` + orderColumns + `
FROM orders
WHERE owner_id = $1 AND idempotency_key = $2
`

type GetOrderByIdempotencyKeyParams struct {
	OwnerID        pgtype.UUID
	IdempotencyKey string
}

// GetOrderByIdempotencyKey fetches an order previously materialized under
// the given client-supplied key, if any.
func (q *Queries) GetOrderByIdempotencyKey(ctx context.Context, arg GetOrderByIdempotencyKeyParams) (Order, error) {
	return scanOrder(q.db.QueryRow(ctx, getOrderByIdempotencyKey, arg.OwnerID, arg.IdempotencyKey))
}

const getOrderItems = `
SELECT id, order_id, product_id, product_name, unit_price_cents, quantity, line_subtotal_cents
FROM order_items
WHERE order_id = $1
ORDER BY id
`

// GetOrderItems lists an order's line snapshots.
func (q *Queries) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, getOrderItems, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(&i.ID, &i.OrderID, &i.ProductID, &i.ProductName, &i.UnitPriceCents, &i.Quantity, &i.LineSubtotalCents); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

type row interface {
	Scan(dest ...any) error
}

func scanOrder(r row) (Order, error) {
	var o Order
	err := r.Scan(
		&o.ID, &o.OwnerID, &o.OrderNumber, &o.Status, &o.PaymentStatus, &o.PaymentMethod,
		&o.ContactName, &o.ContactEmail, &o.ContactPhone,
		&o.ShipLine1, &o.ShipLine2, &o.ShipCity, &o.ShipState, &o.ShipPostalCode, &o.ShipCountry,
		&o.SubtotalCents, &o.ShippingCents, &o.SurchargeCents, &o.DiscountCents, &o.TotalCents,
		&o.CouponCode, &o.IdempotencyKey, &o.CreatedAt,
	)
	return o, err
}
