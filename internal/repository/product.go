package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getProductByID = `
SELECT id, name, price_cents, stock_quantity, track_quantity, allow_backorder,
       status, units_sold, revenue_cents, created_at, updated_at
FROM products
WHERE id = $1
`

// GetProductByID fetches a catalog entry by ID.
func (q *Queries) GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error) {
	row := q.db.QueryRow(ctx, getProductByID, id)
	var p Product
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.PriceCents,
		&p.StockQuantity,
		&p.TrackQuantity,
		&p.AllowBackorder,
		&p.Status,
		&p.UnitsSold,
		&p.RevenueCents,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

// The WHERE clause is the concurrency guard: the decrement only lands when
// the product is active and either untracked, backorderable, or still has
// enough stock. Two checkouts racing for the last units cannot both match,
// so the caller must treat zero rows affected as insufficient stock.
const decrementProductStock = `
UPDATE products
SET stock_quantity = CASE WHEN track_quantity THEN stock_quantity - $2 ELSE stock_quantity END,
    units_sold     = units_sold + $2,
    revenue_cents  = revenue_cents + $3,
    updated_at     = now()
WHERE id = $1
  AND status = 'active'
  AND (NOT track_quantity OR allow_backorder OR stock_quantity >= $2)
`

type DecrementProductStockParams struct {
	ID           pgtype.UUID
	Quantity     int64
	RevenueCents int64
}

// DecrementProductStock applies a guarded stock decrement and advances the
// sales counters. Returns the number of rows affected; zero means the
// guard rejected the update.
func (q *Queries) DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error) {
	tag, err := q.db.Exec(ctx, decrementProductStock, arg.ID, arg.Quantity, arg.RevenueCents)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const incrementProductStock = `
UPDATE products
SET stock_quantity = stock_quantity + $2,
    updated_at     = now()
WHERE id = $1
`

type IncrementProductStockParams struct {
	ID       pgtype.UUID
	Quantity int64
}

// IncrementProductStock restocks a product (cancellations, returns).
// Always permitted.
func (q *Queries) IncrementProductStock(ctx context.Context, arg IncrementProductStockParams) (int64, error) {
	tag, err := q.db.Exec(ctx, incrementProductStock, arg.ID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
