package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const getCartByOwnerID = `
SELECT id, owner_id, created_at, updated_at
FROM carts
WHERE owner_id = $1
`

// GetCartByOwnerID fetches the owner's cart.
func (q *Queries) GetCartByOwnerID(ctx context.Context, ownerID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, getCartByOwnerID, ownerID)
	var c Cart
	err := row.Scan(&c.ID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Upsert keeps cart creation race-safe: two concurrent first adds by the
// same owner resolve to a single cart row.
const upsertCart = `
INSERT INTO carts (owner_id)
VALUES ($1)
ON CONFLICT (owner_id) DO UPDATE SET updated_at = now()
RETURNING id, owner_id, created_at, updated_at
`

// UpsertCart returns the owner's cart, creating it when absent.
func (q *Queries) UpsertCart(ctx context.Context, ownerID pgtype.UUID) (Cart, error) {
	row := q.db.QueryRow(ctx, upsertCart, ownerID)
	var c Cart
	err := row.Scan(&c.ID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

const getCartItems = `
SELECT ci.id, ci.cart_id, ci.product_id, ci.quantity, ci.added_price_cents,
       p.name AS product_name, p.price_cents
FROM cart_items ci
LEFT JOIN products p ON p.id = ci.product_id
WHERE ci.cart_id = $1
ORDER BY ci.created_at, ci.id
`

// GetCartItems lists cart lines in insertion order with current product
// data joined in.
func (q *Queries) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]GetCartItemsRow, error) {
	rows, err := q.db.Query(ctx, getCartItems, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []GetCartItemsRow
	for rows.Next() {
		var i GetCartItemsRow
		if err := rows.Scan(
			&i.ID,
			&i.CartID,
			&i.ProductID,
			&i.Quantity,
			&i.AddedPriceCents,
			&i.ProductName,
			&i.PriceCents,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// Adding a product already in the cart increments its quantity instead of
// duplicating the line. The added-at price of the original line is kept.
const addCartItem = `
INSERT INTO cart_items (cart_id, product_id, quantity, added_price_cents)
VALUES ($1, $2, $3, $4)
ON CONFLICT (cart_id, product_id)
DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = now()
RETURNING id, cart_id, product_id, quantity, added_price_cents, created_at, updated_at
`

type AddCartItemParams struct {
	CartID          pgtype.UUID
	ProductID       pgtype.UUID
	Quantity        int64
	AddedPriceCents int64
}

// AddCartItem inserts a cart line or increments an existing one.
func (q *Queries) AddCartItem(ctx context.Context, arg AddCartItemParams) (CartItem, error) {
	row := q.db.QueryRow(ctx, addCartItem, arg.CartID, arg.ProductID, arg.Quantity, arg.AddedPriceCents)
	var i CartItem
	err := row.Scan(&i.ID, &i.CartID, &i.ProductID, &i.Quantity, &i.AddedPriceCents, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const updateCartItemQuantity = `
UPDATE cart_items
SET quantity = $3, updated_at = now()
WHERE cart_id = $1 AND product_id = $2
`

type UpdateCartItemQuantityParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
	Quantity  int64
}

// UpdateCartItemQuantity sets a line's quantity. Returns rows affected so
// the caller can distinguish a missing line.
func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (int64, error) {
	tag, err := q.db.Exec(ctx, updateCartItemQuantity, arg.CartID, arg.ProductID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const removeCartItem = `
DELETE FROM cart_items
WHERE cart_id = $1 AND product_id = $2
`

type RemoveCartItemParams struct {
	CartID    pgtype.UUID
	ProductID pgtype.UUID
}

// RemoveCartItem deletes a cart line. Returns rows affected so the caller
// can distinguish a missing line.
func (q *Queries) RemoveCartItem(ctx context.Context, arg RemoveCartItemParams) (int64, error) {
	tag, err := q.db.Exec(ctx, removeCartItem, arg.CartID, arg.ProductID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

const clearCart = `
DELETE FROM cart_items
WHERE cart_id = $1
`

// ClearCart removes every line from a cart. Idempotent; the cart row
// itself survives.
func (q *Queries) ClearCart(ctx context.Context, cartID pgtype.UUID) error {
	_, err := q.db.Exec(ctx, clearCart, cartID)
	return err
}
