package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

// Querier is the full query surface of the repository. Services depend on
// this interface (or Store) rather than concrete types so unit tests can
// inject fakes.
type Querier interface {
	// Products
	GetProductByID(ctx context.Context, id pgtype.UUID) (Product, error)
	DecrementProductStock(ctx context.Context, arg DecrementProductStockParams) (int64, error)
	IncrementProductStock(ctx context.Context, arg IncrementProductStockParams) (int64, error)

	// Carts
	GetCartByOwnerID(ctx context.Context, ownerID pgtype.UUID) (Cart, error)
	UpsertCart(ctx context.Context, ownerID pgtype.UUID) (Cart, error)
	GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]GetCartItemsRow, error)
	AddCartItem(ctx context.Context, arg AddCartItemParams) (CartItem, error)
	UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (int64, error)
	RemoveCartItem(ctx context.Context, arg RemoveCartItemParams) (int64, error)
	ClearCart(ctx context.Context, cartID pgtype.UUID) error

	// Orders
	CreateOrder(ctx context.Context, arg CreateOrderParams) (Order, error)
	CreateOrderItem(ctx context.Context, arg CreateOrderItemParams) (OrderItem, error)
	GetOrderByNumber(ctx context.Context, arg GetOrderByNumberParams) (Order, error)
	GetOrderByIdempotencyKey(ctx context.Context, arg GetOrderByIdempotencyKeyParams) (Order, error)
	GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]OrderItem, error)

	// Coupons
	GetCouponByCode(ctx context.Context, code string) (Coupon, error)
}

var _ Querier = (*Queries)(nil)
