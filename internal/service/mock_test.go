package service

import (
	"context"
	"testing"

	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// mockStore implements repository.Store with overridable behavior per
// method. Unset lookups report no rows; unset mutations succeed with zero
// values. ExecTx runs the callback against the mock itself.
type mockStore struct {
	getProductByIDFn           func(ctx context.Context, id pgtype.UUID) (repository.Product, error)
	decrementProductStockFn    func(ctx context.Context, arg repository.DecrementProductStockParams) (int64, error)
	incrementProductStockFn    func(ctx context.Context, arg repository.IncrementProductStockParams) (int64, error)
	getCartByOwnerIDFn         func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error)
	upsertCartFn               func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error)
	getCartItemsFn             func(ctx context.Context, cartID pgtype.UUID) ([]repository.GetCartItemsRow, error)
	addCartItemFn              func(ctx context.Context, arg repository.AddCartItemParams) (repository.CartItem, error)
	updateCartItemQuantityFn   func(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (int64, error)
	removeCartItemFn           func(ctx context.Context, arg repository.RemoveCartItemParams) (int64, error)
	clearCartFn                func(ctx context.Context, cartID pgtype.UUID) error
	createOrderFn              func(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error)
	createOrderItemFn          func(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error)
	getOrderByNumberFn         func(ctx context.Context, arg repository.GetOrderByNumberParams) (repository.Order, error)
	getOrderByIdempotencyKeyFn func(ctx context.Context, arg repository.GetOrderByIdempotencyKeyParams) (repository.Order, error)
	getOrderItemsFn            func(ctx context.Context, orderID pgtype.UUID) ([]repository.OrderItem, error)
	getCouponByCodeFn          func(ctx context.Context, code string) (repository.Coupon, error)
	execTxFn                   func(ctx context.Context, fn func(repository.Querier) error) error
}

var _ repository.Store = (*mockStore)(nil)

func (m *mockStore) GetProductByID(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
	if m.getProductByIDFn != nil {
		return m.getProductByIDFn(ctx, id)
	}
	return repository.Product{}, pgx.ErrNoRows
}

func (m *mockStore) DecrementProductStock(ctx context.Context, arg repository.DecrementProductStockParams) (int64, error) {
	if m.decrementProductStockFn != nil {
		return m.decrementProductStockFn(ctx, arg)
	}
	return 1, nil
}

func (m *mockStore) IncrementProductStock(ctx context.Context, arg repository.IncrementProductStockParams) (int64, error) {
	if m.incrementProductStockFn != nil {
		return m.incrementProductStockFn(ctx, arg)
	}
	return 1, nil
}

func (m *mockStore) GetCartByOwnerID(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
	if m.getCartByOwnerIDFn != nil {
		return m.getCartByOwnerIDFn(ctx, ownerID)
	}
	return repository.Cart{}, pgx.ErrNoRows
}

func (m *mockStore) UpsertCart(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
	if m.upsertCartFn != nil {
		return m.upsertCartFn(ctx, ownerID)
	}
	return repository.Cart{OwnerID: ownerID}, nil
}

func (m *mockStore) GetCartItems(ctx context.Context, cartID pgtype.UUID) ([]repository.GetCartItemsRow, error) {
	if m.getCartItemsFn != nil {
		return m.getCartItemsFn(ctx, cartID)
	}
	return nil, nil
}

func (m *mockStore) AddCartItem(ctx context.Context, arg repository.AddCartItemParams) (repository.CartItem, error) {
	if m.addCartItemFn != nil {
		return m.addCartItemFn(ctx, arg)
	}
	return repository.CartItem{CartID: arg.CartID, ProductID: arg.ProductID, Quantity: arg.Quantity, AddedPriceCents: arg.AddedPriceCents}, nil
}

func (m *mockStore) UpdateCartItemQuantity(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (int64, error) {
	if m.updateCartItemQuantityFn != nil {
		return m.updateCartItemQuantityFn(ctx, arg)
	}
	return 1, nil
}

func (m *mockStore) RemoveCartItem(ctx context.Context, arg repository.RemoveCartItemParams) (int64, error) {
	if m.removeCartItemFn != nil {
		return m.removeCartItemFn(ctx, arg)
	}
	return 1, nil
}

func (m *mockStore) ClearCart(ctx context.Context, cartID pgtype.UUID) error {
	if m.clearCartFn != nil {
		return m.clearCartFn(ctx, cartID)
	}
	return nil
}

func (m *mockStore) CreateOrder(ctx context.Context, arg repository.CreateOrderParams) (repository.Order, error) {
	if m.createOrderFn != nil {
		return m.createOrderFn(ctx, arg)
	}
	return repository.Order{
		OwnerID:        arg.OwnerID,
		OrderNumber:    arg.OrderNumber,
		Status:         arg.Status,
		PaymentStatus:  arg.PaymentStatus,
		PaymentMethod:  arg.PaymentMethod,
		SubtotalCents:  arg.SubtotalCents,
		ShippingCents:  arg.ShippingCents,
		SurchargeCents: arg.SurchargeCents,
		DiscountCents:  arg.DiscountCents,
		TotalCents:     arg.TotalCents,
		CouponCode:     arg.CouponCode,
		IdempotencyKey: arg.IdempotencyKey,
	}, nil
}

func (m *mockStore) CreateOrderItem(ctx context.Context, arg repository.CreateOrderItemParams) (repository.OrderItem, error) {
	if m.createOrderItemFn != nil {
		return m.createOrderItemFn(ctx, arg)
	}
	return repository.OrderItem{
		OrderID:           arg.OrderID,
		ProductID:         arg.ProductID,
		ProductName:       arg.ProductName,
		UnitPriceCents:    arg.UnitPriceCents,
		Quantity:          arg.Quantity,
		LineSubtotalCents: arg.LineSubtotalCents,
	}, nil
}

func (m *mockStore) GetOrderByNumber(ctx context.Context, arg repository.GetOrderByNumberParams) (repository.Order, error) {
	if m.getOrderByNumberFn != nil {
		return m.getOrderByNumberFn(ctx, arg)
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (m *mockStore) GetOrderByIdempotencyKey(ctx context.Context, arg repository.GetOrderByIdempotencyKeyParams) (repository.Order, error) {
	if m.getOrderByIdempotencyKeyFn != nil {
		return m.getOrderByIdempotencyKeyFn(ctx, arg)
	}
	return repository.Order{}, pgx.ErrNoRows
}

func (m *mockStore) GetOrderItems(ctx context.Context, orderID pgtype.UUID) ([]repository.OrderItem, error) {
	if m.getOrderItemsFn != nil {
		return m.getOrderItemsFn(ctx, orderID)
	}
	return nil, nil
}

func (m *mockStore) GetCouponByCode(ctx context.Context, code string) (repository.Coupon, error) {
	if m.getCouponByCodeFn != nil {
		return m.getCouponByCodeFn(ctx, code)
	}
	return repository.Coupon{}, pgx.ErrNoRows
}

func (m *mockStore) ExecTx(ctx context.Context, fn func(repository.Querier) error) error {
	if m.execTxFn != nil {
		return m.execTxFn(ctx, fn)
	}
	return fn(m)
}

func mustUUID(t *testing.T, s string) pgtype.UUID {
	t.Helper()
	id, err := scanUUID(s)
	if err != nil {
		t.Fatalf("scanUUID(%q): %v", s, err)
	}
	return id
}
