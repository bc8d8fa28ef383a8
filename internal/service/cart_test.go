package service

import (
	"context"
	"errors"
	"testing"

	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	testOwnerID   = "6b1f5ef2-9c1e-4a6a-8f2d-0b1c2d3e4f50"
	testCartID    = "0a847e3a-60b5-4f7a-8c64-03cf5d2e9a11"
	testProductID = "d2719f02-84f5-4a4b-9c2f-5a1e8b3c6d70"
)

func cartRow(t *testing.T) repository.Cart {
	t.Helper()
	return repository.Cart{ID: mustUUID(t, testCartID), OwnerID: mustUUID(t, testOwnerID)}
}

func TestCartService_GetCartSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("no cart yet returns empty summary", func(t *testing.T) {
		svc := NewCartService(&mockStore{})

		summary, err := svc.GetCartSummary(ctx, testOwnerID)
		if err != nil {
			t.Fatalf("GetCartSummary() error = %v", err)
		}
		if len(summary.Items) != 0 || summary.SubtotalCents != 0 || summary.ItemCount != 0 {
			t.Errorf("expected empty summary, got %+v", summary)
		}
	})

	t.Run("sums line subtotals at current prices", func(t *testing.T) {
		store := &mockStore{
			getCartByOwnerIDFn: func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
				return cartRow(t), nil
			},
			getCartItemsFn: func(ctx context.Context, cartID pgtype.UUID) ([]repository.GetCartItemsRow, error) {
				return []repository.GetCartItemsRow{
					{
						ProductID:       mustUUID(t, testProductID),
						Quantity:        2,
						AddedPriceCents: 1000,
						ProductName:     pgtype.Text{String: "House Blend", Valid: true},
						PriceCents:      pgtype.Int8{Int64: 1200, Valid: true},
					},
					{
						ProductID:       mustUUID(t, testCartID),
						Quantity:        1,
						AddedPriceCents: 500,
						ProductName:     pgtype.Text{String: "Filters", Valid: true},
						PriceCents:      pgtype.Int8{Int64: 500, Valid: true},
					},
				}, nil
			},
		}
		svc := NewCartService(store)

		summary, err := svc.GetCartSummary(ctx, testOwnerID)
		if err != nil {
			t.Fatalf("GetCartSummary() error = %v", err)
		}
		if summary.SubtotalCents != 2*1200+500 {
			t.Errorf("SubtotalCents = %d, want %d", summary.SubtotalCents, 2*1200+500)
		}
		if summary.ItemCount != 3 {
			t.Errorf("ItemCount = %d, want 3", summary.ItemCount)
		}
		if !summary.Items[0].PriceChanged {
			t.Error("expected first line flagged as price changed")
		}
		if summary.Items[1].PriceChanged {
			t.Error("second line price did not change")
		}
	})

	t.Run("invalid owner id", func(t *testing.T) {
		svc := NewCartService(&mockStore{})
		if _, err := svc.GetCartSummary(ctx, "not-a-uuid"); !errors.Is(err, ErrInvalidOwnerID) {
			t.Errorf("error = %v, want ErrInvalidOwnerID", err)
		}
	})
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("creates cart and records added price", func(t *testing.T) {
		var added repository.AddCartItemParams
		store := &mockStore{
			getProductByIDFn: func(ctx context.Context, id pgtype.UUID) (repository.Product, error) {
				return repository.Product{ID: id, Name: "House Blend", PriceCents: 1250, Status: "active"}, nil
			},
			upsertCartFn: func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
				return cartRow(t), nil
			},
			addCartItemFn: func(ctx context.Context, arg repository.AddCartItemParams) (repository.CartItem, error) {
				added = arg
				return repository.CartItem{}, nil
			},
		}
		svc := NewCartService(store)

		if _, err := svc.AddItem(ctx, testOwnerID, testProductID, 2); err != nil {
			t.Fatalf("AddItem() error = %v", err)
		}
		if added.Quantity != 2 {
			t.Errorf("Quantity = %d, want 2", added.Quantity)
		}
		if added.AddedPriceCents != 1250 {
			t.Errorf("AddedPriceCents = %d, want 1250", added.AddedPriceCents)
		}
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		svc := NewCartService(&mockStore{})
		for _, qty := range []int64{0, -1} {
			if _, err := svc.AddItem(ctx, testOwnerID, testProductID, qty); !errors.Is(err, ErrInvalidQuantity) {
				t.Errorf("AddItem(qty=%d) error = %v, want ErrInvalidQuantity", qty, err)
			}
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		svc := NewCartService(&mockStore{})
		if _, err := svc.AddItem(ctx, testOwnerID, testProductID, 1); !errors.Is(err, ErrProductNotFound) {
			t.Errorf("error = %v, want ErrProductNotFound", err)
		}
	})
}

func TestCartService_UpdateItemQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("zero quantity removes the line", func(t *testing.T) {
		removed := false
		store := &mockStore{
			getCartByOwnerIDFn: func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
				return cartRow(t), nil
			},
			removeCartItemFn: func(ctx context.Context, arg repository.RemoveCartItemParams) (int64, error) {
				removed = true
				return 1, nil
			},
		}
		svc := NewCartService(store)

		if _, err := svc.UpdateItemQuantity(ctx, testOwnerID, testProductID, 0); err != nil {
			t.Fatalf("UpdateItemQuantity() error = %v", err)
		}
		if !removed {
			t.Error("expected RemoveCartItem to be called")
		}
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		svc := NewCartService(&mockStore{})
		if _, err := svc.UpdateItemQuantity(ctx, testOwnerID, testProductID, -3); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("error = %v, want ErrInvalidQuantity", err)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		store := &mockStore{
			getCartByOwnerIDFn: func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
				return cartRow(t), nil
			},
			updateCartItemQuantityFn: func(ctx context.Context, arg repository.UpdateCartItemQuantityParams) (int64, error) {
				return 0, nil
			},
		}
		svc := NewCartService(store)

		if _, err := svc.UpdateItemQuantity(ctx, testOwnerID, testProductID, 5); !errors.Is(err, ErrCartItemNotFound) {
			t.Errorf("error = %v, want ErrCartItemNotFound", err)
		}
	})
}

func TestCartService_RemoveItem_MissingLine(t *testing.T) {
	store := &mockStore{
		getCartByOwnerIDFn: func(ctx context.Context, ownerID pgtype.UUID) (repository.Cart, error) {
			return cartRow(t), nil
		},
		removeCartItemFn: func(ctx context.Context, arg repository.RemoveCartItemParams) (int64, error) {
			return 0, nil
		},
	}
	svc := NewCartService(store)

	if _, err := svc.RemoveItem(context.Background(), testOwnerID, testProductID); !errors.Is(err, ErrCartItemNotFound) {
		t.Errorf("error = %v, want ErrCartItemNotFound", err)
	}
}

func TestCartService_ClearCart_NoCartIsNoop(t *testing.T) {
	svc := NewCartService(&mockStore{})
	if err := svc.ClearCart(context.Background(), testOwnerID); err != nil {
		t.Errorf("ClearCart() error = %v, want nil", err)
	}
}
