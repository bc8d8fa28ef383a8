package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// CartService provides business logic for shopping cart operations
type CartService interface {
	GetCartSummary(ctx context.Context, ownerID string) (*CartSummary, error)
	AddItem(ctx context.Context, ownerID string, productID string, quantity int64) (*CartSummary, error)
	UpdateItemQuantity(ctx context.Context, ownerID string, productID string, quantity int64) (*CartSummary, error)
	RemoveItem(ctx context.Context, ownerID string, productID string) (*CartSummary, error)
	ClearCart(ctx context.Context, ownerID string) error
}

// Cart represents a lightweight cart view model
type Cart struct {
	ID        pgtype.UUID
	OwnerID   pgtype.UUID
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

// CartSummary aggregates cart information with items and calculated totals.
// SubtotalCents uses current catalog prices; ItemCount is recomputed on
// every read, never cached.
type CartSummary struct {
	Cart          Cart
	Items         []CartItem
	SubtotalCents int64
	ItemCount     int64
}

// CartItem represents a cart line with product details and calculated
// totals. PriceChanged flags lines whose catalog price moved since they
// were added; it is advisory and never blocks a cart mutation.
type CartItem struct {
	ProductID         pgtype.UUID
	ProductName       string
	Quantity          int64
	UnitPriceCents    int64
	AddedPriceCents   int64
	LineSubtotalCents int64
	PriceChanged      bool
}

type cartService struct {
	store repository.Store
}

// NewCartService creates a new CartService instance
func NewCartService(store repository.Store) CartService {
	return &cartService{store: store}
}

// GetCartSummary retrieves the owner's cart with all items and calculated
// totals. An owner without a cart gets an empty summary; carts are created
// lazily on first add.
func (s *cartService) GetCartSummary(ctx context.Context, ownerID string) (*CartSummary, error) {
	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &CartSummary{Cart: Cart{OwnerID: ownerUUID}}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return s.summarize(ctx, cart)
}

// AddItem adds a product to the cart or increments quantity if already
// present. The cart is created on first add.
func (s *cartService) AddItem(ctx context.Context, ownerID string, productID string, quantity int64) (*CartSummary, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	productUUID, err := scanUUID(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	product, err := s.store.GetProductByID(ctx, productUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	cart, err := s.store.UpsertCart(ctx, ownerUUID)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create cart: %w", err)
	}

	_, err = s.store.AddCartItem(ctx, repository.AddCartItemParams{
		CartID:          cart.ID,
		ProductID:       productUUID,
		Quantity:        quantity,
		AddedPriceCents: product.PriceCents,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}

	return s.summarize(ctx, cart)
}

// UpdateItemQuantity sets the quantity of a cart line. Quantity 0 removes
// the line; negative quantities are rejected. Stock limits are NOT checked
// here - that happens at checkout, so offline carts stay cheap to edit.
func (s *cartService) UpdateItemQuantity(ctx context.Context, ownerID string, productID string, quantity int64) (*CartSummary, error) {
	if quantity == 0 {
		return s.RemoveItem(ctx, ownerID, productID)
	}

	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	productUUID, err := scanUUID(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	affected, err := s.store.UpdateCartItemQuantity(ctx, repository.UpdateCartItemQuantityParams{
		CartID:    cart.ID,
		ProductID: productUUID,
		Quantity:  quantity,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update cart item quantity: %w", err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}

	return s.summarize(ctx, cart)
}

// RemoveItem removes a product from the cart. Removing an absent line
// fails with ErrCartItemNotFound and leaves the cart unchanged, so
// repeated removals report the same outcome.
func (s *cartService) RemoveItem(ctx context.Context, ownerID string, productID string) (*CartSummary, error) {
	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	productUUID, err := scanUUID(productID)
	if err != nil {
		return nil, ErrInvalidProductID
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	affected, err := s.store.RemoveCartItem(ctx, repository.RemoveCartItemParams{
		CartID:    cart.ID,
		ProductID: productUUID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", err)
	}
	if affected == 0 {
		return nil, ErrCartItemNotFound
	}

	return s.summarize(ctx, cart)
}

// ClearCart removes all items from the owner's cart. Idempotent: clearing
// a missing or already-empty cart succeeds.
func (s *cartService) ClearCart(ctx context.Context, ownerID string) error {
	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return ErrInvalidOwnerID
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to get cart: %w", err)
	}

	if err := s.store.ClearCart(ctx, cart.ID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	return nil
}

func (s *cartService) summarize(ctx context.Context, cart repository.Cart) (*CartSummary, error) {
	rows, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	items := make([]CartItem, 0, len(rows))
	var subtotal, itemCount int64

	for _, row := range rows {
		item := buildCartItem(row)
		subtotal += item.LineSubtotalCents
		itemCount += item.Quantity
		items = append(items, item)
	}

	return &CartSummary{
		Cart: Cart{
			ID:        cart.ID,
			OwnerID:   cart.OwnerID,
			CreatedAt: cart.CreatedAt,
			UpdatedAt: cart.UpdatedAt,
		},
		Items:         items,
		SubtotalCents: subtotal,
		ItemCount:     itemCount,
	}, nil
}

// buildCartItem maps a joined cart row to the view model. Lines whose
// product vanished keep the added-at price so the summary stays renderable;
// the availability validator reports them as product_not_found.
func buildCartItem(row repository.GetCartItemsRow) CartItem {
	name := ""
	if row.ProductName.Valid {
		name = row.ProductName.String
	}

	unitPrice := row.AddedPriceCents
	if row.PriceCents.Valid {
		unitPrice = row.PriceCents.Int64
	}

	return CartItem{
		ProductID:         row.ProductID,
		ProductName:       name,
		Quantity:          row.Quantity,
		UnitPriceCents:    unitPrice,
		AddedPriceCents:   row.AddedPriceCents,
		LineSubtotalCents: unitPrice * row.Quantity,
		PriceChanged:      row.PriceCents.Valid && row.PriceCents.Int64 != row.AddedPriceCents,
	}
}

// scanUUID parses a string into a pgtype.UUID.
func scanUUID(s string) (pgtype.UUID, error) {
	var id pgtype.UUID
	if err := id.Scan(s); err != nil {
		return pgtype.UUID{}, err
	}
	return id, nil
}
