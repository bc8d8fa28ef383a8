package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Ledger is the only writer of stock quantities and sales counters.
// Reductions are guarded at the database so two checkouts racing for the
// last units cannot both succeed; the loser gets ErrInsufficientStock.
type Ledger struct {
	metrics *telemetry.Metrics
}

// NewLedger creates a new inventory Ledger.
func NewLedger(metrics *telemetry.Metrics) *Ledger {
	return &Ledger{metrics: metrics}
}

// Reduce decrements stock for a sale and advances the product's sales
// counters. It takes a Querier so checkout can run it inside its
// transaction; for the same reason it records no metrics - the transaction
// may still roll back, so the caller records after commit.
func (l *Ledger) Reduce(ctx context.Context, q repository.Querier, productID pgtype.UUID, quantity, revenueCents int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	affected, err := q.DecrementProductStock(ctx, repository.DecrementProductStockParams{
		ID:           productID,
		Quantity:     quantity,
		RevenueCents: revenueCents,
	})
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientStock
	}

	return nil
}

// Increase returns units to stock, for cancellations and returns. Restocks
// are never guarded.
func (l *Ledger) Increase(ctx context.Context, q repository.Querier, productID pgtype.UUID, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	affected, err := q.IncrementProductStock(ctx, repository.IncrementProductStockParams{
		ID:       productID,
		Quantity: quantity,
	})
	if err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	l.metrics.RecordReplenishment(quantity)
	return nil
}

// AvailableQuantity reads the current sellable quantity of a product.
// Untracked and backorderable products report no ceiling (nil).
func (l *Ledger) AvailableQuantity(ctx context.Context, q repository.Querier, productID pgtype.UUID) (*int64, error) {
	product, err := q.GetProductByID(ctx, productID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if !product.TrackQuantity || product.AllowBackorder {
		return nil, nil
	}

	available := product.StockQuantity
	if available < 0 {
		available = 0
	}
	return &available, nil
}
