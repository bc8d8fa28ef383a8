package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// AvailabilityService cross-checks cart contents against current catalog
// state without mutating anything. The same checks run again inside the
// checkout transaction; this service exists so clients can surface
// problems before the customer commits.
type AvailabilityService interface {
	ValidateCart(ctx context.Context, ownerID string) (*domain.ValidationResult, error)
}

type availabilityService struct {
	store repository.Store
}

// NewAvailabilityService creates a new AvailabilityService instance
func NewAvailabilityService(store repository.Store) AvailabilityService {
	return &availabilityService{store: store}
}

// ValidateCart checks every cart line and collects all issues rather than
// stopping at the first. An owner with no cart, or an empty cart, validates
// clean - emptiness is checkout's problem, not availability's.
func (s *availabilityService) ValidateCart(ctx context.Context, ownerID string) (*domain.ValidationResult, error) {
	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &domain.ValidationResult{Valid: true}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	rows, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}

	issues, err := validateCartLines(ctx, s.store, rows)
	if err != nil {
		return nil, err
	}

	result := &domain.ValidationResult{Issues: issues}
	result.Valid = len(result.BlockingIssues()) == 0
	return result, nil
}

// validateCartLines checks each line against the current catalog row and
// reports at most one issue per line, most severe first: a line whose
// product vanished is not also reported as out of stock, and a price change
// on an unavailable line is noise.
func validateCartLines(ctx context.Context, q repository.Querier, rows []repository.GetCartItemsRow) ([]domain.LineIssue, error) {
	var issues []domain.LineIssue

	for _, row := range rows {
		product, err := q.GetProductByID(ctx, row.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				issues = append(issues, domain.LineIssue{
					ProductID:         uuidString(row.ProductID),
					Issue:             domain.IssueProductNotFound,
					RequestedQuantity: row.Quantity,
				})
				continue
			}
			return nil, fmt.Errorf("failed to get product: %w", err)
		}

		if issue, ok := checkLine(product, row); ok {
			issues = append(issues, issue)
		}
	}

	return issues, nil
}

// checkLine evaluates a single cart line against its catalog entry.
func checkLine(product repository.Product, row repository.GetCartItemsRow) (domain.LineIssue, bool) {
	issue := domain.LineIssue{
		ProductID:         uuidString(row.ProductID),
		RequestedQuantity: row.Quantity,
	}

	// Any non-active status (draft, archived, out_of_stock) reads as out
	// of stock, regardless of what the stock counter says. Zero inventory
	// on an active product is an insufficient_stock case below, with the
	// available figure attached.
	if domain.ProductStatus(product.Status) != domain.ProductStatusActive {
		issue.Issue = domain.IssueOutOfStock
		return issue, true
	}

	if product.TrackQuantity && !product.AllowBackorder && product.StockQuantity < row.Quantity {
		available := product.StockQuantity
		if available < 0 {
			available = 0
		}
		issue.Issue = domain.IssueInsufficientStock
		issue.AvailableQuantity = &available
		return issue, true
	}

	if product.PriceCents != row.AddedPriceCents {
		issue.Issue = domain.IssuePriceChanged
		return issue, true
	}

	return domain.LineIssue{}, false
}

func uuidString(id pgtype.UUID) string {
	u, err := uuid.FromBytes(id.Bytes[:])
	if err != nil {
		return ""
	}
	return u.String()
}
