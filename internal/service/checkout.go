package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/repository"
	"github.com/dukerupert/vanir/internal/telemetry"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

// CheckoutService materializes carts into immutable orders.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, ownerID string, req PlaceOrderRequest) (*OrderDetail, error)
	GetOrder(ctx context.Context, ownerID string, orderNumber string) (*OrderDetail, error)
}

// PlaceOrderRequest carries everything checkout needs beyond the cart
// itself. CouponCode and IdempotencyKey are optional.
type PlaceOrderRequest struct {
	Contact         domain.ContactInfo
	ShippingAddress domain.Address
	PaymentMethod   domain.PaymentMethod
	CouponCode      string
	IdempotencyKey  string
}

// OrderDetail is a placed order with its line snapshots and payment
// instructions. CouponDropped is set when the request named a coupon that
// failed resolution and the order proceeded without a discount.
type OrderDetail struct {
	Order         repository.Order
	Items         []repository.OrderItem
	Instructions  domain.PaymentInstructions
	CouponDropped bool
}

type checkoutService struct {
	store   repository.Store
	coupons CouponResolver
	ledger  *Ledger
	pricing PricingConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewCheckoutService creates a new CheckoutService instance
func NewCheckoutService(store repository.Store, coupons CouponResolver, ledger *Ledger, pricing PricingConfig, metrics *telemetry.Metrics, logger *slog.Logger) CheckoutService {
	return &checkoutService{
		store:   store,
		coupons: coupons,
		ledger:  ledger,
		pricing: pricing,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// PlaceOrder turns the owner's cart into an order. The whole
// materialization - stock decrements, order row, line snapshots, cart
// clear - commits atomically or not at all.
//
// Validation runs twice on purpose. The pre-check outside the transaction
// rejects hopeless carts cheaply with the full issue list; the guarded
// decrements inside the transaction are what actually prevent overselling
// when two checkouts race between pre-check and commit.
func (s *checkoutService) PlaceOrder(ctx context.Context, ownerID string, req PlaceOrderRequest) (*OrderDetail, error) {
	if !domain.ValidPaymentMethod(req.PaymentMethod) {
		return nil, ErrInvalidPaymentMethod
	}

	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	if req.IdempotencyKey != "" {
		if detail, ok, err := s.findExisting(ctx, ownerUUID, req.IdempotencyKey); err != nil {
			return nil, err
		} else if ok {
			return detail, nil
		}
	}

	cart, err := s.store.GetCartByOwnerID(ctx, ownerUUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEmptyCart
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	lines, err := s.store.GetCartItems(ctx, cart.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart items: %w", err)
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	issues, err := validateCartLines(ctx, s.store, lines)
	if err != nil {
		return nil, err
	}
	result := domain.ValidationResult{Issues: issues}
	if blocking := result.BlockingIssues(); len(blocking) > 0 {
		s.metrics.RecordRejection("validation")
		s.logger.InfoContext(ctx, "checkout rejected by validation",
			slog.String("owner_id", ownerID),
			slog.Int("blocking_issues", len(blocking)))
		return nil, &domain.CheckoutRejectedError{Issues: issues}
	}

	coupon, couponDropped, err := s.resolveCoupon(ctx, req.CouponCode)
	if err != nil {
		return nil, err
	}
	if couponDropped {
		s.logger.InfoContext(ctx, "coupon dropped at checkout",
			slog.String("owner_id", ownerID),
			slog.String("coupon_code", req.CouponCode))
	}

	var (
		order      repository.Order
		orderItems []repository.OrderItem
		totalUnits int64
	)

	err = s.store.ExecTx(ctx, func(q repository.Querier) error {
		snapshots, subtotal, units, txErr := s.reserveStock(ctx, q, lines)
		if txErr != nil {
			return txErr
		}
		totalUnits = units

		totals := CalculateTotals(subtotal, req.PaymentMethod, coupon, s.pricing)

		orderNumber, txErr := newOrderNumber(s.now())
		if txErr != nil {
			return txErr
		}

		order, txErr = q.CreateOrder(ctx, buildOrderParams(ownerUUID, orderNumber, req, coupon, totals))
		if txErr != nil {
			return fmt.Errorf("failed to create order: %w", txErr)
		}

		orderItems = orderItems[:0]
		for _, snap := range snapshots {
			snap.OrderID = order.ID
			item, itemErr := q.CreateOrderItem(ctx, snap)
			if itemErr != nil {
				return fmt.Errorf("failed to create order item: %w", itemErr)
			}
			orderItems = append(orderItems, item)
		}

		if txErr = q.ClearCart(ctx, cart.ID); txErr != nil {
			return fmt.Errorf("failed to clear cart: %w", txErr)
		}

		return nil
	})
	if err != nil {
		var conflict *domain.StockConflictError
		if errors.As(err, &conflict) {
			s.metrics.RecordStockConflict()
			s.logger.WarnContext(ctx, "stock conflict during checkout",
				slog.String("owner_id", ownerID))
			return nil, err
		}
		// Two submissions with the same key can both pass the replay check
		// and race to insert; the loser's unique violation means the order
		// already exists, so hand back the winner's.
		if req.IdempotencyKey != "" && isIdempotencyKeyViolation(err) {
			if detail, ok, findErr := s.findExisting(ctx, ownerUUID, req.IdempotencyKey); findErr == nil && ok {
				s.logger.InfoContext(ctx, "idempotency key raced, replaying stored order",
					slog.String("owner_id", ownerID),
					slog.String("order_number", detail.Order.OrderNumber))
				return detail, nil
			}
		}
		return nil, err
	}

	s.metrics.RecordOrder(order.TotalCents, len(orderItems))
	s.metrics.RecordSale(totalUnits, order.SubtotalCents)
	if req.CouponCode != "" {
		s.metrics.RecordCoupon(!couponDropped)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("owner_id", ownerID),
		slog.String("order_number", order.OrderNumber),
		slog.Int64("total_cents", order.TotalCents),
		slog.Int("items", len(orderItems)))

	return &OrderDetail{
		Order:         order,
		Items:         orderItems,
		Instructions:  domain.InstructionsFor(domain.PaymentMethod(order.PaymentMethod)),
		CouponDropped: couponDropped,
	}, nil
}

// GetOrder fetches a previously placed order by its number, scoped to the
// owner.
func (s *checkoutService) GetOrder(ctx context.Context, ownerID string, orderNumber string) (*OrderDetail, error) {
	ownerUUID, err := scanUUID(ownerID)
	if err != nil {
		return nil, ErrInvalidOwnerID
	}

	order, err := s.store.GetOrderByNumber(ctx, repository.GetOrderByNumberParams{
		OwnerID:     ownerUUID,
		OrderNumber: orderNumber,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	items, err := s.store.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}

	return &OrderDetail{
		Order:        order,
		Items:        items,
		Instructions: domain.InstructionsFor(domain.PaymentMethod(order.PaymentMethod)),
	}, nil
}

// findExisting returns the order previously materialized under key, if
// one exists. Replays return the stored order untouched; the current cart
// state is irrelevant.
func (s *checkoutService) findExisting(ctx context.Context, ownerUUID pgtype.UUID, key string) (*OrderDetail, bool, error) {
	order, err := s.store.GetOrderByIdempotencyKey(ctx, repository.GetOrderByIdempotencyKeyParams{
		OwnerID:        ownerUUID,
		IdempotencyKey: key,
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to check idempotency key: %w", err)
	}

	items, err := s.store.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to get order items: %w", err)
	}

	return &OrderDetail{
		Order:        order,
		Items:        items,
		Instructions: domain.InstructionsFor(domain.PaymentMethod(order.PaymentMethod)),
	}, true, nil
}

// isIdempotencyKeyViolation reports whether err is the unique violation
// raised when two checkouts insert under the same idempotency key.
func isIdempotencyKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == "23505" &&
		pgErr.ConstraintName == "orders_owner_idempotency_key"
}

// resolveCoupon looks up an optional coupon code. Resolution failure is
// recoverable: the order proceeds at full price with dropped=true rather
// than failing. Infrastructure errors still propagate.
func (s *checkoutService) resolveCoupon(ctx context.Context, code string) (coupon *domain.Coupon, dropped bool, err error) {
	if code == "" {
		return nil, false, nil
	}

	coupon, err = s.coupons.Resolve(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidCoupon) {
			return nil, true, nil
		}
		return nil, false, err
	}

	return coupon, false, nil
}

// reserveStock snapshots each cart line at its current catalog price and
// applies the guarded decrement. A guard rejection reads the product's
// remaining quantity and aborts the transaction with a StockConflictError,
// so no partial decrements survive.
func (s *checkoutService) reserveStock(ctx context.Context, q repository.Querier, lines []repository.GetCartItemsRow) ([]repository.CreateOrderItemParams, int64, int64, error) {
	snapshots := make([]repository.CreateOrderItemParams, 0, len(lines))
	var subtotal, units int64

	for _, line := range lines {
		product, err := q.GetProductByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, 0, 0, &domain.StockConflictError{Issues: []domain.LineIssue{{
					ProductID:         uuidString(line.ProductID),
					Issue:             domain.IssueProductNotFound,
					RequestedQuantity: line.Quantity,
				}}}
			}
			return nil, 0, 0, fmt.Errorf("failed to get product: %w", err)
		}

		lineSubtotal := product.PriceCents * line.Quantity

		if err := s.ledger.Reduce(ctx, q, line.ProductID, line.Quantity, lineSubtotal); err != nil {
			if errors.Is(err, ErrInsufficientStock) {
				available := product.StockQuantity
				if available < 0 {
					available = 0
				}
				return nil, 0, 0, &domain.StockConflictError{Issues: []domain.LineIssue{{
					ProductID:         uuidString(line.ProductID),
					Issue:             domain.IssueInsufficientStock,
					RequestedQuantity: line.Quantity,
					AvailableQuantity: &available,
				}}}
			}
			return nil, 0, 0, err
		}

		snapshots = append(snapshots, repository.CreateOrderItemParams{
			ProductID:         line.ProductID,
			ProductName:       product.Name,
			UnitPriceCents:    product.PriceCents,
			Quantity:          line.Quantity,
			LineSubtotalCents: lineSubtotal,
		})
		subtotal += lineSubtotal
		units += line.Quantity
	}

	return snapshots, subtotal, units, nil
}

func buildOrderParams(ownerUUID pgtype.UUID, orderNumber string, req PlaceOrderRequest, coupon *domain.Coupon, totals Totals) repository.CreateOrderParams {
	params := repository.CreateOrderParams{
		OwnerID:        ownerUUID,
		OrderNumber:    orderNumber,
		Status:         string(domain.OrderStatusPending),
		PaymentStatus:  string(domain.PaymentStatusPending),
		PaymentMethod:  string(req.PaymentMethod),
		ContactName:    req.Contact.FullName,
		ContactEmail:   req.Contact.Email,
		ContactPhone:   req.Contact.Phone,
		ShipLine1:      req.ShippingAddress.Line1,
		ShipCity:       req.ShippingAddress.City,
		ShipPostalCode: req.ShippingAddress.PostalCode,
		ShipCountry:    req.ShippingAddress.Country,
		SubtotalCents:  totals.SubtotalCents,
		ShippingCents:  totals.ShippingCents,
		SurchargeCents: totals.SurchargeCents,
		DiscountCents:  totals.DiscountCents,
		TotalCents:     totals.TotalCents,
	}
	if req.ShippingAddress.Line2 != "" {
		params.ShipLine2 = pgtype.Text{String: req.ShippingAddress.Line2, Valid: true}
	}
	if req.ShippingAddress.State != "" {
		params.ShipState = pgtype.Text{String: req.ShippingAddress.State, Valid: true}
	}
	if coupon != nil {
		params.CouponCode = pgtype.Text{String: coupon.Code, Valid: true}
	}
	if req.IdempotencyKey != "" {
		params.IdempotencyKey = pgtype.Text{String: req.IdempotencyKey, Valid: true}
	}
	return params
}
