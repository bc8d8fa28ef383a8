package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/dukerupert/vanir/internal/router"
	"github.com/dukerupert/vanir/internal/service"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgtype"
)

// IdempotencyKeyHeader lets clients retry POST /api/orders safely: the
// same key replays the stored order instead of materializing a second one.
const IdempotencyKeyHeader = "Idempotency-Key"

// CheckoutHandler serves order placement and retrieval.
type CheckoutHandler struct {
	checkout service.CheckoutService
	validate *validator.Validate
	logger   *slog.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(checkout service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CheckoutHandler{
		checkout: checkout,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// RegisterRoutes registers checkout routes on the given router group.
func (h *CheckoutHandler) RegisterRoutes(r *router.Router) {
	r.Post("/api/orders", h.PlaceOrder)
	r.Get("/api/orders/{orderNumber}", h.GetOrder)
}

type placeOrderRequest struct {
	Contact         domain.ContactInfo `json:"contact" validate:"required"`
	ShippingAddress domain.Address     `json:"shipping_address" validate:"required"`
	PaymentMethod   string             `json:"payment_method" validate:"required"`
	CouponCode      string             `json:"coupon_code"`
}

type orderItemResponse struct {
	ProductID         pgtype.UUID `json:"product_id"`
	ProductName       string      `json:"product_name"`
	UnitPriceCents    int64       `json:"unit_price_cents"`
	Quantity          int64       `json:"quantity"`
	LineSubtotalCents int64       `json:"line_subtotal_cents"`
}

type orderResponse struct {
	OrderNumber    string                     `json:"order_number"`
	Status         string                     `json:"status"`
	PaymentStatus  string                     `json:"payment_status"`
	PaymentMethod  string                     `json:"payment_method"`
	Items          []orderItemResponse        `json:"items"`
	SubtotalCents  int64                      `json:"subtotal_cents"`
	ShippingCents  int64                      `json:"shipping_cents"`
	SurchargeCents int64                      `json:"surcharge_cents"`
	DiscountCents  int64                      `json:"discount_cents"`
	TotalCents     int64                      `json:"total_cents"`
	CouponCode     string                     `json:"coupon_code,omitempty"`
	CouponDropped  bool                       `json:"coupon_dropped,omitempty"`
	Instructions   domain.PaymentInstructions `json:"payment_instructions"`
	CreatedAt      pgtype.Timestamptz         `json:"created_at"`
}

func orderBody(detail *service.OrderDetail) orderResponse {
	items := make([]orderItemResponse, 0, len(detail.Items))
	for _, item := range detail.Items {
		items = append(items, orderItemResponse{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			UnitPriceCents:    item.UnitPriceCents,
			Quantity:          item.Quantity,
			LineSubtotalCents: item.LineSubtotalCents,
		})
	}

	order := detail.Order
	resp := orderResponse{
		OrderNumber:    order.OrderNumber,
		Status:         order.Status,
		PaymentStatus:  order.PaymentStatus,
		PaymentMethod:  order.PaymentMethod,
		Items:          items,
		SubtotalCents:  order.SubtotalCents,
		ShippingCents:  order.ShippingCents,
		SurchargeCents: order.SurchargeCents,
		DiscountCents:  order.DiscountCents,
		TotalCents:     order.TotalCents,
		CouponDropped:  detail.CouponDropped,
		Instructions:   detail.Instructions,
		CreatedAt:      order.CreatedAt,
	}
	if order.CouponCode.Valid {
		resp.CouponCode = order.CouponCode.String
	}
	return resp
}

// PlaceOrder handles POST /api/orders.
//
// Response codes:
// - 201 Created: order materialized (or replayed via Idempotency-Key)
// - 400 Bad Request: malformed body, validation failure, or cart issues
//   (the body carries the full per-line issue list)
// - 409 Conflict: stock changed between validation and commit
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req placeOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		respondValidationError(w, err)
		return
	}

	detail, err := h.checkout.PlaceOrder(r.Context(), ownerID, service.PlaceOrderRequest{
		Contact:         req.Contact,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   domain.PaymentMethod(req.PaymentMethod),
		CouponCode:      req.CouponCode,
		IdempotencyKey:  r.Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, orderBody(detail))
}

// GetOrder handles GET /api/orders/{orderNumber}
func (h *CheckoutHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	orderNumber := r.PathValue("orderNumber")

	detail, err := h.checkout.GetOrder(r.Context(), ownerID, orderNumber)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, orderBody(detail))
}
