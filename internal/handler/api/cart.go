package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/dukerupert/vanir/internal/router"
	"github.com/dukerupert/vanir/internal/service"
	"github.com/jackc/pgx/v5/pgtype"
)

// CartHandler serves the cart endpoints. All routes require an owner
// identity resolved by the OwnerID middleware.
type CartHandler struct {
	cart         service.CartService
	availability service.AvailabilityService
	pricing      service.PricingConfig
	logger       *slog.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cart service.CartService, availability service.AvailabilityService, pricing service.PricingConfig, logger *slog.Logger) *CartHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CartHandler{
		cart:         cart,
		availability: availability,
		pricing:      pricing,
		logger:       logger,
	}
}

// RegisterRoutes registers cart routes on the given router group.
func (h *CartHandler) RegisterRoutes(r *router.Router) {
	r.Get("/api/cart", h.GetCart)
	r.Post("/api/cart/add", h.AddItem)
	r.Put("/api/cart/items/{productID}", h.UpdateItem)
	r.Delete("/api/cart/items/{productID}", h.RemoveItem)
	r.Delete("/api/cart", h.ClearCart)
	r.Post("/api/cart/validate", h.ValidateCart)
}

type cartItemResponse struct {
	ProductID         pgtype.UUID `json:"product_id"`
	ProductName       string      `json:"product_name"`
	Quantity          int64       `json:"quantity"`
	UnitPriceCents    int64       `json:"unit_price_cents"`
	AddedPriceCents   int64       `json:"added_price_cents"`
	LineSubtotalCents int64       `json:"line_subtotal_cents"`
	PriceChanged      bool        `json:"price_changed"`
}

type cartResponse struct {
	Items         []cartItemResponse `json:"items"`
	SubtotalCents int64              `json:"subtotal_cents"`
	ItemCount     int64              `json:"item_count"`
	Currency      string             `json:"currency"`
}

func (h *CartHandler) cartBody(summary *service.CartSummary) cartResponse {
	items := make([]cartItemResponse, 0, len(summary.Items))
	for _, item := range summary.Items {
		items = append(items, cartItemResponse{
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			Quantity:          item.Quantity,
			UnitPriceCents:    item.UnitPriceCents,
			AddedPriceCents:   item.AddedPriceCents,
			LineSubtotalCents: item.LineSubtotalCents,
			PriceChanged:      item.PriceChanged,
		})
	}
	return cartResponse{
		Items:         items,
		SubtotalCents: summary.SubtotalCents,
		ItemCount:     summary.ItemCount,
		Currency:      h.pricing.Currency,
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	summary, err := h.cart.GetCartSummary(r.Context(), ownerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartBody(summary))
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// AddItem handles POST /api/cart/add
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}

	summary, err := h.cart.AddItem(r.Context(), ownerID, req.ProductID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartBody(summary))
}

type updateItemRequest struct {
	Quantity int64 `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/items/{productID}.
// Quantity 0 removes the line.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	productID := r.PathValue("productID")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadJSON(w)
		return
	}

	summary, err := h.cart.UpdateItemQuantity(r.Context(), ownerID, productID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartBody(summary))
}

// RemoveItem handles DELETE /api/cart/items/{productID}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())
	productID := r.PathValue("productID")

	summary, err := h.cart.RemoveItem(r.Context(), ownerID, productID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, h.cartBody(summary))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	if err := h.cart.ClearCart(r.Context(), ownerID); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ValidateCart handles POST /api/cart/validate.
// Read-only: reports every line issue without touching cart or stock.
func (h *CartHandler) ValidateCart(w http.ResponseWriter, r *http.Request) {
	ownerID := middleware.GetOwnerID(r.Context())

	result, err := h.availability.ValidateCart(r.Context(), ownerID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
