package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dukerupert/vanir/internal/domain"
	"github.com/dukerupert/vanir/internal/middleware"
	"github.com/go-playground/validator/v10"
)

// errorBody is the JSON envelope for all error responses.
type errorBody struct {
	Code    string             `json:"code"`
	Message string             `json:"message"`
	Issues  []domain.LineIssue `json:"issues,omitempty"`
	Fields  map[string]string  `json:"fields,omitempty"`
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// respondError translates service errors into HTTP responses. Checkout
// rejections and stock conflicts carry their line issues in the body so
// clients can show the customer exactly what went wrong.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	logger := middleware.GetLogger(r.Context())

	var rejected *domain.CheckoutRejectedError
	if errors.As(err, &rejected) {
		respondJSON(w, http.StatusBadRequest, map[string]errorBody{"error": {
			Code:    "checkout_rejected",
			Message: "The cart cannot be checked out in its current state",
			Issues:  rejected.Issues,
		}})
		return
	}

	var conflict *domain.StockConflictError
	if errors.As(err, &conflict) {
		respondJSON(w, http.StatusConflict, map[string]errorBody{"error": {
			Code:    "stock_conflict",
			Message: "Stock changed while placing the order; please review your cart and retry",
			Issues:  conflict.Issues,
		}})
		return
	}

	code := domain.ErrorCode(err)
	status := statusForCode(code)

	if status >= 500 {
		logger.Error("request failed", "error", err, "op", domain.ErrorOp(err))
	} else {
		logger.Info("request rejected", "error", err, "code", code)
	}

	respondJSON(w, status, map[string]errorBody{"error": {
		Code:    code,
		Message: domain.ErrorMessage(err),
	}})
}

// respondValidationError maps struct validation failures to a 400 with a
// per-field breakdown.
func respondValidationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	var invalid validator.ValidationErrors
	if errors.As(err, &invalid) {
		for _, fe := range invalid {
			fields[fe.Field()] = fe.Tag()
		}
	}

	respondJSON(w, http.StatusBadRequest, map[string]errorBody{"error": {
		Code:    domain.EINVALID,
		Message: "Request validation failed",
		Fields:  fields,
	}})
}

// respondBadJSON handles unparseable request bodies.
func respondBadJSON(w http.ResponseWriter) {
	respondJSON(w, http.StatusBadRequest, map[string]errorBody{"error": {
		Code:    domain.EINVALID,
		Message: "Request body must be valid JSON",
	}})
}

func statusForCode(code string) int {
	switch code {
	case domain.EINVALID:
		return http.StatusBadRequest
	case domain.EUNAUTHORIZED:
		return http.StatusUnauthorized
	case domain.EFORBIDDEN:
		return http.StatusForbidden
	case domain.ENOTFOUND:
		return http.StatusNotFound
	case domain.ECONFLICT:
		return http.StatusConflict
	case domain.ENOTIMPL:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}
