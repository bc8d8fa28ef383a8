package domain

import (
	"errors"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
	}{
		{
			name: "message only",
			err: &Error{
				Code:    EINVALID,
				Message: "invalid quantity",
			},
			expected: "invalid quantity",
		},
		{
			name: "with operation",
			err: &Error{
				Code:    EINVALID,
				Op:      "cart.add_item",
				Message: "invalid quantity",
			},
			expected: "cart.add_item: invalid quantity",
		},
		{
			name: "with wrapped error",
			err: &Error{
				Code:    EINTERNAL,
				Op:      "order.place",
				Message: "failed to persist order",
				Err:     errors.New("connection refused"),
			},
			expected: "order.place: failed to persist order: connection refused",
		},
		{
			name: "wrapped error without op",
			err: &Error{
				Code:    EINTERNAL,
				Message: "failed to persist order",
				Err:     errors.New("connection refused"),
			},
			expected: "failed to persist order: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error.Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	underlying := errors.New("underlying error")
	err := &Error{
		Code:    EINTERNAL,
		Message: "wrapped",
		Err:     underlying,
	}

	if unwrapped := err.Unwrap(); unwrapped != underlying {
		t.Errorf("Error.Unwrap() = %v, want %v", unwrapped, underlying)
	}

	if !errors.Is(err, underlying) {
		t.Error("errors.Is should find underlying error")
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "domain error",
			err:      Invalid("cart.add_item", "quantity must be positive"),
			expected: EINVALID,
		},
		{
			name:     "wrapped domain error",
			err:      Internal(errors.New("boom"), "order.place", "failed"),
			expected: EINTERNAL,
		},
		{
			name:     "plain error",
			err:      errors.New("something broke"),
			expected: EINTERNAL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ErrorCode(tt.err); got != tt.expected {
				t.Errorf("ErrorCode() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestErrorMessage_HidesInternalDetails(t *testing.T) {
	err := Internal(errors.New("pq: deadlock detected"), "order.place", "failed to persist order")

	msg := ErrorMessage(err)
	if msg != "An internal error occurred. Please try again later." {
		t.Errorf("ErrorMessage() leaked internal details: %q", msg)
	}

	if got := ErrorMessage(Errorf(ECONFLICT, "order.place", "stock depleted")); got != "stock depleted" {
		t.Errorf("ErrorMessage() = %q, want user-facing conflict message", got)
	}
}

func TestIsCode(t *testing.T) {
	err := NotFound("cart.remove_item", "cart item", "p1")

	if !IsCode(err, ENOTFOUND) {
		t.Error("IsCode should match ENOTFOUND")
	}
	if IsCode(err, EINVALID) {
		t.Error("IsCode should not match EINVALID")
	}
}
