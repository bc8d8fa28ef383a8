package service

import (
	"github.com/dukerupert/vanir/internal/domain"
)

// Lookup errors - domain.ENOTFOUND
var (
	ErrProductNotFound  = domain.Errorf(domain.ENOTFOUND, "", "Product not found")
	ErrCartNotFound     = domain.Errorf(domain.ENOTFOUND, "", "Cart not found")
	ErrCartItemNotFound = domain.Errorf(domain.ENOTFOUND, "", "Cart item not found")
	ErrOrderNotFound    = domain.Errorf(domain.ENOTFOUND, "", "Order not found")
)

// Validation errors - domain.EINVALID
var (
	ErrInvalidQuantity      = domain.Errorf(domain.EINVALID, "", "Quantity must be greater than 0")
	ErrInvalidOwnerID       = domain.Errorf(domain.EINVALID, "", "Invalid owner ID format")
	ErrInvalidProductID     = domain.Errorf(domain.EINVALID, "", "Invalid product ID format")
	ErrInvalidPaymentMethod = domain.Errorf(domain.EINVALID, "", "Unsupported payment method")
	ErrEmptyCart            = domain.Errorf(domain.EINVALID, "", "Cart is empty")
	ErrInvalidCoupon        = domain.Errorf(domain.EINVALID, "", "Coupon code is invalid or expired")
)

// Conflict errors - domain.ECONFLICT
var (
	ErrInsufficientStock = domain.Errorf(domain.ECONFLICT, "", "Insufficient stock for one or more items")
)
