package model

import (
	"fmt"
	"strings"
)

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable,omitempty"`
	RetryPath string `json:"retryPath,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeItemNotFound         = "ITEM_NOT_FOUND"
	ErrCodeNoActiveOrder        = "NO_ACTIVE_ORDER"
	ErrCodeItemNotInCart        = "ITEM_NOT_IN_CART"
	ErrCodeCouponNotFound       = "COUPON_NOT_FOUND"
	ErrCodeOrderNotFound        = "ORDER_NOT_FOUND"
	ErrCodeNoBillingAddress     = "NO_BILLING_ADDRESS"
	ErrCodeNoDefaultAddress     = "NO_DEFAULT_ADDRESS"
	ErrCodeInvalidPaymentOption = "INVALID_PAYMENT_OPTION"
	ErrCodeValidationFailed     = "VALIDATION_FAILED"
	ErrCodePaymentFailed        = "PAYMENT_FAILED"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeInternalError        = "INTERNAL_ERROR"
)

// DomainError is a business-rule failure that handlers map to a client-visible
// status and message.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// NewValidationError builds a DomainError naming the missing request fields.
func NewValidationError(missing []string) *DomainError {
	return NewDomainError(ErrCodeValidationFailed,
		fmt.Sprintf("missing required fields: %s", strings.Join(missing, ", ")))
}

// Common domain errors
var (
	ErrItemNotFound         = NewDomainError(ErrCodeItemNotFound, "Item not found")
	ErrNoActiveOrder        = NewDomainError(ErrCodeNoActiveOrder, "You have no active order")
	ErrItemNotInCart        = NewDomainError(ErrCodeItemNotInCart, "This item is not in your cart")
	ErrCouponNotFound       = NewDomainError(ErrCodeCouponNotFound, "This coupon does not exist")
	ErrOrderNotFound        = NewDomainError(ErrCodeOrderNotFound, "Order not found")
	ErrNoBillingAddress     = NewDomainError(ErrCodeNoBillingAddress, "You have no billing address")
	ErrNoDefaultAddress     = NewDomainError(ErrCodeNoDefaultAddress, "No default address is stored for this type")
	ErrInvalidPaymentOption = NewDomainError(ErrCodeInvalidPaymentOption, "Invalid payment option selected")
)
