package payment

import (
	"context"
	"errors"
	"fmt"
)

// Gateway is the opaque charge capability of the external payment provider.
// The provider SDK itself lives outside this service; implementations adapt
// it to this single call.
type Gateway interface {
	// Charge attempts to capture amountCents against the given source token
	// and returns the provider's charge identifier.
	Charge(ctx context.Context, amountCents int64, sourceToken string) (string, error)
}

// ErrorCode classifies gateway failures. Every GatewayError is surfaced to
// the user as a retryable warning on the payment step; failures that are not
// a GatewayError abort the request instead.
type ErrorCode string

const (
	ErrCodeDeclined         ErrorCode = "declined"
	ErrCodeRateLimited      ErrorCode = "rate_limited"
	ErrCodeMalformedRequest ErrorCode = "malformed_request"
	ErrCodeAuthFailure      ErrorCode = "auth_failure"
	ErrCodeConnectivity     ErrorCode = "connectivity"
	ErrCodeOther            ErrorCode = "other"
)

// GatewayError is a typed failure returned by a Gateway implementation.
type GatewayError struct {
	Code    ErrorCode
	Message string
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s: %s", e.Code, e.Message)
}

// NewGatewayError creates a typed gateway error.
func NewGatewayError(code ErrorCode, message string) *GatewayError {
	return &GatewayError{Code: code, Message: message}
}

// AsGatewayError unwraps err into a *GatewayError when it is one.
func AsGatewayError(err error) (*GatewayError, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr, true
	}
	return nil, false
}
