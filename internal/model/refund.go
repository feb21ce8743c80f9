package model

import (
	"time"

	"github.com/google/uuid"
)

// Refund is a post-purchase refund request, keyed by the order's reference
// code. Multiple refund requests may exist for the same order.
type Refund struct {
	ID        uuid.UUID `json:"id" db:"id"`
	OrderID   uuid.UUID `json:"orderId" db:"order_id"`
	Email     string    `json:"email" db:"email"`
	Message   string    `json:"message" db:"message"`
	Accepted  bool      `json:"accepted" db:"accepted"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// RefundRequest is the request payload for the refund endpoint.
type RefundRequest struct {
	RefCode string `json:"refCode"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
