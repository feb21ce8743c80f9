package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment records a successful gateway charge against an order.
// Exactly one payment is created per paid order.
type Payment struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	ChargeID  string          `json:"chargeId" db:"charge_id"`
	UserID    uuid.UUID       `json:"userId" db:"user_id"`
	Amount    decimal.Decimal `json:"amount" db:"amount"`
	CreatedAt time.Time       `json:"createdAt" db:"created_at"`
}

// PaymentRequest is the request payload for the payment endpoint. The source
// token is the opaque card/wallet token produced by the out-of-scope
// client-side payment widget.
type PaymentRequest struct {
	SourceToken string `json:"sourceToken"`
}

// PaymentReceipt is the response payload after a successful charge.
type PaymentReceipt struct {
	OrderID  uuid.UUID       `json:"orderId"`
	RefCode  string          `json:"refCode"`
	ChargeID string          `json:"chargeId"`
	Amount   decimal.Decimal `json:"amount"`
}
