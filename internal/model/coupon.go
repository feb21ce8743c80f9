package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Coupon is a named discount token attachable to an open order.
type Coupon struct {
	ID     uuid.UUID       `json:"id" db:"id"`
	Code   string          `json:"code" db:"code"`
	Amount decimal.Decimal `json:"amount" db:"amount"`
}

// CouponRequest is the request payload for attaching a coupon to the open order.
type CouponRequest struct {
	Code string `json:"code"`
}
