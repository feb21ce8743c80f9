package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order aggregates a user's cart lines. A user has at most one order with
// Ordered=false (the open cart); paying finalises it and the next cart add
// creates a fresh order.
type Order struct {
	ID                uuid.UUID  `json:"id" db:"id"`
	UserID            uuid.UUID  `json:"userId" db:"user_id"`
	Ordered           bool       `json:"ordered" db:"ordered"`
	StartDate         time.Time  `json:"startDate" db:"start_date"`
	OrderedDate       *time.Time `json:"orderedDate,omitempty" db:"ordered_date"`
	ShippingAddressID *uuid.UUID `json:"shippingAddressId,omitempty" db:"shipping_address_id"`
	BillingAddressID  *uuid.UUID `json:"billingAddressId,omitempty" db:"billing_address_id"`
	CouponID          *uuid.UUID `json:"couponId,omitempty" db:"coupon_id"`
	PaymentID         *uuid.UUID `json:"paymentId,omitempty" db:"payment_id"`
	RefCode           *string    `json:"refCode,omitempty" db:"ref_code"`
	RefundRequested   bool       `json:"refundRequested" db:"refund_requested"`
}

// OrderItem is a single cart line: a quantity of one item inside one order.
type OrderItem struct {
	ID       uuid.UUID `json:"id" db:"id"`
	OrderID  uuid.UUID `json:"orderId" db:"order_id"`
	UserID   uuid.UUID `json:"userId" db:"user_id"`
	ItemID   uuid.UUID `json:"itemId" db:"item_id"`
	Quantity int       `json:"quantity" db:"quantity"`
	Ordered  bool      `json:"ordered" db:"ordered"`
}

// LineTotal returns the price of a cart line: effective unit price times quantity.
func LineTotal(item *Item, quantity int) decimal.Decimal {
	return item.EffectivePrice().Mul(decimal.NewFromInt(int64(quantity)))
}

// OrderTotal sums the line totals of an order. Coupon discount arithmetic is
// deliberately not applied here; the attached coupon is reported alongside
// the total instead.
func OrderTotal(lines []OrderItem, items map[uuid.UUID]Item) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		item, ok := items[line.ItemID]
		if !ok {
			continue
		}
		total = total.Add(LineTotal(&item, line.Quantity))
	}
	return total
}

// SummaryLine pairs a cart line with its catalogue item for display.
type SummaryLine struct {
	Item      Item            `json:"item"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// OrderSummary is the response payload for the order-summary endpoint.
type OrderSummary struct {
	OrderID   uuid.UUID       `json:"orderId"`
	StartDate time.Time       `json:"startDate"`
	Lines     []SummaryLine   `json:"lines"`
	Total     decimal.Decimal `json:"total"`
	Coupon    *Coupon         `json:"coupon,omitempty"`
}
