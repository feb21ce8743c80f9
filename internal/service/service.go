package service

import (
	"context"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
)

// CatalogService defines read-only operations over the item catalogue.
type CatalogService interface {
	// GetAll retrieves items with pagination.
	GetAll(ctx context.Context, limit, offset int) ([]model.Item, error)

	// GetBySlug retrieves a single item by slug.
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)
}

// CartService defines operations on the user's open order.
type CartService interface {
	// AddItem adds one unit of the item to the user's cart, creating the
	// open order and the cart line as needed.
	AddItem(ctx context.Context, userID uuid.UUID, slug string) error

	// RemoveOne decrements the cart line's quantity by one. At quantity one
	// the line is left unchanged.
	RemoveOne(ctx context.Context, userID uuid.UUID, slug string) error

	// RemoveAll deletes the cart line outright, regardless of quantity.
	RemoveAll(ctx context.Context, userID uuid.UUID, slug string) error

	// Summary returns the user's open order with lines, item details and total.
	Summary(ctx context.Context, userID uuid.UUID) (*model.OrderSummary, error)
}

// CheckoutService defines checkout submission and coupon attachment.
type CheckoutService interface {
	// Submit resolves shipping and billing addresses, attaches them to the
	// open order and selects the payment route.
	Submit(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error)

	// ApplyCoupon attaches the coupon with the given code to the open order.
	ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) error
}

// PaymentService defines payment capture against the open order.
type PaymentService interface {
	// Pay charges the order total through the gateway and finalises the order.
	Pay(ctx context.Context, userID uuid.UUID, option string, req *model.PaymentRequest) (*model.PaymentReceipt, error)
}

// RefundService defines post-purchase refund requests.
type RefundService interface {
	// Request records a refund request against the order identified by its
	// reference code.
	Request(ctx context.Context, req *model.RefundRequest) (*model.Refund, error)
}
