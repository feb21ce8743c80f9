package repository

import (
	"context"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ItemRepository defines the interface for catalogue data access.
type ItemRepository interface {
	// GetAll retrieves items with pagination support, ordered by title.
	GetAll(ctx context.Context, limit, offset int) ([]model.Item, error)

	// GetBySlug retrieves a single item by its slug. Returns (nil, nil) when
	// no item carries the slug.
	GetBySlug(ctx context.Context, slug string) (*model.Item, error)

	// GetByIDs retrieves multiple items by their IDs.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error)
}

// OrderRepository defines the interface for order and cart-line data access.
// Multi-step mutations receive an explicit transaction started via BeginTx.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// GetOpenOrder retrieves the user's order with ordered=false, or (nil, nil)
	// when the user has no open cart.
	GetOpenOrder(ctx context.Context, userID uuid.UUID) (*model.Order, error)

	// GetOpenOrderForUpdate is GetOpenOrder with a row lock, run inside the
	// provided transaction. Serialises concurrent cart mutations per user.
	GetOpenOrderForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error)

	// GetByID retrieves an order by its ID, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByRefCode retrieves an order by its post-payment reference code,
	// or (nil, nil) when absent.
	GetByRefCode(ctx context.Context, refCode string) (*model.Order, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// UpdateOrder persists the mutable order columns (addresses, coupon,
	// payment, ordered state, reference code, refund flag) within the
	// provided transaction.
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetOrderItems retrieves all cart lines of an order.
	GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)

	// GetOrderItem retrieves the cart line for one item of an order, or
	// (nil, nil) when the item is not in the cart.
	GetOrderItem(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error)

	// UpsertOrderItem inserts a cart line or, when the (order, item) pair
	// already exists, increments its quantity by the given line's quantity.
	UpsertOrderItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// UpdateOrderItemQuantity sets the quantity of a cart line.
	UpdateOrderItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error

	// DeleteOrderItem removes a cart line outright.
	DeleteOrderItem(ctx context.Context, id uuid.UUID) error

	// MarkOrderItemsOrdered flags every line of an order as ordered within
	// the provided transaction.
	MarkOrderItemsOrdered(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error
}

// AddressRepository defines the interface for address-book data access.
type AddressRepository interface {
	// GetDefault retrieves the user's default address of the given type,
	// or (nil, nil) when none is stored.
	GetDefault(ctx context.Context, userID uuid.UUID, addrType model.AddressType) (*model.Address, error)

	// Create inserts a new address within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, address *model.Address) error

	// ClearDefault unsets the default flag on every address of the given
	// (user, type) pair within the provided transaction.
	ClearDefault(ctx context.Context, tx pgx.Tx, userID uuid.UUID, addrType model.AddressType) error
}

// CouponRepository defines the interface for coupon data access.
type CouponRepository interface {
	// GetByCode retrieves a coupon by its code, or (nil, nil) when absent.
	GetByCode(ctx context.Context, code string) (*model.Coupon, error)

	// GetByID retrieves a coupon by its ID, or (nil, nil) when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error)

	// Upsert inserts coupons, updating the discount amount on code conflicts.
	Upsert(ctx context.Context, coupons []model.Coupon) error
}

// PaymentRepository defines the interface for payment data access.
type PaymentRepository interface {
	// Create inserts a payment record within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error
}

// RefundRepository defines the interface for refund data access.
type RefundRepository interface {
	// Create inserts a refund request within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, refund *model.Refund) error
}
