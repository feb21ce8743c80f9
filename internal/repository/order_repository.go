package repository

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, user_id, ordered, start_date, ordered_date,
	shipping_address_id, billing_address_id, coupon_id, payment_id,
	ref_code, refund_requested`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	err := row.Scan(&o.ID, &o.UserID, &o.Ordered, &o.StartDate, &o.OrderedDate,
		&o.ShippingAddressID, &o.BillingAddressID, &o.CouponID, &o.PaymentID,
		&o.RefCode, &o.RefundRequested)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOpenOrder retrieves the user's order with ordered=false.
func (r *orderRepository) GetOpenOrder(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND NOT ordered
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("user_id", userID.String()).Msg("no open order")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query open order")
		return nil, fmt.Errorf("failed to query open order: %w", err)
	}

	return order, nil
}

// GetOpenOrderForUpdate locks and retrieves the user's open order inside tx.
func (r *orderRepository) GetOpenOrderForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1 AND NOT ordered
		FOR UPDATE
	`

	order, err := scanOrder(tx.QueryRow(ctx, query, userID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to lock open order")
		return nil, fmt.Errorf("failed to lock open order: %w", err)
	}

	return order, nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return order, nil
}

// GetByRefCode retrieves an order by its post-payment reference code.
func (r *orderRepository) GetByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE ref_code = $1
	`

	order, err := scanOrder(r.pool.QueryRow(ctx, query, refCode))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("ref_code", refCode).Msg("order not found by ref code")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("ref_code", refCode).Msg("failed to query order by ref code")
		return nil, fmt.Errorf("failed to query order by ref code: %w", err)
	}

	return order, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, ordered, start_date, refund_requested)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, order.ID, order.UserID, order.Ordered,
		order.StartDate, order.RefundRequested)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Str("user_id", order.UserID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Msg("order created successfully")

	return nil
}

// UpdateOrder persists the mutable order columns within the provided transaction.
func (r *orderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		UPDATE orders
		SET ordered = $2,
		    ordered_date = $3,
		    shipping_address_id = $4,
		    billing_address_id = $5,
		    coupon_id = $6,
		    payment_id = $7,
		    ref_code = $8,
		    refund_requested = $9
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, order.ID, order.Ordered, order.OrderedDate,
		order.ShippingAddressID, order.BillingAddressID, order.CouponID,
		order.PaymentID, order.RefCode, order.RefundRequested)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found for update", order.ID)
	}

	return nil
}

// GetOrderItems retrieves all cart lines of an order.
func (r *orderRepository) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	query := `
		SELECT id, order_id, user_id, item_id, quantity, ordered
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		err := rows.Scan(&item.ID, &item.OrderID, &item.UserID, &item.ItemID,
			&item.Quantity, &item.Ordered)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// GetOrderItem retrieves the cart line for one item of an order.
func (r *orderRepository) GetOrderItem(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	query := `
		SELECT id, order_id, user_id, item_id, quantity, ordered
		FROM order_items
		WHERE order_id = $1 AND item_id = $2
	`

	var item model.OrderItem
	err := r.pool.QueryRow(ctx, query, orderID, itemID).Scan(&item.ID, &item.OrderID,
		&item.UserID, &item.ItemID, &item.Quantity, &item.Ordered)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Str("item_id", itemID.String()).
			Msg("failed to query order item")
		return nil, fmt.Errorf("failed to query order item: %w", err)
	}

	return &item, nil
}

// UpsertOrderItem inserts a cart line or increments the quantity of the
// existing (order, item) line.
func (r *orderRepository) UpsertOrderItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, user_id, item_id, quantity, ordered)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id, item_id)
		DO UPDATE SET quantity = order_items.quantity + EXCLUDED.quantity
	`

	_, err := tx.Exec(ctx, query, item.ID, item.OrderID, item.UserID,
		item.ItemID, item.Quantity, item.Ordered)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", item.OrderID.String()).
			Str("item_id", item.ItemID.String()).
			Msg("failed to upsert order item")
		return fmt.Errorf("failed to upsert order item: %w", err)
	}

	return nil
}

// UpdateOrderItemQuantity sets the quantity of a cart line.
func (r *orderRepository) UpdateOrderItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	query := `UPDATE order_items SET quantity = $2 WHERE id = $1`

	tag, err := r.pool.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_item_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to update order item quantity")
		return fmt.Errorf("failed to update order item quantity: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order item %s not found for update", id)
	}

	return nil
}

// DeleteOrderItem removes a cart line outright.
func (r *orderRepository) DeleteOrderItem(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM order_items WHERE id = $1`

	_, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_item_id", id.String()).
			Msg("failed to delete order item")
		return fmt.Errorf("failed to delete order item: %w", err)
	}

	return nil
}

// MarkOrderItemsOrdered flags every line of an order as ordered.
func (r *orderRepository) MarkOrderItemsOrdered(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	query := `UPDATE order_items SET ordered = TRUE WHERE order_id = $1`

	_, err := tx.Exec(ctx, query, orderID)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Msg("failed to mark order items ordered")
		return fmt.Errorf("failed to mark order items ordered: %w", err)
	}

	return nil
}
