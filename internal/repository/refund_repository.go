package repository

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// refundRepository implements the RefundRepository interface using PostgreSQL.
type refundRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewRefundRepository creates a new PostgreSQL-backed refund repository.
func NewRefundRepository(pool *pgxpool.Pool, logger zerolog.Logger) RefundRepository {
	return &refundRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "refund").Logger(),
	}
}

// Create inserts a refund request within the provided transaction.
func (r *refundRepository) Create(ctx context.Context, tx pgx.Tx, refund *model.Refund) error {
	query := `
		INSERT INTO refunds (id, order_id, email, message, accepted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query, refund.ID, refund.OrderID, refund.Email,
		refund.Message, refund.Accepted, refund.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", refund.OrderID.String()).
			Msg("failed to create refund")
		return fmt.Errorf("failed to create refund: %w", err)
	}

	r.logger.Debug().
		Str("refund_id", refund.ID.String()).
		Str("order_id", refund.OrderID.String()).
		Msg("refund created successfully")

	return nil
}
