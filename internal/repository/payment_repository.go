package repository

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// paymentRepository implements the PaymentRepository interface using PostgreSQL.
type paymentRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewPaymentRepository creates a new PostgreSQL-backed payment repository.
func NewPaymentRepository(pool *pgxpool.Pool, logger zerolog.Logger) PaymentRepository {
	return &paymentRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "payment").Logger(),
	}
}

// Create inserts a payment record within the provided transaction.
func (r *paymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, charge_id, user_id, amount, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, payment.ID, payment.ChargeID, payment.UserID,
		payment.Amount, payment.CreatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("payment_id", payment.ID.String()).
			Str("user_id", payment.UserID.String()).
			Msg("failed to create payment")
		return fmt.Errorf("failed to create payment: %w", err)
	}

	r.logger.Debug().
		Str("payment_id", payment.ID.String()).
		Str("charge_id", payment.ChargeID).
		Msg("payment created successfully")

	return nil
}
