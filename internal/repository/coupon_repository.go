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

// couponRepository implements the CouponRepository interface using PostgreSQL.
type couponRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCouponRepository creates a new PostgreSQL-backed coupon repository.
func NewCouponRepository(pool *pgxpool.Pool, logger zerolog.Logger) CouponRepository {
	return &couponRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "coupon").Logger(),
	}
}

// GetByCode retrieves a coupon by its code.
func (r *couponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	query := `
		SELECT id, code, amount
		FROM coupons
		WHERE code = $1
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, code).Scan(&c.ID, &c.Code, &c.Amount)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("code", code).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("code", code).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a coupon by its ID.
func (r *couponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	query := `
		SELECT id, code, amount
		FROM coupons
		WHERE id = $1
	`

	var c model.Coupon
	err := r.pool.QueryRow(ctx, query, id).Scan(&c.ID, &c.Code, &c.Amount)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("coupon_id", id.String()).Msg("coupon not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("coupon_id", id.String()).Msg("failed to query coupon")
		return nil, fmt.Errorf("failed to query coupon: %w", err)
	}

	return &c, nil
}

// Upsert inserts coupons, updating the discount amount on code conflicts.
// Used by the startup coupon import.
func (r *couponRepository) Upsert(ctx context.Context, coupons []model.Coupon) error {
	if len(coupons) == 0 {
		return nil
	}

	query := `
		INSERT INTO coupons (id, code, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET amount = EXCLUDED.amount
	`

	batch := &pgx.Batch{}
	for _, c := range coupons {
		batch.Queue(query, c.ID, c.Code, c.Amount)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(coupons); i++ {
		_, err := results.Exec()
		if err != nil {
			r.logger.Error().
				Err(err).
				Str("code", coupons[i].Code).
				Msg("failed to upsert coupon")
			return fmt.Errorf("failed to upsert coupon: %w", err)
		}
	}

	r.logger.Debug().
		Int("count", len(coupons)).
		Msg("coupons upserted successfully")

	return nil
}
