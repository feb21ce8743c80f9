package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponRepository_UpsertAndGet(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCouponRepository(pool, logger)

	ctx := context.Background()

	coupons := []model.Coupon{
		{ID: uuid.New(), Code: "SAVE10", Amount: decimal.RequireFromString("10.00")},
		{ID: uuid.New(), Code: "SAVE25", Amount: decimal.RequireFromString("25.00")},
	}
	require.NoError(t, repo.Upsert(ctx, coupons))

	got, err := repo.GetByCode(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("10.00")))

	byID, err := repo.GetByID(ctx, got.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "SAVE10", byID.Code)
}

func TestCouponRepository_Upsert_UpdatesAmountOnConflict(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCouponRepository(pool, logger)

	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, []model.Coupon{
		{ID: uuid.New(), Code: "SAVE10", Amount: decimal.RequireFromString("10.00")},
	}))

	// Re-importing the same code replaces the amount, keeping one row.
	require.NoError(t, repo.Upsert(ctx, []model.Coupon{
		{ID: uuid.New(), Code: "SAVE10", Amount: decimal.RequireFromString("12.50")},
	}))

	got, err := repo.GetByCode(ctx, "SAVE10")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Amount.Equal(decimal.RequireFromString("12.50")))

	var count int
	require.NoError(t, pool.QueryRow(ctx, "SELECT COUNT(*) FROM coupons").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestCouponRepository_GetByCode_Unknown(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewCouponRepository(pool, logger)

	got, err := repo.GetByCode(context.Background(), "NOPE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRefundRepository_Create(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	orderRepo := NewOrderRepository(pool, logger)
	refundRepo := NewRefundRepository(pool, logger)
	userID := uuid.New()

	ctx := context.Background()
	order := createTestOrder(t, orderRepo, userID)

	refund := &model.Refund{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Email:     "buyer@example.com",
		Message:   "wrong size",
		CreatedAt: time.Now(),
	}

	inTx(t, orderRepo, func(tx pgx.Tx) {
		require.NoError(t, refundRepo.Create(ctx, tx, refund))
	})

	var count int
	require.NoError(t, pool.QueryRow(ctx,
		"SELECT COUNT(*) FROM refunds WHERE order_id = $1", order.ID).Scan(&count))
	assert.Equal(t, 1, count)
}
