package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestOrder inserts an open order for the user and returns it.
func createTestOrder(t *testing.T, repo OrderRepository, userID uuid.UUID) *model.Order {
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)

	order := &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: time.Now(),
	}
	require.NoError(t, repo.CreateOrder(ctx, tx, order))
	require.NoError(t, tx.Commit(ctx))

	return order
}

func TestOrderRepository_CreateAndGetOpenOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	userID := uuid.New()

	ctx := context.Background()

	none, err := repo.GetOpenOrder(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, none)

	order := createTestOrder(t, repo, userID)

	got, err := repo.GetOpenOrder(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.ID, got.ID)
	assert.False(t, got.Ordered)
	assert.False(t, got.RefundRequested)
	assert.Nil(t, got.RefCode)
}

func TestOrderRepository_OneOpenOrderPerUser(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	userID := uuid.New()

	ctx := context.Background()

	createTestOrder(t, repo, userID)

	// A second open order for the same user violates the partial unique index.
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.CreateOrder(ctx, tx, &model.Order{
		ID:        uuid.New(),
		UserID:    userID,
		StartDate: time.Now(),
	})
	require.Error(t, err)
}

func TestOrderRepository_GetOpenOrderForUpdate(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	userID := uuid.New()

	ctx := context.Background()
	order := createTestOrder(t, repo, userID)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	got, err := repo.GetOpenOrderForUpdate(ctx, tx, userID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, order.ID, got.ID)

	missing, err := repo.GetOpenOrderForUpdate(ctx, tx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_UpsertOrderItem_IncrementsQuantity(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	items := testCatalogueItems()
	seedItems(t, pool, items)

	userID := uuid.New()
	ctx := context.Background()
	order := createTestOrder(t, repo, userID)

	line := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   items[0].ID,
		Quantity: 1,
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOrderItem(ctx, tx, line))
	require.NoError(t, tx.Commit(ctx))

	// A second upsert for the same (order, item) increments the quantity
	// instead of inserting a new row.
	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOrderItem(ctx, tx, &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   items[0].ID,
		Quantity: 1,
	}))
	require.NoError(t, tx.Commit(ctx))

	lines, err := repo.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, line.ID, lines[0].ID)
}

func TestOrderRepository_GetOrderItem(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	items := testCatalogueItems()
	seedItems(t, pool, items)

	userID := uuid.New()
	ctx := context.Background()
	order := createTestOrder(t, repo, userID)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOrderItem(ctx, tx, &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   items[0].ID,
		Quantity: 3,
	}))
	require.NoError(t, tx.Commit(ctx))

	got, err := repo.GetOrderItem(ctx, order.ID, items[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 3, got.Quantity)

	missing, err := repo.GetOrderItem(ctx, order.ID, items[1].ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrderRepository_UpdateAndDeleteOrderItem(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	items := testCatalogueItems()
	seedItems(t, pool, items)

	userID := uuid.New()
	ctx := context.Background()
	order := createTestOrder(t, repo, userID)

	line := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   items[0].ID,
		Quantity: 3,
	}

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOrderItem(ctx, tx, line))
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, repo.UpdateOrderItemQuantity(ctx, line.ID, 2))

	got, err := repo.GetOrderItem(ctx, order.ID, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	require.NoError(t, repo.DeleteOrderItem(ctx, line.ID))

	gone, err := repo.GetOrderItem(ctx, order.ID, items[0].ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestOrderRepository_UpdateOrderItemQuantity_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	err := repo.UpdateOrderItemQuantity(context.Background(), uuid.New(), 2)
	require.Error(t, err)
}

func TestOrderRepository_FinaliseOrder(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)
	paymentRepo := NewPaymentRepository(pool, logger)

	items := testCatalogueItems()
	seedItems(t, pool, items)

	userID := uuid.New()
	ctx := context.Background()
	order := createTestOrder(t, repo, userID)

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.UpsertOrderItem(ctx, tx, &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   items[0].ID,
		Quantity: 2,
	}))
	require.NoError(t, tx.Commit(ctx))

	// Finalise in one transaction the way the payment service does.
	tx, err = repo.BeginTx(ctx)
	require.NoError(t, err)

	pay := &model.Payment{
		ID:        uuid.New(),
		ChargeID:  "ch_test123",
		UserID:    userID,
		Amount:    decimal.RequireFromString("30.00"),
		CreatedAt: time.Now(),
	}
	require.NoError(t, paymentRepo.Create(ctx, tx, pay))
	require.NoError(t, repo.MarkOrderItemsOrdered(ctx, tx, order.ID))

	now := time.Now()
	refCode := "AbCdEfGhIjKlMnOpQrSt"
	order.Ordered = true
	order.OrderedDate = &now
	order.PaymentID = &pay.ID
	order.RefCode = &refCode
	require.NoError(t, repo.UpdateOrder(ctx, tx, order))
	require.NoError(t, tx.Commit(ctx))

	// The cart is gone and the order resolvable by reference code.
	open, err := repo.GetOpenOrder(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, open)

	byRef, err := repo.GetByRefCode(ctx, refCode)
	require.NoError(t, err)
	require.NotNil(t, byRef)
	assert.Equal(t, order.ID, byRef.ID)
	assert.True(t, byRef.Ordered)
	require.NotNil(t, byRef.PaymentID)
	assert.Equal(t, pay.ID, *byRef.PaymentID)

	lines, err := repo.GetOrderItems(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Ordered)

	// The user can open a fresh cart now.
	fresh := createTestOrder(t, repo, userID)
	assert.NotEqual(t, order.ID, fresh.ID)
}

func TestOrderRepository_GetByRefCode_Unknown(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	got, err := repo.GetByRefCode(context.Background(), "NOSUCHCODE")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOrderRepository_UpdateOrder_NotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	logger := zerolog.Nop()
	repo := NewOrderRepository(pool, logger)

	ctx := context.Background()
	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = repo.UpdateOrder(ctx, tx, &model.Order{ID: uuid.New()})
	require.Error(t, err)
}
