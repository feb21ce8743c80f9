package service

import (
	"context"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of ItemRepository.
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Item, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockItemRepository) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

func (m *MockItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

// MockOrderRepository is a mock implementation of OrderRepository.
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if tx, ok := args.Get(0).(pgx.Tx); ok {
		return tx, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetOpenOrder(ctx context.Context, userID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetOpenOrderForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, tx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) GetByRefCode(ctx context.Context, refCode string) (*model.Order, error) {
	args := m.Called(ctx, refCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *MockOrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	args := m.Called(ctx, tx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetOrderItems(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) GetOrderItem(ctx context.Context, orderID, itemID uuid.UUID) (*model.OrderItem, error) {
	args := m.Called(ctx, orderID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderItem), args.Error(1)
}

func (m *MockOrderRepository) UpsertOrderItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	args := m.Called(ctx, tx, item)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateOrderItemQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	args := m.Called(ctx, id, quantity)
	return args.Error(0)
}

func (m *MockOrderRepository) DeleteOrderItem(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) MarkOrderItemsOrdered(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) error {
	args := m.Called(ctx, tx, orderID)
	return args.Error(0)
}

// MockAddressRepository is a mock implementation of AddressRepository.
type MockAddressRepository struct {
	mock.Mock
}

func (m *MockAddressRepository) GetDefault(ctx context.Context, userID uuid.UUID, addrType model.AddressType) (*model.Address, error) {
	args := m.Called(ctx, userID, addrType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Address), args.Error(1)
}

func (m *MockAddressRepository) Create(ctx context.Context, tx pgx.Tx, address *model.Address) error {
	args := m.Called(ctx, tx, address)
	return args.Error(0)
}

func (m *MockAddressRepository) ClearDefault(ctx context.Context, tx pgx.Tx, userID uuid.UUID, addrType model.AddressType) error {
	args := m.Called(ctx, tx, userID, addrType)
	return args.Error(0)
}

// MockCouponRepository is a mock implementation of CouponRepository.
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) GetByCode(ctx context.Context, code string) (*model.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Coupon), args.Error(1)
}

func (m *MockCouponRepository) Upsert(ctx context.Context, coupons []model.Coupon) error {
	args := m.Called(ctx, coupons)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, tx pgx.Tx, payment *model.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

// MockRefundRepository is a mock implementation of RefundRepository.
type MockRefundRepository struct {
	mock.Mock
}

func (m *MockRefundRepository) Create(ctx context.Context, tx pgx.Tx, refund *model.Refund) error {
	args := m.Called(ctx, tx, refund)
	return args.Error(0)
}

// MockGateway is a mock implementation of payment.Gateway.
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Charge(ctx context.Context, amountCents int64, sourceToken string) (string, error) {
	args := m.Called(ctx, amountCents, sourceToken)
	return args.String(0), args.Error(1)
}

// MockTx is a minimal mock implementation of pgx.Tx for testing.
type MockTx struct {
	mock.Mock
	committed  bool
	rolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	m.committed = true
	return args.Error(0)
}

func (m *MockTx) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	m.rolledBack = true
	return args.Error(0)
}

// Stub methods to satisfy pgx.Tx interface - these are not used in our tests
func (m *MockTx) Begin(ctx context.Context) (pgx.Tx, error) { return nil, nil }
func (m *MockTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (m *MockTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (m *MockTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (m *MockTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (m *MockTx) Exec(ctx context.Context, sql string, arguments ...any) (commandTag pgconn.CommandTag, err error) {
	return
}
func (m *MockTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (m *MockTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (m *MockTx) Conn() *pgx.Conn                                               { return nil }
