package handler

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shibutd/Games-e-commerce/internal/middleware"
	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) GetAll(ctx context.Context, limit, offset int) ([]model.Item, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}

func (m *MockCatalogService) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Item), args.Error(1)
}

// MockCartService is a mock implementation of CartService.
type MockCartService struct {
	mock.Mock
}

func (m *MockCartService) AddItem(ctx context.Context, userID uuid.UUID, slug string) error {
	args := m.Called(ctx, userID, slug)
	return args.Error(0)
}

func (m *MockCartService) RemoveOne(ctx context.Context, userID uuid.UUID, slug string) error {
	args := m.Called(ctx, userID, slug)
	return args.Error(0)
}

func (m *MockCartService) RemoveAll(ctx context.Context, userID uuid.UUID, slug string) error {
	args := m.Called(ctx, userID, slug)
	return args.Error(0)
}

func (m *MockCartService) Summary(ctx context.Context, userID uuid.UUID) (*model.OrderSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderSummary), args.Error(1)
}

// MockCheckoutService is a mock implementation of CheckoutService.
type MockCheckoutService struct {
	mock.Mock
}

func (m *MockCheckoutService) Submit(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CheckoutResponse), args.Error(1)
}

func (m *MockCheckoutService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) error {
	args := m.Called(ctx, userID, code)
	return args.Error(0)
}

// MockPaymentService is a mock implementation of PaymentService.
type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Pay(ctx context.Context, userID uuid.UUID, option string, req *model.PaymentRequest) (*model.PaymentReceipt, error) {
	args := m.Called(ctx, userID, option, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.PaymentReceipt), args.Error(1)
}

// MockRefundService is a mock implementation of RefundService.
type MockRefundService struct {
	mock.Mock
}

func (m *MockRefundService) Request(ctx context.Context, req *model.RefundRequest) (*model.Refund, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Refund), args.Error(1)
}

// userRouter mounts the handler behind the user-identity middleware the way
// the real router does, so URL params and the user context are populated.
func userRouter(method, pattern string, handlerFunc http.HandlerFunc) chi.Router {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireUser(zerolog.Nop()))
		r.Method(method, pattern, handlerFunc)
	})
	return r
}

// doRequest performs a test request carrying the user identity header.
func doRequest(t *testing.T, router http.Handler, method, target string, userID uuid.UUID, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.NotNil(t, rec)
	return rec
}
