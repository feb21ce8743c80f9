package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/cache"
	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// refundService implements RefundService.
type refundService struct {
	orderRepo  repository.OrderRepository
	refundRepo repository.RefundRepository
	cache      cache.Cache // nil when the cache is disabled
	cacheTTL   time.Duration
	logger     zerolog.Logger
}

// NewRefundService creates a new refund service. cache may be nil, in which
// case every reference-code lookup hits the database.
func NewRefundService(
	orderRepo repository.OrderRepository,
	refundRepo repository.RefundRepository,
	c cache.Cache,
	cacheTTL time.Duration,
	logger zerolog.Logger,
) RefundService {
	return &refundService{
		orderRepo:  orderRepo,
		refundRepo: refundRepo,
		cache:      c,
		cacheTTL:   cacheTTL,
		logger:     logger.With().Str("service", "refund").Logger(),
	}
}

// Request records a refund request against the order identified by its
// reference code. An unknown code creates no record. Duplicate requests for
// the same order are allowed.
func (s *refundService) Request(ctx context.Context, req *model.RefundRequest) (*model.Refund, error) {
	if req == nil {
		return nil, model.NewValidationError([]string{"body"})
	}

	var missing []string
	if req.RefCode == "" {
		missing = append(missing, "refCode")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, model.NewValidationError(missing)
	}

	order, err := s.findOrder(ctx, req.RefCode)
	if err != nil {
		return nil, err
	}
	if order == nil {
		s.logger.Warn().Str("ref_code", req.RefCode).Msg("refund requested for unknown reference code")
		return nil, model.ErrOrderNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to request refund: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order.RefundRequested = true
	if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to request refund: %w", err)
	}

	refund := &model.Refund{
		ID:        uuid.New(),
		OrderID:   order.ID,
		Email:     req.Email,
		Message:   req.Message,
		CreatedAt: time.Now(),
	}
	if err = s.refundRepo.Create(ctx, tx, refund); err != nil {
		return nil, fmt.Errorf("failed to request refund: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to request refund: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("ref_code", req.RefCode).
		Msg("refund requested")

	return refund, nil
}

// findOrder resolves a reference code to its order, memoising the
// code-to-order-id mapping in the cache when one is configured. Cache
// failures degrade to plain database lookups.
func (s *refundService) findOrder(ctx context.Context, refCode string) (*model.Order, error) {
	if s.cache != nil {
		key := cache.Key("refcode", refCode)

		if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
			if orderID, parseErr := uuid.Parse(cached); parseErr == nil {
				order, err := s.orderRepo.GetByID(ctx, orderID)
				if err != nil {
					return nil, fmt.Errorf("failed to look up order: %w", err)
				}
				if order != nil {
					return order, nil
				}
				// Stale cache entry; fall through to the ref-code query.
			}
		}
	}

	order, err := s.orderRepo.GetByRefCode(ctx, refCode)
	if err != nil {
		return nil, fmt.Errorf("failed to look up order: %w", err)
	}

	if order != nil && s.cache != nil {
		key := cache.Key("refcode", refCode)
		if err := s.cache.Set(ctx, key, order.ID.String(), s.cacheTTL); err != nil {
			s.logger.Debug().Err(err).Str("ref_code", refCode).Msg("failed to cache reference code")
		}
	}

	return order, nil
}
