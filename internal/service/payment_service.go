package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/payment"
	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// paymentService implements PaymentService.
type paymentService struct {
	orderRepo   repository.OrderRepository
	itemRepo    repository.ItemRepository
	paymentRepo repository.PaymentRepository
	gateway     payment.Gateway
	logger      zerolog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	paymentRepo repository.PaymentRepository,
	gateway payment.Gateway,
	logger zerolog.Logger,
) PaymentService {
	return &paymentService{
		orderRepo:   orderRepo,
		itemRepo:    itemRepo,
		paymentRepo: paymentRepo,
		gateway:     gateway,
		logger:      logger.With().Str("service", "payment").Logger(),
	}
}

// Pay charges the order total through the gateway and finalises the order:
// payment row, ordered flags on every line, ordered flag and reference code
// on the order, all in one transaction. Gateway errors pass through typed so
// the handler can surface them as retryable.
func (s *paymentService) Pay(ctx context.Context, userID uuid.UUID, option string, req *model.PaymentRequest) (*model.PaymentReceipt, error) {
	if !model.ValidPaymentOption(option) {
		s.logger.Warn().Str("payment_option", option).Msg("invalid payment option")
		return nil, model.ErrInvalidPaymentOption
	}

	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}
	if order.BillingAddressID == nil {
		s.logger.Warn().
			Str("order_id", order.ID.String()).
			Msg("payment attempted without billing address")
		return nil, model.ErrNoBillingAddress
	}

	total, err := s.orderTotal(ctx, order.ID)
	if err != nil {
		return nil, err
	}

	amountCents := total.Mul(decimal.NewFromInt(100)).IntPart()

	chargeID, err := s.gateway.Charge(ctx, amountCents, req.SourceToken)
	if err != nil {
		if gwErr, ok := payment.AsGatewayError(err); ok {
			s.logger.Warn().
				Str("order_id", order.ID.String()).
				Str("gateway_code", string(gwErr.Code)).
				Msg("gateway rejected charge")
			return nil, gwErr
		}
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("unexpected gateway failure")
		return nil, fmt.Errorf("failed to charge order: %w", err)
	}

	refCode, err := GenerateRefCode()
	if err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	pay := &model.Payment{
		ID:        uuid.New(),
		ChargeID:  chargeID,
		UserID:    userID,
		Amount:    total,
		CreatedAt: now,
	}
	if err = s.paymentRepo.Create(ctx, tx, pay); err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	if err = s.orderRepo.MarkOrderItemsOrdered(ctx, tx, order.ID); err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	order.Ordered = true
	order.OrderedDate = &now
	order.PaymentID = &pay.ID
	order.RefCode = &refCode
	if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to pay order: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("charge_id", chargeID).
		Str("ref_code", refCode).
		Str("amount", total.String()).
		Msg("order paid")

	return &model.PaymentReceipt{
		OrderID:  order.ID,
		RefCode:  refCode,
		ChargeID: chargeID,
		Amount:   total,
	}, nil
}

func (s *paymentService) orderTotal(ctx context.Context, orderID uuid.UUID) (decimal.Decimal, error) {
	lines, err := s.orderRepo.GetOrderItems(ctx, orderID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute order total: %w", err)
	}

	itemIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		itemIDs[i] = line.ItemID
	}

	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute order total: %w", err)
	}

	itemsByID := make(map[uuid.UUID]model.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	return model.OrderTotal(lines, itemsByID), nil
}
