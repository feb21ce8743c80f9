package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	orderRepo  repository.OrderRepository
	itemRepo   repository.ItemRepository
	couponRepo repository.CouponRepository
	logger     zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	orderRepo repository.OrderRepository,
	itemRepo repository.ItemRepository,
	couponRepo repository.CouponRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		orderRepo:  orderRepo,
		itemRepo:   itemRepo,
		couponRepo: couponRepo,
		logger:     logger.With().Str("service", "cart").Logger(),
	}
}

// AddItem adds one unit of the item to the user's cart. The open order is
// locked (or created) and the line upserted inside a single transaction, so
// concurrent adds for the same user cannot create two carts or lose an
// increment.
func (s *cartService) AddItem(ctx context.Context, userID uuid.UUID, slug string) error {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}
	if item == nil {
		s.logger.Warn().Str("slug", slug).Msg("unknown item slug")
		return model.ErrItemNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order, err := s.orderRepo.GetOpenOrderForUpdate(ctx, tx, userID)
	if err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	if order == nil {
		order = &model.Order{
			ID:        uuid.New(),
			UserID:    userID,
			StartDate: time.Now(),
		}
		if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return fmt.Errorf("failed to add item to cart: %w", err)
		}
		s.logger.Info().
			Str("order_id", order.ID.String()).
			Str("user_id", userID.String()).
			Msg("open order created")
	}

	line := &model.OrderItem{
		ID:       uuid.New(),
		OrderID:  order.ID,
		UserID:   userID,
		ItemID:   item.ID,
		Quantity: 1,
	}
	if err = s.orderRepo.UpsertOrderItem(ctx, tx, line); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to add item to cart: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("item_id", item.ID.String()).
		Str("slug", slug).
		Msg("item added to cart")

	return nil
}

// findCartLine resolves the (open order, cart line) pair for the given slug.
func (s *cartService) findCartLine(ctx context.Context, userID uuid.UUID, slug string) (*model.Order, *model.OrderItem, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up item: %w", err)
	}
	if item == nil {
		return nil, nil, model.ErrItemNotFound
	}

	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up open order: %w", err)
	}
	if order == nil {
		return nil, nil, model.ErrNoActiveOrder
	}

	line, err := s.orderRepo.GetOrderItem(ctx, order.ID, item.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up cart line: %w", err)
	}
	if line == nil {
		return nil, nil, model.ErrItemNotInCart
	}

	return order, line, nil
}

// RemoveOne decrements the cart line's quantity by one. At quantity one the
// line is left unchanged; RemoveAll is the operation that deletes it.
func (s *cartService) RemoveOne(ctx context.Context, userID uuid.UUID, slug string) error {
	_, line, err := s.findCartLine(ctx, userID, slug)
	if err != nil {
		return err
	}

	if line.Quantity <= 1 {
		s.logger.Debug().
			Str("order_item_id", line.ID.String()).
			Msg("quantity already at one, leaving cart line unchanged")
		return nil
	}

	if err := s.orderRepo.UpdateOrderItemQuantity(ctx, line.ID, line.Quantity-1); err != nil {
		return fmt.Errorf("failed to decrement cart line: %w", err)
	}

	s.logger.Info().
		Str("order_item_id", line.ID.String()).
		Int("quantity", line.Quantity-1).
		Msg("cart line decremented")

	return nil
}

// RemoveAll deletes the cart line outright, regardless of quantity.
func (s *cartService) RemoveAll(ctx context.Context, userID uuid.UUID, slug string) error {
	_, line, err := s.findCartLine(ctx, userID, slug)
	if err != nil {
		return err
	}

	if err := s.orderRepo.DeleteOrderItem(ctx, line.ID); err != nil {
		return fmt.Errorf("failed to remove cart line: %w", err)
	}

	s.logger.Info().
		Str("order_item_id", line.ID.String()).
		Str("slug", slug).
		Msg("cart line removed")

	return nil
}

// Summary returns the user's open order with lines, item details and total.
func (s *cartService) Summary(ctx context.Context, userID uuid.UUID) (*model.OrderSummary, error) {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order summary: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}

	lines, err := s.orderRepo.GetOrderItems(ctx, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order summary: %w", err)
	}

	itemIDs := make([]uuid.UUID, len(lines))
	for i, line := range lines {
		itemIDs[i] = line.ItemID
	}

	items, err := s.itemRepo.GetByIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get order summary: %w", err)
	}

	itemsByID := make(map[uuid.UUID]model.Item, len(items))
	for _, item := range items {
		itemsByID[item.ID] = item
	}

	summary := &model.OrderSummary{
		OrderID:   order.ID,
		StartDate: order.StartDate,
		Lines:     make([]model.SummaryLine, 0, len(lines)),
		Total:     model.OrderTotal(lines, itemsByID),
	}

	for _, line := range lines {
		item, ok := itemsByID[line.ItemID]
		if !ok {
			// Catalogue row vanished under the cart line; surface as a
			// server fault rather than silently dropping the line.
			return nil, fmt.Errorf("cart line %s references missing item %s", line.ID, line.ItemID)
		}
		summary.Lines = append(summary.Lines, model.SummaryLine{
			Item:      item,
			Quantity:  line.Quantity,
			LineTotal: model.LineTotal(&item, line.Quantity),
		})
	}

	if order.CouponID != nil && s.couponRepo != nil {
		// The attached coupon is reported with the summary; discount
		// arithmetic is not applied to the total.
		coupon, err := s.lookupCoupon(ctx, order)
		if err != nil {
			return nil, err
		}
		summary.Coupon = coupon
	}

	return summary, nil
}

func (s *cartService) lookupCoupon(ctx context.Context, order *model.Order) (*model.Coupon, error) {
	coupon, err := s.couponRepo.GetByID(ctx, *order.CouponID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order summary: %w", err)
	}
	return coupon, nil
}
