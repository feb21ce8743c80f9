package service

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// checkoutService implements CheckoutService.
type checkoutService struct {
	orderRepo   repository.OrderRepository
	addressRepo repository.AddressRepository
	couponRepo  repository.CouponRepository
	logger      zerolog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	orderRepo repository.OrderRepository,
	addressRepo repository.AddressRepository,
	couponRepo repository.CouponRepository,
	logger zerolog.Logger,
) CheckoutService {
	return &checkoutService{
		orderRepo:   orderRepo,
		addressRepo: addressRepo,
		couponRepo:  couponRepo,
		logger:      logger.With().Str("service", "checkout").Logger(),
	}
}

// resolvedAddress is the outcome of address resolution for one type: either
// an existing stored default, or a new address to persist.
type resolvedAddress struct {
	existing *model.Address
	fresh    *model.Address
}

func (ra *resolvedAddress) id() uuid.UUID {
	if ra.existing != nil {
		return ra.existing.ID
	}
	return ra.fresh.ID
}

// Submit resolves shipping and billing addresses, attaches them to the open
// order and selects the payment route. All validation happens before any
// write; on a validation failure nothing is persisted.
func (s *checkoutService) Submit(ctx context.Context, userID uuid.UUID, req *model.CheckoutRequest) (*model.CheckoutResponse, error) {
	if req == nil {
		return nil, model.NewValidationError([]string{"body"})
	}

	if !model.ValidPaymentOption(req.PaymentOption) {
		s.logger.Warn().
			Str("payment_option", req.PaymentOption).
			Msg("invalid payment option selected")
		return nil, model.ErrInvalidPaymentOption
	}

	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to submit checkout: %w", err)
	}
	if order == nil {
		return nil, model.ErrNoActiveOrder
	}

	shipping, err := s.resolveAddress(ctx, userID, model.AddressTypeShipping,
		&req.Shipping, req.UseDefaultShipping, req.SetDefaultShipping)
	if err != nil {
		return nil, err
	}

	var billing *resolvedAddress
	if req.SameBillingAddress {
		// Duplicate the shipping fields as a new billing address record.
		src := shipping.existing
		if src == nil {
			src = shipping.fresh
		}
		billing = &resolvedAddress{fresh: &model.Address{
			ID:               uuid.New(),
			UserID:           userID,
			StreetAddress:    src.StreetAddress,
			ApartmentAddress: src.ApartmentAddress,
			Country:          src.Country,
			Zip:              src.Zip,
			Type:             model.AddressTypeBilling,
		}}
	} else {
		billing, err = s.resolveAddress(ctx, userID, model.AddressTypeBilling,
			&req.Billing, req.UseDefaultBilling, req.SetDefaultBilling)
		if err != nil {
			return nil, err
		}
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to submit checkout: %w", err)
	}

	// Ensure transaction is rolled back on error
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, resolved := range []*resolvedAddress{shipping, billing} {
		if resolved.fresh == nil {
			continue
		}
		if resolved.fresh.IsDefault {
			if err = s.addressRepo.ClearDefault(ctx, tx, userID, resolved.fresh.Type); err != nil {
				return nil, fmt.Errorf("failed to submit checkout: %w", err)
			}
		}
		if err = s.addressRepo.Create(ctx, tx, resolved.fresh); err != nil {
			return nil, fmt.Errorf("failed to submit checkout: %w", err)
		}
	}

	shippingID := shipping.id()
	billingID := billing.id()
	order.ShippingAddressID = &shippingID
	order.BillingAddressID = &billingID

	if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to submit checkout: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to submit checkout: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("payment_option", req.PaymentOption).
		Msg("checkout submitted")

	return &model.CheckoutResponse{
		OrderID:     order.ID.String(),
		PaymentPath: "/payment/" + req.PaymentOption,
	}, nil
}

// resolveAddress picks the stored default or validates the supplied fields.
// Nothing is written here; new addresses are persisted later inside the
// submission transaction.
func (s *checkoutService) resolveAddress(
	ctx context.Context,
	userID uuid.UUID,
	addrType model.AddressType,
	input *model.AddressInput,
	useDefault, setDefault bool,
) (*resolvedAddress, error) {
	if useDefault {
		existing, err := s.addressRepo.GetDefault(ctx, userID, addrType)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s address: %w", addrType, err)
		}
		if existing == nil {
			s.logger.Warn().
				Str("user_id", userID.String()).
				Str("address_type", string(addrType)).
				Msg("no default address stored")
			return nil, model.ErrNoDefaultAddress
		}
		return &resolvedAddress{existing: existing}, nil
	}

	if missing := input.MissingFields(); len(missing) > 0 {
		prefixed := make([]string, len(missing))
		for i, f := range missing {
			prefixed[i] = string(addrType) + "." + f
		}
		return nil, model.NewValidationError(prefixed)
	}

	return &resolvedAddress{fresh: &model.Address{
		ID:               uuid.New(),
		UserID:           userID,
		StreetAddress:    input.StreetAddress,
		ApartmentAddress: input.ApartmentAddress,
		Country:          input.Country,
		Zip:              input.Zip,
		Type:             addrType,
		IsDefault:        setDefault,
	}}, nil
}

// ApplyCoupon attaches the coupon with the given code to the open order.
// No reuse or expiry validation is performed.
func (s *checkoutService) ApplyCoupon(ctx context.Context, userID uuid.UUID, code string) error {
	order, err := s.orderRepo.GetOpenOrder(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}
	if order == nil {
		return model.ErrNoActiveOrder
	}

	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}
	if coupon == nil {
		s.logger.Warn().Str("code", code).Msg("unknown coupon code")
		return model.ErrCouponNotFound
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order.CouponID = &coupon.ID
	if err = s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to apply coupon: %w", err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("coupon_id", coupon.ID.String()).
		Msg("coupon attached to order")

	return nil
}
