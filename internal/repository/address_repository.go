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

// addressRepository implements the AddressRepository interface using PostgreSQL.
type addressRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAddressRepository creates a new PostgreSQL-backed address repository.
func NewAddressRepository(pool *pgxpool.Pool, logger zerolog.Logger) AddressRepository {
	return &addressRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "address").Logger(),
	}
}

// GetDefault retrieves the user's default address of the given type.
func (r *addressRepository) GetDefault(ctx context.Context, userID uuid.UUID, addrType model.AddressType) (*model.Address, error) {
	query := `
		SELECT id, user_id, street_address, apartment_address, country, zip,
		       address_type, is_default
		FROM addresses
		WHERE user_id = $1 AND address_type = $2 AND is_default
	`

	var a model.Address
	err := r.pool.QueryRow(ctx, query, userID, addrType).Scan(&a.ID, &a.UserID,
		&a.StreetAddress, &a.ApartmentAddress, &a.Country, &a.Zip, &a.Type, &a.IsDefault)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("user_id", userID.String()).
				Str("address_type", string(addrType)).
				Msg("no default address")
			return nil, nil
		}
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("address_type", string(addrType)).
			Msg("failed to query default address")
		return nil, fmt.Errorf("failed to query default address: %w", err)
	}

	return &a, nil
}

// Create inserts a new address within the provided transaction.
func (r *addressRepository) Create(ctx context.Context, tx pgx.Tx, address *model.Address) error {
	query := `
		INSERT INTO addresses (id, user_id, street_address, apartment_address,
		                       country, zip, address_type, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := tx.Exec(ctx, query, address.ID, address.UserID, address.StreetAddress,
		address.ApartmentAddress, address.Country, address.Zip, address.Type, address.IsDefault)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", address.UserID.String()).
			Str("address_type", string(address.Type)).
			Msg("failed to create address")
		return fmt.Errorf("failed to create address: %w", err)
	}

	r.logger.Debug().
		Str("address_id", address.ID.String()).
		Str("address_type", string(address.Type)).
		Msg("address created successfully")

	return nil
}

// ClearDefault unsets the default flag for every address of the (user, type)
// pair. Runs inside the same transaction that marks the replacement default.
func (r *addressRepository) ClearDefault(ctx context.Context, tx pgx.Tx, userID uuid.UUID, addrType model.AddressType) error {
	query := `
		UPDATE addresses
		SET is_default = FALSE
		WHERE user_id = $1 AND address_type = $2 AND is_default
	`

	_, err := tx.Exec(ctx, query, userID, addrType)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("user_id", userID.String()).
			Str("address_type", string(addrType)).
			Msg("failed to clear default address")
		return fmt.Errorf("failed to clear default address: %w", err)
	}

	return nil
}
