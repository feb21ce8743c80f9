package repository

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// itemRepository implements the ItemRepository interface using PostgreSQL.
type itemRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewItemRepository creates a new PostgreSQL-backed item repository.
func NewItemRepository(pool *pgxpool.Pool, logger zerolog.Logger) ItemRepository {
	return &itemRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "item").Logger(),
	}
}

const itemColumns = `id, title, price, discount_price, category, label, slug, description, created_at`

func scanItem(row pgx.Row) (*model.Item, error) {
	var i model.Item
	var discount decimal.NullDecimal
	err := row.Scan(&i.ID, &i.Title, &i.Price, &discount,
		&i.Category, &i.Label, &i.Slug, &i.Description, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	if discount.Valid {
		i.DiscountPrice = &discount.Decimal
	}
	return &i, nil
}

// GetAll retrieves items with pagination support, ordered by title.
func (r *itemRepository) GetAll(ctx context.Context, limit, offset int) ([]model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		ORDER BY title
		LIMIT $1 OFFSET $2
	`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).
			Int("limit", limit).
			Int("offset", offset).
			Msg("failed to query items")
		return nil, fmt.Errorf("failed to query items: %w", err)
	}
	defer rows.Close()

	return collectItems(rows, r.logger)
}

// GetBySlug retrieves a single item by its slug.
func (r *itemRepository) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE slug = $1
	`

	item, err := scanItem(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("slug", slug).Msg("item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query item")
		return nil, fmt.Errorf("failed to query item: %w", err)
	}

	return item, nil
}

// GetByIDs retrieves multiple items by their IDs.
func (r *itemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Item, error) {
	if len(ids) == 0 {
		return []model.Item{}, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE id = ANY($1)
		ORDER BY title
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query items by IDs")
		return nil, fmt.Errorf("failed to query items by IDs: %w", err)
	}
	defer rows.Close()

	return collectItems(rows, r.logger)
}

func collectItems(rows pgx.Rows, logger zerolog.Logger) ([]model.Item, error) {
	var items []model.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			logger.Error().Err(err).Msg("failed to scan item row")
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("error iterating item rows")
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}
