package service

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// catalogService implements CatalogService.
type catalogService struct {
	itemRepo repository.ItemRepository
	logger   zerolog.Logger
}

// NewCatalogService creates a new catalogue service.
func NewCatalogService(itemRepo repository.ItemRepository, logger zerolog.Logger) CatalogService {
	return &catalogService{
		itemRepo: itemRepo,
		logger:   logger.With().Str("service", "catalog").Logger(),
	}
}

// GetAll retrieves items with pagination, clamping the page size.
func (s *catalogService) GetAll(ctx context.Context, limit, offset int) ([]model.Item, error) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.itemRepo.GetAll(ctx, limit, offset)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get items")
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	if items == nil {
		items = []model.Item{}
	}

	return items, nil
}

// GetBySlug retrieves a single item by slug.
func (s *catalogService) GetBySlug(ctx context.Context, slug string) (*model.Item, error) {
	item, err := s.itemRepo.GetBySlug(ctx, slug)
	if err != nil {
		s.logger.Error().Err(err).Str("slug", slug).Msg("failed to get item")
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	if item == nil {
		return nil, model.ErrItemNotFound
	}

	return item, nil
}
