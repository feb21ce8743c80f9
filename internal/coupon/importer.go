package coupon

import (
	"context"
	"fmt"

	"github.com/shibutd/Games-e-commerce/internal/repository"

	"github.com/rs/zerolog"
)

// Importer loads coupon files at startup and upserts their codes into the
// coupons table.
type Importer struct {
	repo   repository.CouponRepository
	loader Loader
	logger zerolog.Logger
}

// NewImporter creates a coupon importer.
func NewImporter(repo repository.CouponRepository, loader Loader, logger zerolog.Logger) *Importer {
	return &Importer{
		repo:   repo,
		loader: loader,
		logger: logger.With().Str("component", "coupon-importer").Logger(),
	}
}

// Import loads every configured coupon file and upserts the records. A file
// that fails to load aborts the import.
func (i *Importer) Import(ctx context.Context, filePaths []string) error {
	total := 0
	for _, path := range filePaths {
		coupons, err := i.loader.Load(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to load coupon file %s: %w", path, err)
		}

		if err := i.repo.Upsert(ctx, coupons); err != nil {
			return fmt.Errorf("failed to import coupons from %s: %w", path, err)
		}

		total += len(coupons)
	}

	i.logger.Info().
		Int("file_count", len(filePaths)).
		Int("coupons_imported", total).
		Msg("coupon import completed")

	return nil
}
