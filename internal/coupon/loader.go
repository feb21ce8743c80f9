package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shibutd/Games-e-commerce/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Loader reads a gzipped coupon file into coupon records. Files contain one
// "CODE,AMOUNT" pair per line.
type Loader interface {
	Load(ctx context.Context, filePath string) ([]model.Coupon, error)
}

// fileLoader implements Loader for the local file system.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a gzipped coupon file and returns its coupon records.
func (l *fileLoader) Load(ctx context.Context, filePath string) ([]model.Coupon, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	coupons, err := parseGzipped(ctx, file, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to read coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", len(coupons)).
		Msg("coupon file loaded successfully")

	return coupons, nil
}

// parseGzipped decompresses r and parses "CODE,AMOUNT" lines. Blank lines are
// skipped; malformed lines are logged and skipped rather than failing the
// whole import.
func parseGzipped(ctx context.Context, r io.Reader, logger zerolog.Logger) ([]model.Coupon, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	var coupons []model.Coupon

	scanner := bufio.NewScanner(gzipReader)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%100_000 == 0 {
			select {
			case <-ctx.Done():
				logger.Warn().Msg("coupon loading cancelled")
				return nil, ctx.Err()
			default:
			}
		}
		lineCount++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, amountStr, ok := strings.Cut(line, ",")
		if !ok {
			logger.Warn().Int("line", lineCount).Msg("skipping coupon line without amount")
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(amountStr))
		if err != nil {
			logger.Warn().
				Int("line", lineCount).
				Str("amount", amountStr).
				Msg("skipping coupon line with invalid amount")
			continue
		}

		coupons = append(coupons, model.Coupon{
			ID:     uuid.New(),
			Code:   strings.TrimSpace(code),
			Amount: amount,
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading coupon data: %w", err)
	}

	return coupons, nil
}
