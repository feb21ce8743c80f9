package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shibutd/Games-e-commerce/internal/cache"
	"github.com/shibutd/Games-e-commerce/internal/config"
	"github.com/shibutd/Games-e-commerce/internal/coupon"
	"github.com/shibutd/Games-e-commerce/internal/database"
	"github.com/shibutd/Games-e-commerce/internal/handler"
	"github.com/shibutd/Games-e-commerce/internal/payment"
	"github.com/shibutd/Games-e-commerce/internal/repository"
	"github.com/shibutd/Games-e-commerce/internal/router"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting storefront API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	itemRepo := repository.NewItemRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	addressRepo := repository.NewAddressRepository(pool, logger)
	couponRepo := repository.NewCouponRepository(pool, logger)
	paymentRepo := repository.NewPaymentRepository(pool, logger)
	refundRepo := repository.NewRefundRepository(pool, logger)

	// Import coupon files with S3 and local fallback
	if cfg.Coupons.ImportEnabled {
		if err := importCoupons(ctx, cfg, couponRepo, logger); err != nil {
			return fmt.Errorf("failed to import coupons: %w", err)
		}
	}

	// Initialize reference-code cache
	var refCodeCache cache.Cache
	if cfg.Redis.Enabled {
		refCodeCache, err = cache.NewRedisCache(ctx, cfg.Redis.Addr, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to connect to redis, reference-code lookups will hit the database")
		} else {
			defer refCodeCache.Close()
		}
	}

	// Initialize payment gateway. Only the simulated gateway exists; a
	// configured gateway API key is rejected by config validation.
	logger.Warn().Msg("using simulated payment gateway, charges are not real")
	gateway := payment.NewStubGateway(logger)

	// Initialize services
	catalogService := service.NewCatalogService(itemRepo, logger)
	cartService := service.NewCartService(orderRepo, itemRepo, couponRepo, logger)
	checkoutService := service.NewCheckoutService(orderRepo, addressRepo, couponRepo, logger)
	paymentService := service.NewPaymentService(orderRepo, itemRepo, paymentRepo, gateway, logger)
	refundService := service.NewRefundService(orderRepo, refundRepo, refCodeCache,
		time.Duration(cfg.Redis.TTLSeconds)*time.Second, logger)

	// Initialize HTTP handlers
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	cartHandler := handler.NewCartHandler(cartService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	paymentHandler := handler.NewPaymentHandler(paymentService, logger)
	refundHandler := handler.NewRefundHandler(refundService, logger)

	// Initialize router
	mux := router.New(catalogHandler, cartHandler, checkoutHandler,
		paymentHandler, refundHandler, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

// importCoupons loads the configured coupon files into the coupons table,
// preferring S3 when enabled and falling back to the local file system.
func importCoupons(ctx context.Context, cfg *config.Config, couponRepo repository.CouponRepository, logger zerolog.Logger) error {
	fileLoader := coupon.NewFileLoader(logger)
	var loader coupon.Loader = fileLoader

	if cfg.S3.Enabled {
		s3Loader, err := coupon.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
		} else {
			loader = coupon.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
		}
	} else {
		logger.Info().Msg("using local file system for coupon files (S3 disabled)")
	}

	importer := coupon.NewImporter(couponRepo, loader, logger)
	return importer.Import(ctx, cfg.Coupons.FilePaths)
}
