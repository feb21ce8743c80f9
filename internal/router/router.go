package router

import (
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/handler"
	"github.com/shibutd/Games-e-commerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	catalogHandler *handler.CatalogHandler,
	cartHandler *handler.CartHandler,
	checkoutHandler *handler.CheckoutHandler,
	paymentHandler *handler.PaymentHandler,
	refundHandler *handler.RefundHandler,
	apiKey string,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	// Health check endpoint (no authentication required)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(apiKey, logger))

		// Catalogue browsing needs no user identity
		r.Get("/", catalogHandler.List)
		r.Get("/product/{slug}", catalogHandler.Detail)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUser(logger))

			r.Get("/order-summary", cartHandler.Summary)
			r.Post("/add-to-cart/{slug}", cartHandler.Add)
			r.Post("/remove-from-cart/{slug}", cartHandler.Remove)
			r.Post("/remove-single-from-cart/{slug}", cartHandler.RemoveSingle)
			r.Post("/checkout", checkoutHandler.Submit)
			r.Post("/add-coupon", checkoutHandler.AddCoupon)
			r.Post("/payment/{option}", paymentHandler.Pay)
			r.Post("/refund-request", refundHandler.Request)
		})
	})

	return r
}
