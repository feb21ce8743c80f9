package handler

import (
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/middleware"
	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// requestUser pulls the authenticated user id placed in the context by the
// RequireUser middleware.
func requestUser(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, model.ErrCodeUnauthorised,
			"authentication required", logger)
		return uuid.Nil, false
	}
	return userID, true
}

func requestSlug(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed,
			"item slug is required", logger)
		return "", false
	}
	return slug, true
}

// Summary handles GET /order-summary requests.
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	summary, err := h.service.Summary(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, summary, h.logger)
}

// Add handles POST /add-to-cart/{slug} requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	slug, ok := requestSlug(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.AddItem(r.Context(), userID, slug); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "This item was added to your cart."}, h.logger)
}

// Remove handles POST /remove-from-cart/{slug} requests.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	slug, ok := requestSlug(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveAll(r.Context(), userID, slug); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "This item was removed from your cart."}, h.logger)
}

// RemoveSingle handles POST /remove-single-from-cart/{slug} requests.
func (h *CartHandler) RemoveSingle(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}
	slug, ok := requestSlug(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.RemoveOne(r.Context(), userID, slug); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "This item's quantity was updated."}, h.logger)
}
