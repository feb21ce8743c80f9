package handler

import (
	"net/http"
	"strconv"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CatalogHandler handles catalogue-related HTTP requests.
type CatalogHandler struct {
	service service.CatalogService
	logger  zerolog.Logger
}

// NewCatalogHandler creates a new catalogue handler.
func NewCatalogHandler(service service.CatalogService, logger zerolog.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		logger:  logger.With().Str("handler", "catalog").Logger(),
	}
}

// List handles GET / requests with pagination.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	limitStr := r.URL.Query().Get("limit")
	offsetStr := r.URL.Query().Get("offset")

	limit := 10 // default
	if limitStr != "" {
		var err error
		limit, err = strconv.Atoi(limitStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed,
				"invalid limit parameter", h.logger)
			return
		}
	}

	offset := 0 // default
	if offsetStr != "" {
		var err error
		offset, err = strconv.Atoi(offsetStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed,
				"invalid offset parameter", h.logger)
			return
		}
	}

	items, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, items, h.logger)
}

// Detail handles GET /product/{slug} requests.
func (h *CatalogHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed,
			"item slug is required", h.logger)
		return
	}

	item, err := h.service.GetBySlug(r.Context(), slug)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, item, h.logger)
}
