package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/rs/zerolog"
)

// RefundHandler handles refund HTTP requests.
type RefundHandler struct {
	service service.RefundService
	logger  zerolog.Logger
}

// NewRefundHandler creates a new refund handler.
func NewRefundHandler(service service.RefundService, logger zerolog.Logger) *RefundHandler {
	return &RefundHandler{
		service: service,
		logger:  logger.With().Str("handler", "refund").Logger(),
	}
}

// Request handles POST /refund-request requests.
func (h *RefundHandler) Request(w http.ResponseWriter, r *http.Request) {
	if _, ok := requestUser(w, r, h.logger); !ok {
		return
	}

	var req model.RefundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			"invalid request body", h.logger)
		return
	}

	refund, err := h.service.Request(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, refund, h.logger)
}
