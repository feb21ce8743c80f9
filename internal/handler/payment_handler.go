package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/payment"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// PaymentHandler handles payment HTTP requests.
type PaymentHandler struct {
	service service.PaymentService
	logger  zerolog.Logger
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(service service.PaymentService, logger zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: service,
		logger:  logger.With().Str("handler", "payment").Logger(),
	}
}

// Pay handles POST /payment/{option} requests.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	option := chi.URLParam(r, "option")

	var req model.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			"invalid request body", h.logger)
		return
	}

	receipt, err := h.service.Pay(r.Context(), userID, option, &req)
	if err != nil {
		if gwErr, ok := payment.AsGatewayError(err); ok {
			writeGatewayError(w, gwErr, option, h.logger)
			return
		}
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, receipt, h.logger)
}
