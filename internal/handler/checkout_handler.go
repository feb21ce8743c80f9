package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/service"

	"github.com/rs/zerolog"
)

// CheckoutHandler handles checkout and coupon HTTP requests.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new checkout handler.
func NewCheckoutHandler(service service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
		logger:  logger.With().Str("handler", "checkout").Logger(),
	}
}

// Submit handles POST /checkout requests.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			"invalid request body", h.logger)
		return
	}

	resp, err := h.service.Submit(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp, h.logger)
}

// AddCoupon handles POST /add-coupon requests.
func (h *CheckoutHandler) AddCoupon(w http.ResponseWriter, r *http.Request) {
	userID, ok := requestUser(w, r, h.logger)
	if !ok {
		return
	}

	var req model.CouponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, model.ErrCodeInvalidJSON,
			"invalid request body", h.logger)
		return
	}

	if req.Code == "" {
		writeError(w, http.StatusBadRequest, model.ErrCodeValidationFailed,
			"coupon code is required", h.logger)
		return
	}

	if err := h.service.ApplyCoupon(r.Context(), userID, req.Code); err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "Successfully added coupon."}, h.logger)
}
