package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shibutd/Games-e-commerce/internal/model"
	"github.com/shibutd/Games-e-commerce/internal/payment"

	"github.com/rs/zerolog"
)

// MessageResponse is the body of mutation endpoints that have no richer payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code. Encode
// failures cannot reach the client at this point, so they are only logged.
func writeJSON(w http.ResponseWriter, status int, data interface{}, logger zerolog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error().Err(err).Int("status", status).Msg("failed to encode response")
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message}, logger)
}

// writeGatewayError writes a retryable 402 pointing the client back at the
// payment route it attempted.
func writeGatewayError(w http.ResponseWriter, gwErr *payment.GatewayError, option string, logger zerolog.Logger) {
	logger.Warn().
		Str("gateway_code", string(gwErr.Code)).
		Str("option", option).
		Msg("gateway error surfaced to client")
	writeJSON(w, http.StatusPaymentRequired, model.ErrorResponse{
		Error:     model.ErrCodePaymentFailed,
		Message:   gwErr.Message,
		Retryable: true,
		RetryPath: "/payment/" + option,
	}, logger)
}

// writeServiceError maps service-layer failures to HTTP responses: domain
// errors by code, everything else as a generic 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		writeError(w, domainStatus(domainErr.Code), domainErr.Code, domainErr.Message, logger)
		return
	}

	logger.Error().Err(err).Msg("unexpected error")
	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError,
		"internal server error", logger)
}

func domainStatus(code string) int {
	switch code {
	case model.ErrCodeItemNotFound,
		model.ErrCodeOrderNotFound,
		model.ErrCodeCouponNotFound:
		return http.StatusNotFound
	case model.ErrCodeNoActiveOrder,
		model.ErrCodeItemNotInCart,
		model.ErrCodeNoBillingAddress,
		model.ErrCodeNoDefaultAddress:
		return http.StatusConflict
	case model.ErrCodeValidationFailed,
		model.ErrCodeInvalidPaymentOption,
		model.ErrCodeInvalidJSON:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
