package payment

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Magic source tokens understood by the stub, mirroring the test tokens of
// real gateway sandboxes.
const (
	StubTokenDeclined    = "tok_declined"
	StubTokenRateLimited = "tok_rate_limited"
)

// stubGateway simulates the payment provider. It is selected when no gateway
// API key is configured: charges always succeed with a generated charge id,
// except for the magic decline tokens above.
type stubGateway struct {
	logger zerolog.Logger
}

// NewStubGateway creates a simulated payment gateway.
func NewStubGateway(logger zerolog.Logger) Gateway {
	return &stubGateway{
		logger: logger.With().Str("component", "stub-gateway").Logger(),
	}
}

// Charge simulates a capture and returns a generated charge identifier.
func (g *stubGateway) Charge(ctx context.Context, amountCents int64, sourceToken string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", NewGatewayError(ErrCodeConnectivity, err.Error())
	}

	if amountCents <= 0 {
		return "", NewGatewayError(ErrCodeMalformedRequest, "charge amount must be positive")
	}

	if sourceToken == "" {
		return "", NewGatewayError(ErrCodeMalformedRequest, "missing source token")
	}

	switch sourceToken {
	case StubTokenDeclined:
		return "", NewGatewayError(ErrCodeDeclined, "your card was declined")
	case StubTokenRateLimited:
		return "", NewGatewayError(ErrCodeRateLimited, "too many requests, try again shortly")
	}

	chargeID := "ch_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	g.logger.Debug().
		Int64("amount_cents", amountCents).
		Str("charge_id", chargeID).
		Msg("simulated charge captured")

	return chargeID, nil
}
