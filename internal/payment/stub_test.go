package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubGateway_Charge_Success(t *testing.T) {
	gateway := NewStubGateway(zerolog.Nop())

	chargeID, err := gateway.Charge(context.Background(), 2500, "tok_visa")

	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(chargeID, "ch_"))
	assert.Len(t, chargeID, 35)
}

func TestStubGateway_Charge_Declined(t *testing.T) {
	gateway := NewStubGateway(zerolog.Nop())

	chargeID, err := gateway.Charge(context.Background(), 2500, StubTokenDeclined)

	require.Error(t, err)
	assert.Empty(t, chargeID)

	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeDeclined, gwErr.Code)
}

func TestStubGateway_Charge_RateLimited(t *testing.T) {
	gateway := NewStubGateway(zerolog.Nop())

	_, err := gateway.Charge(context.Background(), 2500, StubTokenRateLimited)

	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeRateLimited, gwErr.Code)
}

func TestStubGateway_Charge_MalformedRequests(t *testing.T) {
	gateway := NewStubGateway(zerolog.Nop())

	tests := []struct {
		name        string
		amountCents int64
		token       string
	}{
		{"zero amount", 0, "tok_visa"},
		{"negative amount", -100, "tok_visa"},
		{"empty token", 2500, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := gateway.Charge(context.Background(), tt.amountCents, tt.token)

			gwErr, ok := AsGatewayError(err)
			require.True(t, ok)
			assert.Equal(t, ErrCodeMalformedRequest, gwErr.Code)
		})
	}
}

func TestStubGateway_Charge_CancelledContext(t *testing.T) {
	gateway := NewStubGateway(zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gateway.Charge(ctx, 2500, "tok_visa")

	gwErr, ok := AsGatewayError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeConnectivity, gwErr.Code)
}

func TestAsGatewayError(t *testing.T) {
	gwErr := NewGatewayError(ErrCodeDeclined, "declined")

	wrapped := fmt.Errorf("charge failed: %w", gwErr)
	got, ok := AsGatewayError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrCodeDeclined, got.Code)

	_, ok = AsGatewayError(errors.New("plain error"))
	assert.False(t, ok)
}
