package service

import (
	"crypto/rand"
	"fmt"
)

const (
	refCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	refCodeLength   = 20
)

// GenerateRefCode returns a fresh 20-character alphanumeric order reference
// code. The code is the customer-facing order identifier used for refund
// lookups, independent of the database id.
func GenerateRefCode() (string, error) {
	buf := make([]byte, refCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate reference code: %w", err)
	}

	for i, b := range buf {
		buf[i] = refCodeAlphabet[int(b)%len(refCodeAlphabet)]
	}

	return string(buf), nil
}
