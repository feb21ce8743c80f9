package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefCode_LengthAndAlphabet(t *testing.T) {
	code, err := GenerateRefCode()

	require.NoError(t, err)
	assert.Len(t, code, 20)
	for _, r := range code {
		assert.True(t, strings.ContainsRune(refCodeAlphabet, r), "unexpected rune %q", r)
	}
}

func TestGenerateRefCode_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		code, err := GenerateRefCode()
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate reference code generated")
		seen[code] = true
	}
}
