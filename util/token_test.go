package util

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken(16)
	require.NoError(t, err)

	assert.Len(t, token, 32)

	_, err = hex.DecodeString(token)
	assert.NoError(t, err)
}

func TestGenerateTokenUnique(t *testing.T) {
	seen := make(map[string]bool)

	for range 100 {
		token, err := GenerateToken(16)
		require.NoError(t, err)

		assert.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestRandStr(t *testing.T) {
	assert.Len(t, RandStr(10), 10)
	assert.NotEqual(t, RandStr(10), RandStr(10))
}
