package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateToken returns 2n hex characters of cryptographically random
// data. Used for share links, which must be unguessable.
func GenerateToken(n int) (string, error) {
	b := make([]byte, n)

	_, err := rand.Read(b)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(b), nil
}
