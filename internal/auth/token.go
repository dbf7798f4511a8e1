package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenKeyLength is the length of generated keys in hex characters.
const TokenKeyLength = 40

// GenerateTokenKey returns a random opaque key of TokenKeyLength hex characters.
func GenerateTokenKey() (string, error) {
	buf := make([]byte, TokenKeyLength/2)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
