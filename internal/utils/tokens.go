package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

// SecureToken returns n random bytes from crypto/rand, URL-safe base64 encoded.
// Used for the session's CSRF token and CSP nonce.
func SecureToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
