package utils

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateInviteToken returns a cryptographically random, URL-safe token.
// 32 bytes of entropy encode to 43 characters, comfortably above the minimum
// unguessability bar for single-use invite links.
func GenerateInviteToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
