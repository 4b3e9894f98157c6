package session

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"

	"chonggak/cmd/security/token"
)

// newRefreshToken generates an opaque refresh token and the hash stored
// server-side. The plain value is returned to the client exactly once and is
// never persisted.
func newRefreshToken(nBytes int) (plain string, hashHex string, err error) {
	b := make([]byte, nBytes)
	if _, err = rand.Read(b); err != nil {
		return "", "", err
	}

	// URL-safe, no padding.
	plain = base64.RawURLEncoding.EncodeToString(b)

	hashHex = token.HashRefreshTokenHex(plain) // 64 hex chars

	return plain, hashHex, nil
}

// refreshTokenMatches compares a presented plain refresh token against the
// stored hash in constant time. Any mismatch is a theft signal, not a miss.
func refreshTokenMatches(storedHash, presented string) bool {
	h := token.HashRefreshTokenHex(presented)
	return subtle.ConstantTimeCompare([]byte(h), []byte(storedHash)) == 1
}
