package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"strings"
)

// HMACEnvKey names the env var holding the token HMAC secret.
// #nosec G101 -- the variable name, not a credential.
const HMACEnvKey = "CHONGGAK_TOKEN_HMAC_KEY"

func envKey() string {
	return strings.TrimSpace(os.Getenv(HMACEnvKey))
}

// HashSHA256Hex returns the SHA-256 digest of s, hex encoded.
func HashSHA256Hex(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// HashHMACSHA256Hex returns the HMAC-SHA256 digest of s under key, hex encoded.
func HashHMACSHA256Hex(s string, key []byte) string {
	m := hmac.New(sha256.New, key)
	_, _ = m.Write([]byte(s))
	return hex.EncodeToString(m.Sum(nil))
}

// HMACKeyFromEnv loads the HMAC key from the environment, trimmed.
// Missing or blank yields ErrHMACKeyMissing; shorter than minBytes
// yields ErrHMACKeyTooShort.
func HMACKeyFromEnv(minBytes int) ([]byte, error) {
	raw := envKey()
	if raw == "" {
		return nil, ErrHMACKeyMissing
	}
	if minBytes > 0 && len(raw) < minBytes {
		return nil, ErrHMACKeyTooShort
	}
	return []byte(raw), nil
}

// HMACEnabled reports whether a non-blank key is configured.
// Length policy is not checked here; see HMACKeyFromEnv.
func HMACEnabled() bool {
	return envKey() != ""
}

// HashRefreshTokenHex hashes an opaque refresh token for storage.
// With a configured key it uses HMAC-SHA256; without one it falls
// back to plain SHA-256, which is acceptable for dev only.
func HashRefreshTokenHex(tok string) string {
	if key := envKey(); key != "" {
		return HashHMACSHA256Hex(tok, []byte(key))
	}
	return HashSHA256Hex(tok)
}

// HashRefreshTokenHexRequireHMAC is the strict variant: it errors
// instead of degrading when the key is absent or too short.
func HashRefreshTokenHexRequireHMAC(tok string, minBytes int) (string, error) {
	key, err := HMACKeyFromEnv(minBytes)
	if err != nil {
		return "", err
	}
	return HashHMACSHA256Hex(tok, key), nil
}
