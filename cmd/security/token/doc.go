// Package token hashes opaque credentials (refresh tokens) before they
// reach a store. Raw token values never persist server side.
//
// Two modes, both producing 64-char hex suitable for constant-time
// comparison:
//   - HMAC-SHA256(token, key) when CHONGGAK_TOKEN_HMAC_KEY is set.
//   - SHA-256(token) otherwise, for dev and back-compat only.
//
// Deployments that set RequireTokenHMAC must load the key through
// HMACKeyFromEnv with a minimum of 32 bytes; the SHA fallback is not
// acceptable there.
package token
