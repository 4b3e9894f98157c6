// Package session implements credential and session lifecycle management.
//
// It issues short-lived signed access tokens (JWT HS256), rotates one
// long-lived opaque refresh token per (member, device) slot, detects
// refresh-token reuse as a theft signal (full-account revocation), and
// blacklists logged-out access tokens for their remaining lifetime.
//
// Refresh tokens are opaque random strings and are stored hashed
// (HMAC-SHA256 when CHONGGAK_TOKEN_HMAC_KEY is set; otherwise SHA-256 for
// dev/back-compat). The production stores are Redis; in-memory
// implementations back tests and store-less dev mode.
//
// Transport (HTTP) integration is intentionally out of scope here.
package session
