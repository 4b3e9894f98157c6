// Package password hashes and verifies member passwords with Argon2id.
//
// Hashes are stored in a PHC-like encoded string, so a record carries its
// own cost parameters and older hashes keep verifying after a tuning
// change. The package also owns the password policy (length bounds plus an
// optional trivial-password check).
//
// Encoded hashes are untrusted input to Verify: they are decoded strictly,
// and cost parameters far above the configured ceiling are rejected so a
// hostile record cannot drive verification cost.
package password
