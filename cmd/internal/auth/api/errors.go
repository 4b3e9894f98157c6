package authapi

import (
	"errors"
	"log/slog"
	"net/http"

	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
	"chonggak/cmd/security/password"
)

// writeServiceError maps domain errors onto stable HTTP error codes.
// Anything unmapped is a server fault: logged in full, reported as 500.
func writeServiceError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, session.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	case errors.Is(err, session.ErrMemberSuspended):
		writeError(w, http.StatusForbidden, "MEMBER_SUSPENDED", "account is suspended")
	case errors.Is(err, session.ErrMemberNotFound), errors.Is(err, member.ErrNotFound):
		writeError(w, http.StatusNotFound, "MEMBER_NOT_FOUND", "member not found")
	case errors.Is(err, session.ErrInvalidRefreshToken):
		writeError(w, http.StatusUnauthorized, "INVALID_REFRESH_TOKEN", "invalid refresh token")
	case errors.Is(err, session.ErrExpiredToken):
		writeError(w, http.StatusUnauthorized, "EXPIRED_TOKEN", "token has expired")
	case errors.Is(err, session.ErrBlacklistedToken):
		writeError(w, http.StatusUnauthorized, "BLACKLISTED_TOKEN", "token has been revoked")
	case errors.Is(err, session.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "invalid token")
	case errors.Is(err, member.ErrEmailTaken):
		writeError(w, http.StatusConflict, "MEMBER_ALREADY_EXISTS", "email is already registered")
	case errors.Is(err, member.ErrInvalidInput),
		errors.Is(err, password.ErrPasswordTooShort),
		errors.Is(err, password.ErrPasswordTooLong),
		errors.Is(err, password.ErrWeakPassword):
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid input")
	default:
		log.Error("auth.api.internal", "err", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal error")
	}
}
