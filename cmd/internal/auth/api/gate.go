package authapi

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
)

// Principal is the authenticated identity attached to a request by the gate.
type Principal struct {
	SubjectID string
	Role      member.Role
	JTI       string
}

type principalKey struct{}

// PrincipalFromContext returns the request principal, if the gate attached one.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}

// Gate authenticates bearer tokens for any route group.
type Gate struct {
	sessions *session.Service
	log      *slog.Logger
}

// NewGate constructs a Gate over the session service.
func NewGate(sessions *session.Service, log *slog.Logger) *Gate {
	if log == nil {
		log = slog.Default()
	}
	return &Gate{sessions: sessions, log: log}
}

// WithAuthentication resolves the Authorization header into a Principal.
//
// Requests without a bearer token pass through anonymously; a token that is
// present but invalid, expired, or blacklisted fails the request here so
// downstream handlers never see a half-authenticated principal.
func (g *Gate) WithAuthentication(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := g.sessions.Authenticate(r.Context(), token, time.Now().UTC())
		if err != nil {
			writeServiceError(w, g.log, err)
			return
		}

		p := Principal{SubjectID: claims.SubjectID, Role: claims.Role, JTI: claims.JTI}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), principalKey{}, p)))
	})
}

// RequireAuthenticated rejects anonymous requests with 401.
func RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := PrincipalFromContext(r.Context()); !ok {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole rejects principals without the given role with 403, and
// anonymous requests with 401.
func RequireRole(role member.Role, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := PrincipalFromContext(r.Context())
		if !ok {
			writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "authentication required")
			return
		}
		if p.Role != role {
			writeError(w, http.StatusForbidden, "FORBIDDEN", "insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	raw := strings.TrimSpace(r.Header.Get("Authorization"))
	if raw == "" {
		return ""
	}
	parts := strings.SplitN(raw, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
