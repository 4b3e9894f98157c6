package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
)

// Handler wires the auth HTTP endpoints to the member and session services.
type Handler struct {
	log *slog.Logger
	cfg Config

	members  *member.Service
	sessions *session.Service
	limiter  *loginRateLimiter
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, members *member.Service, sessions *session.Service) (*Handler, error) {
	if members == nil || sessions == nil {
		return nil, errors.New("auth: nil member or session service")
	}
	if log == nil {
		log = slog.Default()
	}

	return &Handler{
		log:      log,
		cfg:      cfg,
		members:  members,
		sessions: sessions,
		limiter:  newLoginRateLimiter(cfg.LoginFailureMax, cfg.LoginFailureWindow),
	}, nil
}

// Register wires auth routes onto the provided mux. Logout expects the gate
// to have attached a principal; the other routes are anonymous.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("POST /api/v1/auth/local-signup", h.handleSignup)
	mux.HandleFunc("POST /api/v1/auth/local-login", h.handleLogin)
	mux.HandleFunc("POST /api/v1/auth/reissue", h.handleReissue)
	mux.Handle("POST /api/v1/auth/logout", RequireAuthenticated(http.HandlerFunc(h.handleLogout)))
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}

	m, err := h.members.Signup(r.Context(), time.Now().UTC(), req.Email, req.Password, req.Nickname)
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeSuccess(w, toMemberResponse(m))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "email and password are required")
		return
	}

	now := time.Now().UTC()
	identifier := member.NormalizeEmail(req.Email)

	if ok, retryAfter := h.limiter.allow(identifier, now); !ok {
		writeRateLimited(w, retryAfter)
		return
	}

	pair, err := h.sessions.Login(r.Context(), now, req.Email, req.Password, resolveDeviceID(req.DeviceID))
	if err != nil {
		if errors.Is(err, session.ErrInvalidCredentials) {
			h.limiter.recordFailure(identifier, now)
		}
		writeServiceError(w, h.log, err)
		return
	}

	h.limiter.reset(identifier)
	writeSuccess(w, toTokenPairResponse(pair))
}

func (h *Handler) handleReissue(w http.ResponseWriter, r *http.Request) {
	var req reissueRequest
	if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.RefreshToken == "" || req.MemberID == "" {
		writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "refresh_token and member_id are required")
		return
	}

	pair, err := h.sessions.Reissue(r.Context(), time.Now().UTC(), req.RefreshToken, req.MemberID, resolveDeviceID(req.DeviceID))
	if err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeSuccess(w, toTokenPairResponse(pair))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	p, _ := PrincipalFromContext(r.Context())

	// Body is optional; its only field is the device id.
	var req logoutRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "invalid request body")
			return
		}
	}

	token := bearerToken(r)
	if err := h.sessions.Logout(r.Context(), time.Now().UTC(), token, p.SubjectID, resolveDeviceID(req.DeviceID)); err != nil {
		writeServiceError(w, h.log, err)
		return
	}

	writeSuccess(w, nil)
}
