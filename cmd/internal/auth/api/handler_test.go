package authapi

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chonggak/cmd/internal/auth/session"
	"chonggak/cmd/member"
)

const testJWTSecret = "0123456789abcdef0123456789abcdef"

// fakePasswords hashes to "hash:" + password, so both sides of the
// hasher/verifier pair agree without paying argon2 cost in every request.
type fakePasswords struct{}

func (fakePasswords) Hash(password string) (string, error) { return "hash:" + password, nil }
func (fakePasswords) Verify(encodedHash, password string) (bool, error) {
	return encodedHash == "hash:"+password, nil
}

type apiFixture struct {
	handler  http.Handler
	members  *member.Service
	sessions *session.Service
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	log := slog.New(slog.DiscardHandler)

	sessCfg := session.DefaultConfig()
	sessCfg.JWTSecret = testJWTSecret

	codec, err := session.NewHMACCodec(sessCfg)
	require.NoError(t, err)

	memberStore := member.NewMemoryStore()

	sessions, err := session.NewService(sessCfg, session.Deps{
		Codec:     codec,
		Refresh:   session.NewMemoryRefreshStore(sessCfg.RefreshTokenTTL),
		Blacklist: session.NewMemoryBlacklistStore(),
		Members:   memberStore,
		Passwords: fakePasswords{},
		Logger:    log,
	})
	require.NoError(t, err)

	members := member.NewService(memberStore, fakePasswords{}, sessions, log)

	h, err := NewHandler(log, DefaultConfig(), members, sessions)
	require.NoError(t, err)

	mux := http.NewServeMux()
	h.Register(mux)

	return &apiFixture{
		handler:  NewGate(sessions, log).WithAuthentication(mux),
		members:  members,
		sessions: sessions,
	}
}

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (f *apiFixture) post(t *testing.T, path string, body any, bearer string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func (f *apiFixture) signup(t *testing.T, email, password string) {
	t.Helper()

	rec, env := f.post(t, "/api/v1/auth/local-signup", signupRequest{
		Email:    email,
		Password: password,
		Nickname: "tester",
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "SUCCESS", env.Code)
}

func (f *apiFixture) login(t *testing.T, email, password, deviceID string) tokenPairResponse {
	t.Helper()

	rec, env := f.post(t, "/api/v1/auth/local-login", loginRequest{
		Email:    email,
		Password: password,
		DeviceID: deviceID,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var pair tokenPairResponse
	require.NoError(t, json.Unmarshal(env.Data, &pair))
	return pair
}

func TestSignupEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newAPIFixture(t)

		rec, env := f.post(t, "/api/v1/auth/local-signup", signupRequest{
			Email:    "a@b.com",
			Password: "pw123456",
			Nickname: "nick",
		}, "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "SUCCESS", env.Code)

		var m memberResponse
		require.NoError(t, json.Unmarshal(env.Data, &m))
		assert.NotEmpty(t, m.ID)
		assert.Equal(t, "a@b.com", m.Email)
		assert.Equal(t, "USER", m.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")

		rec, env := f.post(t, "/api/v1/auth/local-signup", signupRequest{
			Email:    "a@b.com",
			Password: "pw123456",
			Nickname: "nick",
		}, "")
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "MEMBER_ALREADY_EXISTS", env.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newAPIFixture(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/local-signup", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLoginEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")

		pair := f.login(t, "a@b.com", "pw123456", "phone")
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
	})

	t.Run("wrong password", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")

		rec, env := f.post(t, "/api/v1/auth/local-login", loginRequest{
			Email:    "a@b.com",
			Password: "wrong",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_CREDENTIALS", env.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAPIFixture(t)

		rec, env := f.post(t, "/api/v1/auth/local-login", loginRequest{Email: "a@b.com"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", env.Code)
	})

	t.Run("repeated failures are throttled", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")

		cfg := DefaultConfig()
		for i := 0; i < cfg.LoginFailureMax; i++ {
			rec, _ := f.post(t, "/api/v1/auth/local-login", loginRequest{
				Email:    "a@b.com",
				Password: "wrong",
			}, "")
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		}

		// Even the correct password is blocked once the window is full.
		rec, env := f.post(t, "/api/v1/auth/local-login", loginRequest{
			Email:    "a@b.com",
			Password: "pw123456",
		}, "")
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "TOO_MANY_REQUESTS", env.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})
}

func TestReissueEndpoint(t *testing.T) {
	memberID := func(t *testing.T, f *apiFixture, accessToken string) string {
		t.Helper()
		claims, err := f.sessions.Authenticate(t.Context(), accessToken, time.Now().UTC())
		require.NoError(t, err)
		return claims.SubjectID
	}

	t.Run("rotates and rejects replay", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")
		pair := f.login(t, "a@b.com", "pw123456", "phone")
		id := memberID(t, f, pair.AccessToken)

		rec, env := f.post(t, "/api/v1/auth/reissue", reissueRequest{
			RefreshToken: pair.RefreshToken,
			MemberID:     id,
			DeviceID:     "phone",
		}, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var rotated tokenPairResponse
		require.NoError(t, json.Unmarshal(env.Data, &rotated))
		assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

		rec, env = f.post(t, "/api/v1/auth/reissue", reissueRequest{
			RefreshToken: pair.RefreshToken,
			MemberID:     id,
			DeviceID:     "phone",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_REFRESH_TOKEN", env.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		f := newAPIFixture(t)

		rec, env := f.post(t, "/api/v1/auth/reissue", reissueRequest{DeviceID: "phone"}, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "INVALID_REQUEST", env.Code)
	})
}

func TestLogoutEndpoint(t *testing.T) {
	t.Run("revokes the access token and refresh slot", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")
		pair := f.login(t, "a@b.com", "pw123456", "phone")

		rec, env := f.post(t, "/api/v1/auth/logout", logoutRequest{DeviceID: "phone"}, pair.AccessToken)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "SUCCESS", env.Code)

		// The blacklisted token no longer passes the gate.
		rec, env = f.post(t, "/api/v1/auth/logout", logoutRequest{DeviceID: "phone"}, pair.AccessToken)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "BLACKLISTED_TOKEN", env.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		f := newAPIFixture(t)

		rec, env := f.post(t, "/api/v1/auth/logout", logoutRequest{}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "INVALID_TOKEN", env.Code)
	})
}
