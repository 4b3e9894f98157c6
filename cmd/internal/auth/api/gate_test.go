package authapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chonggak/cmd/member"
)

func TestGateWithAuthentication(t *testing.T) {
	probe := func(captured *Principal, seen *bool) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*seen = true
			if p, ok := PrincipalFromContext(r.Context()); ok {
				*captured = p
			}
			w.WriteHeader(http.StatusOK)
		})
	}

	t.Run("anonymous requests pass through", func(t *testing.T) {
		f := newAPIFixture(t)

		var p Principal
		var seen bool
		gate := NewGate(f.sessions, nil).WithAuthentication(probe(&p, &seen))

		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/anything", nil))

		assert.True(t, seen)
		assert.Empty(t, p.SubjectID)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("valid bearer attaches a principal", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")
		pair := f.login(t, "a@b.com", "pw123456", "phone")

		var p Principal
		var seen bool
		gate := NewGate(f.sessions, nil).WithAuthentication(probe(&p, &seen))

		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		require.True(t, seen)
		assert.NotEmpty(t, p.SubjectID)
		assert.Equal(t, member.RoleUser, p.Role)
		assert.NotEmpty(t, p.JTI)
	})

	t.Run("invalid bearer fails the request", func(t *testing.T) {
		f := newAPIFixture(t)

		var p Principal
		var seen bool
		gate := NewGate(f.sessions, nil).WithAuthentication(probe(&p, &seen))

		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.False(t, seen)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed authorization header is anonymous", func(t *testing.T) {
		f := newAPIFixture(t)

		var p Principal
		var seen bool
		gate := NewGate(f.sessions, nil).WithAuthentication(probe(&p, &seen))

		req := httptest.NewRequest(http.MethodGet, "/anything", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwdw==")
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.True(t, seen)
		assert.Empty(t, p.SubjectID)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAuthenticated(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("principal passes", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")
		pair := f.login(t, "a@b.com", "pw123456", "phone")

		gate := NewGate(f.sessions, nil).WithAuthentication(RequireAuthenticated(next))

		req := httptest.NewRequest(http.MethodPost, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireRole(member.RoleAdmin, next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong role is forbidden", func(t *testing.T) {
		f := newAPIFixture(t)
		f.signup(t, "a@b.com", "pw123456")
		pair := f.login(t, "a@b.com", "pw123456", "phone")

		gate := NewGate(f.sessions, nil).WithAuthentication(RequireRole(member.RoleAdmin, next))

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		rec := httptest.NewRecorder()
		gate.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"Bearer", ""},
		{"Token abc", ""},
	}
	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			r.Header.Set("Authorization", tc.header)
		}
		assert.Equal(t, tc.want, bearerToken(r), "header %q", tc.header)
	}
}
