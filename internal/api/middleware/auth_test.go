package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alialif/JoinUp-Event-Management/internal/auth"
	"github.com/alialif/JoinUp-Event-Management/internal/authz"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *auth.TokenManager {
	return auth.NewTokenManager("test-secret-test-secret-test-secret", time.Hour, "joinup-test")
}

func okHandler() (http.Handler, *bool) {
	called := new(bool)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	}), called
}

func TestJWTAuthMissingToken(t *testing.T) {
	handler, called := okHandler()
	wrapped := JWTAuth(newTestTokens(), "test")(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestJWTAuthRejectsNonBearerSchemes(t *testing.T) {
	manager := newTestTokens()
	token, err := manager.Issue("member-1", string(authz.RoleStaff))
	require.NoError(t, err)

	for _, header := range []string{
		"Basic dXNlcjpwYXNz",
		token,
		"Bearer",
		"Bearer " + token + " extra",
	} {
		handler, called := okHandler()
		wrapped := JWTAuth(manager, "test")(handler)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		require.False(t, *called)
	}
}

func TestJWTAuthAcceptsLowercaseBearer(t *testing.T) {
	manager := newTestTokens()
	token, err := manager.Issue("member-1", string(authz.RoleStaff))
	require.NoError(t, err)

	handler, called := okHandler()
	wrapped := JWTAuth(manager, "test")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	handler, called := okHandler()
	wrapped := JWTAuth(newTestTokens(), "test")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}

func TestJWTAuthValidTokenExposesClaims(t *testing.T) {
	manager := newTestTokens()
	token, err := manager.Issue("member-1", string(authz.RoleStaff))
	require.NoError(t, err)

	var gotActor, gotRole string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotActor = ActorID(r)
		gotRole = Claims(r).Role
	})
	wrapped := JWTAuth(manager, "test")(handler)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	wrapped.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "member-1", gotActor)
	require.Equal(t, string(authz.RoleStaff), gotRole)
}

func TestRequireOperationForbidsRole(t *testing.T) {
	manager := newTestTokens()
	token, err := manager.Issue("member-1", string(authz.RoleParticipant))
	require.NoError(t, err)

	handler, called := okHandler()
	wrapped := JWTAuth(manager, "test")(RequireOperation(authz.OpEventCreate, "test")(handler))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.False(t, *called)
}

func TestRequireOperationAllowsRole(t *testing.T) {
	manager := newTestTokens()
	token, err := manager.Issue("member-1", string(authz.RoleStaff))
	require.NoError(t, err)

	handler, called := okHandler()
	wrapped := JWTAuth(manager, "test")(RequireOperation(authz.OpEventCreate, "test")(handler))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, *called)
}

func TestRequireOperationWithoutAuth(t *testing.T) {
	handler, called := okHandler()
	wrapped := RequireOperation(authz.OpEventCreate, "test")(handler)

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.False(t, *called)
}
