package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kreol-backend/internal/security"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRouter(tokens security.TokenManager) *mux.Router {
	r := mux.NewRouter()
	r.Use(AuthMiddleware(tokens))

	ok := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
	r.HandleFunc("/settings", ok).Methods(http.MethodGet).Name("settings.get")
	r.HandleFunc("/bookings", ok).Methods(http.MethodGet).Name("bookings.list")
	r.HandleFunc("/bookings/mine", ok).Methods(http.MethodGet).Name("bookings.mine")
	r.HandleFunc("/unnamed", ok).Methods(http.MethodGet)
	return r
}

func newTestTokens(t *testing.T) security.TokenManager {
	t.Helper()
	return security.NewTokenManager("test-secret-0123456789abcdef0123456789", time.Hour, 7*24*time.Hour)
}

func do(t *testing.T, r *mux.Router, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestPublicRouteNeedsNoToken(t *testing.T) {
	r := testRouter(newTestTokens(t))
	assert.Equal(t, http.StatusOK, do(t, r, "/settings", "").Code)
}

func TestStaffRouteRejectsAnonymous(t *testing.T) {
	r := testRouter(newTestTokens(t))
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "/bookings", "").Code)
}

func TestStaffRouteRejectsClientRole(t *testing.T) {
	tokens := newTestTokens(t)
	r := testRouter(tokens)

	token, err := tokens.GenerateAccessToken("u-1", "client@example.com", "CLIENT")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(t, r, "/bookings", token).Code)
}

func TestStaffRouteAllowsManager(t *testing.T) {
	tokens := newTestTokens(t)
	r := testRouter(tokens)

	token, err := tokens.GenerateAccessToken("u-1", "anna@kreol.sc", "MANAGER")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, r, "/bookings", token).Code)
}

func TestAccessRouteRejectsRefreshToken(t *testing.T) {
	tokens := newTestTokens(t)
	r := testRouter(tokens)

	refresh, err := tokens.GenerateRefreshToken("u-1", "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "/bookings/mine", refresh).Code)
}

func TestAccessRouteAllowsAnyRole(t *testing.T) {
	tokens := newTestTokens(t)
	r := testRouter(tokens)

	token, err := tokens.GenerateAccessToken("u-1", "client@example.com", "CLIENT")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, do(t, r, "/bookings/mine", token).Code)
}

func TestUnnamedRouteDefaultsToStaff(t *testing.T) {
	tokens := newTestTokens(t)
	r := testRouter(tokens)

	token, err := tokens.GenerateAccessToken("u-1", "client@example.com", "CLIENT")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, do(t, r, "/unnamed", token).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, r, "/unnamed", "").Code)
}
