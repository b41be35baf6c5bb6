package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

type stubTokenIssuer struct {
	token   string
	err     error
	gotRole enums.Role
	calls   int
}

func (s *stubTokenIssuer) IssueTestToken(ctx context.Context, role enums.Role) (string, error) {
	s.calls++
	s.gotRole = role
	return s.token, s.err
}

func testTokenRouter(svc *stubTokenIssuer, isProd bool) http.Handler {
	router := chi.NewRouter()
	router.Get("/test/token/{level}", TestToken(svc, loginJWTConfig(), isProd, testLogger()))
	return router
}

func TestTestTokenDisabledInProduction(t *testing.T) {
	svc := &stubTokenIssuer{token: "signed-token"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test/token/admin", nil)

	testTokenRouter(svc, true).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not allowed to access resource", errorMessage(t, rec))
	require.Zero(t, svc.calls)
}

func TestTestTokenUnknownLevel(t *testing.T) {
	svc := &stubTokenIssuer{token: "signed-token"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test/token/superuser", nil)

	testTokenRouter(svc, false).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Invalid request data", errorMessage(t, rec))
	require.Zero(t, svc.calls)
}

func TestTestTokenIssuesCookie(t *testing.T) {
	svc := &stubTokenIssuer{token: "signed-token"}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test/token/manager", nil)

	testTokenRouter(svc, false).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, enums.RoleManager, svc.gotRole)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Equal(t, "signed-token", cookie.Value)

	var body struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "signed-token", body.Token)
}
