package middleware

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gamestore/admin-backend/pkg/auth"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	live bool
	err  error
}

func (c stubChecker) HasSession(ctx context.Context, accessID string) (bool, error) {
	return c.live, c.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "gamestore-test",
		ExpirationMinutes: 60,
	}
}

func mintCookie(t *testing.T, issuedAt time.Time) *http.Cookie {
	t.Helper()
	token, err := auth.MintSessionToken(testJWTConfig(), issuedAt, auth.SessionPayload{
		Nickname:   "someadmin",
		Permission: enums.RoleManager,
		JTI:        "jti-1",
	})
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: token}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func runGate(t *testing.T, checker stubChecker, useChecker bool, cookie *http.Cookie) (*httptest.ResponseRecorder, *context.Context, bool) {
	t.Helper()
	var seenCtx context.Context
	reached := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenCtx = r.Context()
		reached = true
		w.WriteHeader(http.StatusOK)
	})

	var gate func(http.Handler) http.Handler
	if useChecker {
		gate = SessionGate(testJWTConfig(), checker, testLogger())
	} else {
		gate = SessionGate(testJWTConfig(), nil, testLogger())
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	gate(next).ServeHTTP(rec, req)
	return rec, &seenCtx, reached
}

func TestSessionGateAnonymousPassThrough(t *testing.T) {
	rec, ctx, reached := runGate(t, stubChecker{}, true, nil)
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
	require.False(t, IsAuthenticated(*ctx))
}

func TestSessionGateValidToken(t *testing.T) {
	rec, ctx, reached := runGate(t, stubChecker{live: true}, true, mintCookie(t, time.Now()))
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, IsAuthenticated(*ctx))
	require.Equal(t, "someadmin", ActorNickname(*ctx))
	require.Equal(t, enums.RoleManager, ActorRole(*ctx))
	require.Equal(t, "jti-1", ActorAccessID(*ctx))
}

func TestSessionGateExpiredToken(t *testing.T) {
	rec, _, reached := runGate(t, stubChecker{live: true}, true, mintCookie(t, time.Now().Add(-2*time.Hour)))
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Expired token", errorMessage(t, rec))
}

func TestSessionGateGarbageToken(t *testing.T) {
	cookie := &http.Cookie{Name: SessionCookieName, Value: "not-a-token"}
	rec, _, reached := runGate(t, stubChecker{live: true}, true, cookie)
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", errorMessage(t, rec))
}

func TestSessionGateRevokedSession(t *testing.T) {
	rec, _, reached := runGate(t, stubChecker{live: false}, true, mintCookie(t, time.Now()))
	require.False(t, reached)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Invalid token", errorMessage(t, rec))
}

func TestSessionGateNilCheckerSkipsWhitelist(t *testing.T) {
	rec, ctx, reached := runGate(t, stubChecker{}, false, mintCookie(t, time.Now()))
	require.True(t, reached)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, IsAuthenticated(*ctx))
}

func TestRequireAuth(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAuth(testLogger())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authentication required", errorMessage(t, rec))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), "someadmin", enums.RoleAdmin, "jti-1"))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireRole(testLogger(), enums.RoleManager)(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authentication required", errorMessage(t, rec))

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), "someadmin", enums.RoleAdmin, "jti-1"))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Not allowed to access resource", errorMessage(t, rec))

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), "boss", enums.RoleManager, "jti-2"))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := RequireAnonymous(testLogger())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(WithSession(req.Context(), "someadmin", enums.RoleAdmin, "jti-1"))
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "You need to log out first", errorMessage(t, rec))
}
