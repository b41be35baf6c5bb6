package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gamestore/admin-backend/internal/auth"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	token string
	view  *auth.SessionView
	err   error

	gotInput    auth.LoginInput
	gotAccessID string
}

func (s *stubAuth) Login(ctx context.Context, input auth.LoginInput) (string, *auth.SessionView, error) {
	s.gotInput = input
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.view, nil
}

func (s *stubAuth) Logout(ctx context.Context, accessID string) error {
	s.gotAccessID = accessID
	return s.err
}

func loginJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "gamestore-test",
		ExpirationMinutes: 60,
	}
}

func TestLoginSetsSessionCookie(t *testing.T) {
	svc := &stubAuth{
		token: "signed-token",
		view:  &auth.SessionView{Nickname: "someadmin", Permission: enums.RoleAdmin},
	}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(
		`{"email":" SomeAdmin@Gmail.com ","password":"secret-pw"}`,
	))

	Login(svc, loginJWTConfig(), true, testLogger())(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, "someadmin@gmail.com", svc.gotInput.Email)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Equal(t, "signed-token", cookie.Value)
	require.True(t, cookie.HttpOnly)
	require.True(t, cookie.Secure)
	require.Equal(t, 3600, cookie.MaxAge)

	var body struct {
		Message    string `json:"message"`
		Nickname   string `json:"nickname"`
		Permission string `json:"permission"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Successfully logged in", body.Message)
	require.Equal(t, "someadmin", body.Nickname)
	require.Equal(t, "admin", body.Permission)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := &stubAuth{err: errors.New(errors.CodeWrongPassword, "password mismatch")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(
		`{"email":"someadmin@gmail.com","password":"wrong-pw"}`,
	))

	Login(svc, loginJWTConfig(), false, testLogger())(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Incorrect password", errorMessage(t, rec))
	require.Nil(t, sessionCookie(t, rec))
}

func TestLoginRejectsInvalidBody(t *testing.T) {
	svc := &stubAuth{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/auth", strings.NewReader(
		`{"email":"not-an-email","password":"short"}`,
	))

	Login(svc, loginJWTConfig(), false, testLogger())(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Empty(t, svc.gotInput.Email, "service must not run on invalid input")
}

func TestLogoutClearsCookie(t *testing.T) {
	svc := &stubAuth{}
	rec := httptest.NewRecorder()
	req := withSession(
		httptest.NewRequest(http.MethodDelete, "/admin/auth", nil),
		"someadmin", enums.RoleAdmin, "jti-1",
	)

	Logout(svc, testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "jti-1", svc.gotAccessID)

	cookie := sessionCookie(t, rec)
	require.NotNil(t, cookie)
	require.Negative(t, cookie.MaxAge)

	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "Successfully logged out", body.Message)
}

func TestSessionReportsActor(t *testing.T) {
	rec := httptest.NewRecorder()
	req := withSession(
		httptest.NewRequest(http.MethodGet, "/admin/auth", nil),
		"someadmin", enums.RoleManager, "jti-1",
	)

	Session(testLogger())(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body auth.SessionView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "someadmin", body.Nickname)
	require.Equal(t, enums.RoleManager, body.Permission)
}
