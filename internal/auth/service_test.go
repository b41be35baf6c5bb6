package auth

import (
	"context"
	"testing"

	pkgauth "github.com/gamestore/admin-backend/pkg/auth"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	user *models.AdminUser
	err  error

	gotEmail    string
	gotPassword string
}

func (s *stubVerifier) VerifyCredentials(ctx context.Context, email, password string) (*models.AdminUser, error) {
	s.gotEmail = email
	s.gotPassword = password
	return s.user, s.err
}

type stubSessions struct {
	added   []string
	revoked []string
	err     error
}

func (s *stubSessions) Add(ctx context.Context, accessID string) error {
	s.added = append(s.added, accessID)
	return s.err
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return s.err
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "gamestore-test",
		ExpirationMinutes: 60,
	}
}

func TestLoginMintsWhitelistedToken(t *testing.T) {
	verifier := &stubVerifier{user: &models.AdminUser{
		ID:         "user-1",
		Nickname:   "SomeAdmin",
		Permission: enums.RoleManager,
	}}
	sessions := &stubSessions{}
	svc := NewService(verifier, sessions, testJWTConfig())

	token, view, err := svc.Login(context.Background(), LoginInput{
		Email:    "someadmin@gmail.com",
		Password: "secret-pw",
	})
	require.NoError(t, err)
	require.Equal(t, "someadmin@gmail.com", verifier.gotEmail)
	require.Equal(t, "SomeAdmin", view.Nickname)
	require.Equal(t, enums.RoleManager, view.Permission)

	claims, err := pkgauth.ParseSessionToken(testJWTConfig(), token)
	require.NoError(t, err)
	require.Equal(t, enums.RoleManager, claims.Permission)
	require.Equal(t, []string{claims.ID}, sessions.added)
}

func TestLoginPropagatesVerifierError(t *testing.T) {
	verifier := &stubVerifier{err: errors.New(errors.CodeNotFound, "account not found")}
	sessions := &stubSessions{}
	svc := NewService(verifier, sessions, testJWTConfig())

	_, _, err := svc.Login(context.Background(), LoginInput{Email: "nobody@gmail.com", Password: "whatever"})
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())
	require.Empty(t, sessions.added)
}

func TestIssueTestToken(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewService(&stubVerifier{}, sessions, testJWTConfig())

	token, err := svc.IssueTestToken(context.Background(), enums.RoleUser)
	require.NoError(t, err)

	claims, err := pkgauth.ParseSessionToken(testJWTConfig(), token)
	require.NoError(t, err)
	require.Equal(t, "tester", claims.Nickname)
	require.Equal(t, enums.RoleUser, claims.Permission)
	require.Equal(t, []string{claims.ID}, sessions.added)
}

func TestLogout(t *testing.T) {
	sessions := &stubSessions{}
	svc := NewService(&stubVerifier{}, sessions, testJWTConfig())

	require.NoError(t, svc.Logout(context.Background(), "jti-1"))
	require.Equal(t, []string{"jti-1"}, sessions.revoked)

	// Missing id and missing store are both quiet no-ops.
	require.NoError(t, svc.Logout(context.Background(), ""))
	require.Len(t, sessions.revoked, 1)

	nilSvc := NewService(&stubVerifier{}, nil, testJWTConfig())
	require.NoError(t, nilSvc.Logout(context.Background(), "jti-2"))
}
