package auth

import (
	"context"
	"time"

	"github.com/gamestore/admin-backend/pkg/auth"
	"github.com/gamestore/admin-backend/pkg/auth/session"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
)

type credentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*models.AdminUser, error)
}

type sessionStore interface {
	Add(ctx context.Context, accessID string) error
	Revoke(ctx context.Context, accessID string) error
}

// Service implements login and logout. Each login whitelists a fresh token
// id; logout revokes it, ending the session before the token expires.
type Service struct {
	accounts credentialVerifier
	sessions sessionStore
	jwt      config.JWTConfig
	now      func() time.Time
}

func NewService(accounts credentialVerifier, sessions sessionStore, jwt config.JWTConfig) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		jwt:      jwt,
		now:      time.Now,
	}
}

// Login verifies the credentials and mints a whitelisted session token.
func (s *Service) Login(ctx context.Context, input LoginInput) (string, *SessionView, error) {
	user, err := s.accounts.VerifyCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return "", nil, err
	}

	accessID := session.NewAccessID()
	token, err := auth.MintSessionToken(s.jwt, s.now(), auth.SessionPayload{
		Nickname:   user.Nickname,
		Permission: user.Permission,
		JTI:        accessID,
	})
	if err != nil {
		return "", nil, errors.Wrap(errors.CodeInternal, err, "minting session token")
	}

	if s.sessions != nil {
		if err := s.sessions.Add(ctx, accessID); err != nil {
			return "", nil, errors.Wrap(errors.CodeInternal, err, "whitelisting session")
		}
	}

	return token, &SessionView{Nickname: user.Nickname, Permission: user.Permission}, nil
}

// IssueTestToken mints a whitelisted session token for an arbitrary role.
// Only the non-production token route reaches this.
func (s *Service) IssueTestToken(ctx context.Context, role enums.Role) (string, error) {
	accessID := session.NewAccessID()
	token, err := auth.MintSessionToken(s.jwt, s.now(), auth.SessionPayload{
		Nickname:   "tester",
		Permission: role,
		JTI:        accessID,
	})
	if err != nil {
		return "", errors.Wrap(errors.CodeInternal, err, "minting test token")
	}
	if s.sessions != nil {
		if err := s.sessions.Add(ctx, accessID); err != nil {
			return "", errors.Wrap(errors.CodeInternal, err, "whitelisting test session")
		}
	}
	return token, nil
}

// Logout revokes the session token id.
func (s *Service) Logout(ctx context.Context, accessID string) error {
	if s.sessions == nil || accessID == "" {
		return nil
	}
	if err := s.sessions.Revoke(ctx, accessID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "revoking session")
	}
	return nil
}
