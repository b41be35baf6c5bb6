package accounts

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const generatedPasswordLength = 12

type repository interface {
	Create(ctx context.Context, user *models.AdminUser) error
	FindLiveByIdentifier(ctx context.Context, identifier string) (*models.AdminUser, error)
	FindLiveByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	CountConflicts(ctx context.Context, identifier, email, excludeID string) (int64, error)
	List(ctx context.Context, q listing.Query, includeDeleted bool) (*listing.Page[models.AdminUser], error)
	Save(ctx context.Context, user *models.AdminUser) error
	SoftDelete(ctx context.Context, user *models.AdminUser, now time.Time) error
}

// Service implements the admin account operations.
type Service struct {
	repo      repository
	passwords config.PasswordConfig
	now       func() time.Time
}

func NewService(repo repository, passwords config.PasswordConfig) *Service {
	return &Service{
		repo:      repo,
		passwords: passwords,
		now:       time.Now,
	}
}

// List pages through every account, tombstoned rows included; only managers
// reach this path so the view is always the privileged one.
func (s *Service) List(ctx context.Context, q listing.Query) (*ListResult, error) {
	page, err := s.repo.List(ctx, q, true)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing accounts")
	}
	return &ListResult{
		Page:       page.Page,
		TotalPages: page.TotalPages,
		TotalUsers: page.Total,
		Limit:      page.Limit,
		Users:      NewViews(page.Items),
	}, nil
}

// GetByIdentifier returns a live account. A tombstoned identifier never
// matches, so deleted accounts answer not-found here.
func (s *Service) GetByIdentifier(ctx context.Context, identifier string) (*View, error) {
	user, err := s.findLive(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		return nil, err
	}
	view := NewView(*user)
	return &view, nil
}

// GetSelf resolves the caller's own account from the session nickname.
func (s *Service) GetSelf(ctx context.Context, nickname string) (*View, error) {
	return s.GetByIdentifier(ctx, nickname)
}

// Create provisions a new admin account with a generated password, returned
// exactly once in the creation response.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, string, error) {
	conflicts, err := s.repo.CountConflicts(ctx, input.Identifier, input.Email, "")
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "checking account conflicts")
	}
	if conflicts > 0 {
		return nil, "", errors.New(errors.CodeConflict, "identifier or email already in use")
	}

	password, err := security.GeneratePassword(generatedPasswordLength)
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "generating password")
	}
	hash, err := security.HashPassword(password, s.passwords)
	if err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "hashing password")
	}

	user := models.AdminUser{
		ID:         uuid.NewString(),
		Identifier: input.Identifier,
		Nickname:   input.Nickname,
		Email:      input.Email,
		Password:   hash,
		Permission: enums.RoleAdmin,
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		return nil, "", errors.Wrap(errors.CodeInternal, err, "creating account")
	}

	view := NewView(user)
	return &view, password, nil
}

// Update applies a partial update to a live account.
func (s *Service) Update(ctx context.Context, identifier string, input UpdateInput) (*View, error) {
	user, err := s.findLive(ctx, strings.ToLower(strings.TrimSpace(identifier)))
	if err != nil {
		return nil, err
	}

	conflictIdentifier := ""
	if input.Identifier != nil && *input.Identifier != user.Identifier {
		conflictIdentifier = *input.Identifier
	}
	conflictEmail := ""
	if input.Email != nil && *input.Email != user.Email {
		conflictEmail = *input.Email
	}
	if conflictIdentifier != "" || conflictEmail != "" {
		conflicts, err := s.repo.CountConflicts(ctx, conflictIdentifier, conflictEmail, user.ID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "checking account conflicts")
		}
		if conflicts > 0 {
			return nil, errors.New(errors.CodeConflict, "identifier or email already in use")
		}
	}

	if input.Nickname != nil {
		user.Nickname = *input.Nickname
		user.Identifier = *input.Identifier
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Permission != nil {
		user.Permission = *input.Permission
	}
	if input.Password != nil {
		hash, err := security.HashPassword(*input.Password, s.passwords)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "hashing password")
		}
		user.Password = hash
	}

	if err := s.repo.Save(ctx, user); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating account")
	}

	view := NewView(*user)
	return &view, nil
}

// Delete tombstones a live account. It reports whether the caller removed
// their own account so the handler can end the session too.
func (s *Service) Delete(ctx context.Context, identifier, actorNickname string) (bool, error) {
	target := strings.ToLower(strings.TrimSpace(identifier))
	user, err := s.findLive(ctx, target)
	if err != nil {
		return false, err
	}

	if err := s.repo.SoftDelete(ctx, user, s.now()); err != nil {
		return false, errors.Wrap(errors.CodeInternal, err, "deleting account")
	}

	self := target == strings.ToLower(strings.TrimSpace(actorNickname))
	return self, nil
}

// VerifyCredentials authenticates an email/password pair for the login flow.
func (s *Service) VerifyCredentials(ctx context.Context, email, password string) (*models.AdminUser, error) {
	user, err := s.repo.FindLiveByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "no account for email")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up account")
	}

	match, err := security.VerifyPassword(password, user.Password)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "verifying password")
	}
	if !match {
		return nil, errors.New(errors.CodeWrongPassword, "password mismatch")
	}
	return user, nil
}

func (s *Service) findLive(ctx context.Context, identifier string) (*models.AdminUser, error) {
	user, err := s.repo.FindLiveByIdentifier(ctx, identifier)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "account not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up account")
	}
	return user, nil
}
