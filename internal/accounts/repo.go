package accounts

import (
	"context"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists admin accounts.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scope(ctx context.Context, includeDeleted bool) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&models.AdminUser{})
	if includeDeleted {
		scope = scope.Unscoped()
	}
	return scope
}

// Create inserts a new account row.
func (r *Repository) Create(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindLiveByIdentifier returns the non-deleted account with the identifier.
func (r *Repository) FindLiveByIdentifier(ctx context.Context, identifier string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.scope(ctx, false).Where("identifier = ?", identifier).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindLiveByEmail returns the non-deleted account with the email.
func (r *Repository) FindLiveByEmail(ctx context.Context, email string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.scope(ctx, false).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountConflicts reports live rows already holding the identifier or email,
// excluding the row being updated.
func (r *Repository) CountConflicts(ctx context.Context, identifier, email, excludeID string) (int64, error) {
	scope := r.scope(ctx, false)
	switch {
	case identifier != "" && email != "":
		scope = scope.Where("identifier = ? OR email = ?", identifier, email)
	case identifier != "":
		scope = scope.Where("identifier = ?", identifier)
	case email != "":
		scope = scope.Where("email = ?", email)
	default:
		return 0, nil
	}
	if excludeID != "" {
		scope = scope.Where("id <> ?", excludeID)
	}

	var count int64
	if err := scope.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List pages through accounts, optionally including soft-deleted rows.
func (r *Repository) List(ctx context.Context, q listing.Query, includeDeleted bool) (*listing.Page[models.AdminUser], error) {
	scope := r.scope(ctx, includeDeleted).Order("created_at ASC")
	if q.Search != "" {
		scope = scope.Where("LOWER(nickname) LIKE ?", "%"+listing.SearchTerm(q.Search)+"%")
	}
	return listing.Run[models.AdminUser](ctx, scope, q)
}

// Save writes the full row back.
func (r *Repository) Save(ctx context.Context, user *models.AdminUser) error {
	return r.db.WithContext(ctx).Save(user).Error
}

// SoftDelete rewrites the unique columns with the tombstone value and marks
// the row deleted, freeing identifier and email for reuse.
func (r *Repository) SoftDelete(ctx context.Context, user *models.AdminUser, now time.Time) error {
	tombstone := models.Tombstone(now)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.AdminUser{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"identifier": tombstone,
				"nickname":   tombstone,
				"email":      tombstone,
			}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.AdminUser{}, "id = ?", user.ID).Error
	})
}
