package coupons

import (
	"context"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists coupons.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scope(ctx context.Context, includeDeleted bool) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&models.Coupon{})
	if includeDeleted {
		scope = scope.Unscoped()
	}
	return scope
}

func (r *Repository) Create(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Create(coupon).Error
}

// FindByID returns the coupon row, honoring soft-delete visibility.
func (r *Repository) FindByID(ctx context.Context, id string, includeDeleted bool) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.scope(ctx, includeDeleted).Where("id = ?", id).First(&coupon).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// FindLiveByID returns the non-deleted coupon with the id.
func (r *Repository) FindLiveByID(ctx context.Context, id string) (*models.Coupon, error) {
	return r.FindByID(ctx, id, false)
}

// CodeInUse reports whether a live coupon already claims the code.
func (r *Repository) CodeInUse(ctx context.Context, code, excludeID string) (bool, error) {
	scope := r.scope(ctx, false).Where("code = ?", code)
	if excludeID != "" {
		scope = scope.Where("id <> ?", excludeID)
	}
	var count int64
	if err := scope.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List pages through coupons, deleted rows included; only privileged roles
// read coupons at all.
func (r *Repository) List(ctx context.Context, q listing.Query) (*listing.Page[models.Coupon], error) {
	scope := r.scope(ctx, true).Order("created_at ASC")
	if q.Search != "" {
		scope = scope.Where("LOWER(name) LIKE ?", "%"+listing.SearchTerm(q.Search)+"%")
	}
	return listing.Run[models.Coupon](ctx, scope, q)
}

func (r *Repository) Save(ctx context.Context, coupon *models.Coupon) error {
	return r.db.WithContext(ctx).Save(coupon).Error
}

// SoftDelete tombstones the code and name, then marks the row deleted.
func (r *Repository) SoftDelete(ctx context.Context, coupon *models.Coupon, now time.Time) error {
	tombstone := models.Tombstone(now)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Coupon{}).
			Where("id = ?", coupon.ID).
			Updates(map[string]any{
				"code": tombstone,
				"name": tombstone,
			}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Coupon{}, "id = ?", coupon.ID).Error
	})
}
