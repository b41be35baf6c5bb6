package servers

import (
	"context"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists game servers.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) scope(ctx context.Context, includeDeleted bool) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&models.Server{})
	if includeDeleted {
		scope = scope.Unscoped()
	}
	return scope
}

func (r *Repository) Create(ctx context.Context, server *models.Server) error {
	return r.db.WithContext(ctx).Create(server).Error
}

// FindByID returns the server row, honoring soft-delete visibility.
func (r *Repository) FindByID(ctx context.Context, id string, includeDeleted bool) (*models.Server, error) {
	var server models.Server
	err := r.scope(ctx, includeDeleted).Where("id = ?", id).First(&server).Error
	if err != nil {
		return nil, err
	}
	return &server, nil
}

// FindLiveByID returns the non-deleted server row.
func (r *Repository) FindLiveByID(ctx context.Context, id string) (*models.Server, error) {
	return r.FindByID(ctx, id, false)
}

// IdentifierInUse reports whether a live row already claims the identifier.
func (r *Repository) IdentifierInUse(ctx context.Context, identifier, excludeID string) (bool, error) {
	scope := r.scope(ctx, false).Where("identifier = ?", identifier)
	if excludeID != "" {
		scope = scope.Where("id <> ?", excludeID)
	}
	var count int64
	if err := scope.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List pages through servers, filtered by name when a search term is given.
func (r *Repository) List(ctx context.Context, q listing.Query, includeDeleted bool) (*listing.Page[models.Server], error) {
	scope := r.scope(ctx, includeDeleted).Order("created_at ASC")
	if q.Search != "" {
		scope = scope.Where("LOWER(name) LIKE ?", "%"+listing.SearchTerm(q.Search)+"%")
	}
	return listing.Run[models.Server](ctx, scope, q)
}

func (r *Repository) Save(ctx context.Context, server *models.Server) error {
	return r.db.WithContext(ctx).Save(server).Error
}

// SoftDelete tombstones the identifier and display text, then marks the row
// deleted so the identifier can be reused.
func (r *Repository) SoftDelete(ctx context.Context, server *models.Server, now time.Time) error {
	tombstone := models.Tombstone(now)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Server{}).
			Where("id = ?", server.ID).
			Updates(map[string]any{
				"identifier":  tombstone,
				"name":        tombstone,
				"description": tombstone,
			}).Error
		if err != nil {
			return err
		}
		return tx.Delete(&models.Server{}, "id = ?", server.ID).Error
	})
}
