package products

import (
	"context"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists products and their line items.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx rebinds the repository to a transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// visibleScope returns the rows the caller may read: privileged callers see
// everything including deleted rows, everyone else only live active products.
func (r *Repository) visibleScope(ctx context.Context, privileged bool) *gorm.DB {
	scope := r.db.WithContext(ctx).Model(&models.Product{})
	if privileged {
		return scope.Unscoped()
	}
	return scope.Where("active = ?", true)
}

func (r *Repository) withChildren(scope *gorm.DB, privileged bool) *gorm.DB {
	if privileged {
		return scope.
			Preload("Benefits", func(db *gorm.DB) *gorm.DB {
				return db.Unscoped().Order("created_at ASC")
			}).
			Preload("Commands", func(db *gorm.DB) *gorm.DB {
				return db.Unscoped().Order("created_at ASC")
			})
	}
	return scope.Preload("Benefits", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	})
}

// FindVisibleByID returns one product with its line items, honoring the
// caller's visibility.
func (r *Repository) FindVisibleByID(ctx context.Context, id string, privileged bool) (*models.Product, error) {
	var product models.Product
	scope := r.withChildren(r.visibleScope(ctx, privileged), privileged)
	if err := scope.Where("products.id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// FindLiveByID returns a non-deleted product without line items, for writes.
func (r *Repository) FindLiveByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// List pages through products with their line items.
func (r *Repository) List(ctx context.Context, q listing.Query, privileged bool) (*listing.Page[models.Product], error) {
	scope := r.visibleScope(ctx, privileged).Order("created_at ASC")
	if q.Search != "" {
		scope = scope.Where("LOWER(name) LIKE ?", "%"+listing.SearchTerm(q.Search)+"%")
	}
	scope = r.withChildren(scope, privileged)
	return listing.Run[models.Product](ctx, scope, q)
}

// Create inserts the product row together with any line items already set on
// it. Callers wrap this in a transaction when children are present.
func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *Repository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Omit("Benefits", "Commands", "Server").Save(product).Error
}

// SoftDeleteTree tombstones the product name and soft deletes the product and
// all of its live line items atomically.
func (r *Repository) SoftDeleteTree(ctx context.Context, product *models.Product, now time.Time) error {
	tombstone := models.Tombstone(now)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Product{}).
			Where("id = ?", product.ID).
			Update("name", tombstone).Error
		if err != nil {
			return err
		}
		if err := tx.Delete(&models.Product{}, "id = ?", product.ID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.ProductBenefit{}, "product_id = ?", product.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&models.ProductCommand{}, "product_id = ?", product.ID).Error
	})
}

// FindLiveBenefit returns a non-deleted benefit belonging to the product.
func (r *Repository) FindLiveBenefit(ctx context.Context, productID, benefitID string) (*models.ProductBenefit, error) {
	var benefit models.ProductBenefit
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", benefitID, productID).
		First(&benefit).Error
	if err != nil {
		return nil, err
	}
	return &benefit, nil
}

func (r *Repository) CreateBenefit(ctx context.Context, benefit *models.ProductBenefit) error {
	return r.db.WithContext(ctx).Create(benefit).Error
}

func (r *Repository) SaveBenefit(ctx context.Context, benefit *models.ProductBenefit) error {
	return r.db.WithContext(ctx).Save(benefit).Error
}

func (r *Repository) SoftDeleteBenefit(ctx context.Context, benefit *models.ProductBenefit) error {
	return r.db.WithContext(ctx).Delete(&models.ProductBenefit{}, "id = ?", benefit.ID).Error
}

// FindLiveCommand returns a non-deleted command belonging to the product.
func (r *Repository) FindLiveCommand(ctx context.Context, productID, commandID string) (*models.ProductCommand, error) {
	var command models.ProductCommand
	err := r.db.WithContext(ctx).
		Where("id = ? AND product_id = ?", commandID, productID).
		First(&command).Error
	if err != nil {
		return nil, err
	}
	return &command, nil
}

func (r *Repository) CreateCommand(ctx context.Context, command *models.ProductCommand) error {
	return r.db.WithContext(ctx).Create(command).Error
}

func (r *Repository) SaveCommand(ctx context.Context, command *models.ProductCommand) error {
	return r.db.WithContext(ctx).Save(command).Error
}

func (r *Repository) SoftDeleteCommand(ctx context.Context, command *models.ProductCommand) error {
	return r.db.WithContext(ctx).Delete(&models.ProductCommand{}, "id = ?", command.ID).Error
}
