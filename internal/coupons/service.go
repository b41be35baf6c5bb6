package coupons

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository interface {
	Create(ctx context.Context, coupon *models.Coupon) error
	FindByID(ctx context.Context, id string, includeDeleted bool) (*models.Coupon, error)
	FindLiveByID(ctx context.Context, id string) (*models.Coupon, error)
	CodeInUse(ctx context.Context, code, excludeID string) (bool, error)
	List(ctx context.Context, q listing.Query) (*listing.Page[models.Coupon], error)
	Save(ctx context.Context, coupon *models.Coupon) error
	SoftDelete(ctx context.Context, coupon *models.Coupon, now time.Time) error
}

// Service implements the coupon operations.
type Service struct {
	repo repository
	now  func() time.Time
}

func NewService(repo repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List pages through coupons, deleted rows included.
func (s *Service) List(ctx context.Context, q listing.Query) (*ListResult, error) {
	page, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing coupons")
	}
	return &ListResult{
		Page:         page.Page,
		TotalPages:   page.TotalPages,
		TotalCoupons: page.Total,
		Limit:        page.Limit,
		Coupons:      NewViews(page.Items),
	}, nil
}

// Get returns one coupon by id, deleted rows included; every coupon reader
// holds a privileged role.
func (s *Service) Get(ctx context.Context, id string) (*View, error) {
	coupon, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "coupon not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up coupon")
	}
	view := NewView(*coupon)
	return &view, nil
}

// Create inserts a coupon whose window is valid and still ahead of now.
// The window-start check applies only here; editing a running coupon stays
// possible through Update.
func (s *Service) Create(ctx context.Context, input CreateInput) (*View, error) {
	now := s.now()
	details := []string{}
	if input.StartsAt.Before(now) {
		details = append(details, "starts_at must not be in the past")
	}
	if input.EndsAt.Before(now) {
		details = append(details, "ends_at must not be in the past")
	}
	if !input.EndsAt.After(input.StartsAt) {
		details = append(details, "ends_at must be after starts_at")
	}
	if len(details) > 0 {
		return nil, errors.New(errors.CodeInvalidRequest, "invalid coupon window").WithDetails(details)
	}

	inUse, err := s.repo.CodeInUse(ctx, input.Code, "")
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "checking coupon code")
	}
	if inUse {
		return nil, errors.New(errors.CodeConflict, "coupon code already in use")
	}

	coupon := models.Coupon{
		ID:          uuid.NewString(),
		Code:        input.Code,
		Name:        input.Name,
		Description: input.Description,
		Discount:    input.Discount,
		StartsAt:    input.StartsAt,
		EndsAt:      input.EndsAt,
	}
	if err := s.repo.Create(ctx, &coupon); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating coupon")
	}

	view := NewView(coupon)
	return &view, nil
}

// Update applies a partial update to a live coupon. The merged window must
// still satisfy ends_at > starts_at.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*View, error) {
	coupon, err := s.findLive(ctx, id)
	if err != nil {
		return nil, err
	}

	startsAt := coupon.StartsAt
	if input.StartsAt != nil {
		startsAt = *input.StartsAt
	}
	endsAt := coupon.EndsAt
	if input.EndsAt != nil {
		endsAt = *input.EndsAt
	}
	if !endsAt.After(startsAt) {
		return nil, errors.New(errors.CodeInvalidRequest, "invalid coupon window").
			WithDetails([]string{"ends_at must be after starts_at"})
	}

	if input.Code != nil && *input.Code != coupon.Code {
		inUse, err := s.repo.CodeInUse(ctx, *input.Code, coupon.ID)
		if err != nil {
			return nil, errors.Wrap(errors.CodeInternal, err, "checking coupon code")
		}
		if inUse {
			return nil, errors.New(errors.CodeConflict, "coupon code already in use")
		}
		coupon.Code = *input.Code
	}

	if input.Name != nil {
		coupon.Name = *input.Name
	}
	if input.Description != nil {
		coupon.Description = *input.Description
	}
	if input.Discount != nil {
		coupon.Discount = *input.Discount
	}
	coupon.StartsAt = startsAt
	coupon.EndsAt = endsAt

	if err := s.repo.Save(ctx, coupon); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "updating coupon")
	}

	view := NewView(*coupon)
	return &view, nil
}

// Delete tombstones a live coupon.
func (s *Service) Delete(ctx context.Context, id string) error {
	coupon, err := s.findLive(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, coupon, s.now()); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting coupon")
	}
	return nil
}

func (s *Service) findLive(ctx context.Context, id string) (*models.Coupon, error) {
	coupon, err := s.repo.FindLiveByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "coupon not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up coupon")
	}
	return coupon, nil
}
