package coupons

import (
	"strings"
	"time"

	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// CreateRequest is the body for creating a coupon. The discount is a
// fraction of the purchase total.
type CreateRequest struct {
	Code        string          `json:"code" validate:"required,min=4,max=20,username"`
	Name        string          `json:"name" validate:"required,min=4,max=30"`
	Description string          `json:"description" validate:"required,min=4,max=150"`
	Discount    decimal.Decimal `json:"discount" validate:"gte=0,lte=1"`
	StartsAt    time.Time       `json:"starts_at" validate:"required"`
	EndsAt      time.Time       `json:"ends_at" validate:"required"`
}

// CreateInput is the cast form of CreateRequest.
type CreateInput struct {
	Code        string
	Name        string
	Description string
	Discount    decimal.Decimal
	StartsAt    time.Time
	EndsAt      time.Time
}

func (r CreateRequest) ToInput() CreateInput {
	return CreateInput{
		Code:        strings.ToLower(strings.TrimSpace(r.Code)),
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		Discount:    r.Discount,
		StartsAt:    r.StartsAt,
		EndsAt:      r.EndsAt,
	}
}

// UpdateRequest is the partial-update body for a coupon.
type UpdateRequest struct {
	Code        *string          `json:"code" validate:"omitempty,min=4,max=20,username"`
	Name        *string          `json:"name" validate:"omitempty,min=4,max=30"`
	Description *string          `json:"description" validate:"omitempty,min=4,max=150"`
	Discount    *decimal.Decimal `json:"discount" validate:"omitempty,gte=0,lte=1"`
	StartsAt    *time.Time       `json:"starts_at"`
	EndsAt      *time.Time       `json:"ends_at"`
}

func (r UpdateRequest) Empty() bool {
	return r.Code == nil && r.Name == nil && r.Description == nil &&
		r.Discount == nil && r.StartsAt == nil && r.EndsAt == nil
}

// UpdateInput is the cast form of UpdateRequest.
type UpdateInput struct {
	Code        *string
	Name        *string
	Description *string
	Discount    *decimal.Decimal
	StartsAt    *time.Time
	EndsAt      *time.Time
}

func (r UpdateRequest) ToInput() UpdateInput {
	input := UpdateInput{
		Discount: r.Discount,
		StartsAt: r.StartsAt,
		EndsAt:   r.EndsAt,
	}
	if r.Code != nil {
		code := strings.ToLower(strings.TrimSpace(*r.Code))
		input.Code = &code
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		input.Name = &name
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		input.Description = &description
	}
	return input
}

// View is the coupon shape returned to admins and managers.
type View struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Discount    decimal.Decimal `json:"discount"`
	StartsAt    time.Time       `json:"starts_at"`
	EndsAt      time.Time       `json:"ends_at"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

func NewView(coupon models.Coupon) View {
	view := View{
		ID:          coupon.ID,
		Code:        coupon.Code,
		Name:        coupon.Name,
		Description: coupon.Description,
		Discount:    coupon.Discount,
		StartsAt:    coupon.StartsAt,
		EndsAt:      coupon.EndsAt,
		CreatedAt:   coupon.CreatedAt,
		UpdatedAt:   coupon.UpdatedAt,
	}
	if coupon.DeletedAt.Valid {
		deletedAt := coupon.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

func NewViews(rows []models.Coupon) []View {
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row))
	}
	return views
}

// ListResult is the list envelope payload for coupons.
type ListResult struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalCoupons int64  `json:"total_coupons"`
	Limit        int    `json:"limit"`
	Coupons      []View `json:"coupons"`
}
