package products

import (
	"strings"
	"time"

	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/shopspring/decimal"
)

// BenefitItemRequest is one benefit line item inside a product create body.
type BenefitItemRequest struct {
	Name        string `json:"name" validate:"required,min=4,max=30"`
	Description string `json:"description" validate:"required,min=4,max=60"`
}

// CommandItemRequest is one command line item inside a product create body.
type CommandItemRequest struct {
	Name    string `json:"name" validate:"required,min=4,max=30"`
	Command string `json:"command" validate:"required,min=4,max=60"`
}

// CreateRequest is the body for creating a product together with its line
// items. Empty line item arrays are valid and create no child rows.
type CreateRequest struct {
	Name        string               `json:"name" validate:"required,min=4,max=30"`
	Description string               `json:"description" validate:"required,min=4,max=150"`
	ImageURL    *string              `json:"image_url" validate:"omitempty,url,max=512"`
	ServerID    string               `json:"server_id" validate:"required"`
	Price       decimal.Decimal      `json:"price" validate:"gte=1"`
	Active      *bool                `json:"active"`
	Benefits    []BenefitItemRequest `json:"benefits" validate:"omitempty,dive"`
	Commands    []CommandItemRequest `json:"commands" validate:"omitempty,dive"`
}

// CreateInput is the cast form of CreateRequest.
type CreateInput struct {
	Name        string
	Description string
	ImageURL    string
	ServerID    string
	Price       decimal.Decimal
	Active      bool
	Benefits    []BenefitInput
	Commands    []CommandInput
}

type BenefitInput struct {
	Name        string
	Description string
}

type CommandInput struct {
	Name    string
	Command string
}

func (r CreateRequest) ToInput() CreateInput {
	input := CreateInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
		ServerID:    strings.TrimSpace(r.ServerID),
		Price:       r.Price,
	}
	if r.ImageURL != nil {
		input.ImageURL = strings.TrimSpace(*r.ImageURL)
	}
	if r.Active != nil {
		input.Active = *r.Active
	}
	for _, benefit := range r.Benefits {
		input.Benefits = append(input.Benefits, BenefitInput{
			Name:        strings.TrimSpace(benefit.Name),
			Description: strings.TrimSpace(benefit.Description),
		})
	}
	for _, command := range r.Commands {
		input.Commands = append(input.Commands, CommandInput{
			Name:    strings.TrimSpace(command.Name),
			Command: strings.TrimSpace(command.Command),
		})
	}
	return input
}

// UpdateRequest is the partial-update body for a product. Line items have
// their own endpoints and are not touched here.
type UpdateRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=4,max=30"`
	Description *string          `json:"description" validate:"omitempty,min=4,max=150"`
	ImageURL    *string          `json:"image_url" validate:"omitempty,url,max=512"`
	ServerID    *string          `json:"server_id" validate:"omitempty"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=1"`
	Active      *bool            `json:"active"`
}

func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.ImageURL == nil &&
		r.ServerID == nil && r.Price == nil && r.Active == nil
}

// UpdateInput is the cast form of UpdateRequest.
type UpdateInput struct {
	Name        *string
	Description *string
	ImageURL    *string
	ServerID    *string
	Price       *decimal.Decimal
	Active      *bool
}

func (r UpdateRequest) ToInput() UpdateInput {
	input := UpdateInput{Price: r.Price, Active: r.Active}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		input.Name = &name
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		input.Description = &description
	}
	if r.ImageURL != nil {
		imageURL := strings.TrimSpace(*r.ImageURL)
		input.ImageURL = &imageURL
	}
	if r.ServerID != nil {
		serverID := strings.TrimSpace(*r.ServerID)
		input.ServerID = &serverID
	}
	return input
}

// BenefitRequest is the body for creating or updating one benefit.
type BenefitRequest struct {
	Name        string `json:"name" validate:"required,min=4,max=30"`
	Description string `json:"description" validate:"required,min=4,max=60"`
}

func (r BenefitRequest) ToInput() BenefitInput {
	return BenefitInput{
		Name:        strings.TrimSpace(r.Name),
		Description: strings.TrimSpace(r.Description),
	}
}

// CommandRequest is the body for creating or updating one command.
type CommandRequest struct {
	Name    string `json:"name" validate:"required,min=4,max=30"`
	Command string `json:"command" validate:"required,min=4,max=60"`
}

func (r CommandRequest) ToInput() CommandInput {
	return CommandInput{
		Name:    strings.TrimSpace(r.Name),
		Command: strings.TrimSpace(r.Command),
	}
}

// BenefitView is the benefit shape shown to every caller.
type BenefitView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

// CommandView is the command shape; commands carry operational detail and
// only appear on privileged reads.
type CommandView struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Command   string     `json:"command"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// View is the product shape. server_id, active, deleted_at, and the command
// line items are privileged-only fields.
type View struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	ImageURL    string          `json:"image_url,omitempty"`
	ServerID    string          `json:"server_id,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active,omitempty"`
	Benefits    []BenefitView   `json:"benefits"`
	Commands    []CommandView   `json:"commands,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	DeletedAt   *time.Time      `json:"deleted_at,omitempty"`
}

func NewBenefitView(row models.ProductBenefit) BenefitView {
	view := BenefitView{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
	if row.DeletedAt.Valid {
		deletedAt := row.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

func NewCommandView(row models.ProductCommand) CommandView {
	view := CommandView{
		ID:        row.ID,
		Name:      row.Name,
		Command:   row.Command,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.DeletedAt.Valid {
		deletedAt := row.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

// NewView serializes a product for the caller's privilege level.
func NewView(product models.Product, privileged bool) View {
	view := View{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		ImageURL:    product.ImageURL,
		Price:       product.Price,
		Benefits:    []BenefitView{},
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
	for _, benefit := range product.Benefits {
		view.Benefits = append(view.Benefits, NewBenefitView(benefit))
	}

	if !privileged {
		return view
	}

	view.ServerID = product.ServerID
	active := product.Active
	view.Active = &active
	view.Commands = []CommandView{}
	for _, command := range product.Commands {
		view.Commands = append(view.Commands, NewCommandView(command))
	}
	if product.DeletedAt.Valid {
		deletedAt := product.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

func NewViews(rows []models.Product, privileged bool) []View {
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row, privileged))
	}
	return views
}

// ListResult is the list envelope payload for products.
type ListResult struct {
	Page          int    `json:"page"`
	TotalPages    int    `json:"total_pages"`
	TotalProducts int64  `json:"total_products"`
	Limit         int    `json:"limit"`
	Products      []View `json:"products"`
}
