package accounts

import (
	"strings"
	"time"

	"github.com/gamestore/admin-backend/pkg/db/models"
	"github.com/gamestore/admin-backend/pkg/enums"
)

// CreateRequest is the body for provisioning a new admin account. The role is
// always admin and the password is generated server-side.
type CreateRequest struct {
	Nickname string `json:"nickname" validate:"required,min=4,max=20,username"`
	Email    string `json:"email" validate:"required,email,max=100"`
}

// CreateInput is the cast form of CreateRequest.
type CreateInput struct {
	Identifier string
	Nickname   string
	Email      string
}

// ToInput trims and normalizes the request. Callers must use this, not the
// raw fields.
func (r CreateRequest) ToInput() CreateInput {
	nickname := strings.TrimSpace(r.Nickname)
	return CreateInput{
		Identifier: strings.ToLower(nickname),
		Nickname:   nickname,
		Email:      strings.ToLower(strings.TrimSpace(r.Email)),
	}
}

// UpdateRequest is the partial-update body. Absent fields stay untouched.
type UpdateRequest struct {
	Nickname   *string `json:"nickname" validate:"omitempty,min=4,max=20,username"`
	Email      *string `json:"email" validate:"omitempty,email,max=100"`
	Password   *string `json:"password" validate:"omitempty,min=6,max=20"`
	Permission *string `json:"permission" validate:"omitempty,oneof=admin manager"`
}

// UpdateInput is the cast form of UpdateRequest.
type UpdateInput struct {
	Nickname   *string
	Identifier *string
	Email      *string
	Password   *string
	Permission *enums.Role
}

// Empty reports whether no mutable field was supplied.
func (r UpdateRequest) Empty() bool {
	return r.Nickname == nil && r.Email == nil && r.Password == nil && r.Permission == nil
}

func (r UpdateRequest) ToInput() UpdateInput {
	input := UpdateInput{Password: r.Password}
	if r.Nickname != nil {
		nickname := strings.TrimSpace(*r.Nickname)
		identifier := strings.ToLower(nickname)
		input.Nickname = &nickname
		input.Identifier = &identifier
	}
	if r.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*r.Email))
		input.Email = &email
	}
	if r.Permission != nil {
		role := enums.Role(*r.Permission)
		input.Permission = &role
	}
	return input
}

// View is the account shape returned to managers. The password hash never
// leaves the service layer.
type View struct {
	ID         string     `json:"id"`
	Identifier string     `json:"identifier"`
	Nickname   string     `json:"nickname"`
	Email      string     `json:"email"`
	Permission enums.Role `json:"permission"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`
}

// NewView maps a row to its API shape.
func NewView(user models.AdminUser) View {
	view := View{
		ID:         user.ID,
		Identifier: user.Identifier,
		Nickname:   user.Nickname,
		Email:      user.Email,
		Permission: user.Permission,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
	if user.DeletedAt.Valid {
		deletedAt := user.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

// NewViews maps a page of rows.
func NewViews(users []models.AdminUser) []View {
	views := make([]View, 0, len(users))
	for _, user := range users {
		views = append(views, NewView(user))
	}
	return views
}

// ListResult is the list envelope payload for accounts.
type ListResult struct {
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
	TotalUsers int64  `json:"total_users"`
	Limit      int    `json:"limit"`
	Users      []View `json:"users"`
}

// CreatedResult carries the one-time generated password back to the manager.
type CreatedResult struct {
	Message  string `json:"message"`
	User     View   `json:"user"`
	Password string `json:"password"`
}
