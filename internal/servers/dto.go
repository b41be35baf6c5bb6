package servers

import (
	"strings"
	"time"

	"github.com/gamestore/admin-backend/pkg/db/models"
)

// CreateRequest is the body for registering a game server.
type CreateRequest struct {
	Name        string `json:"name" validate:"required,min=4,max=30"`
	Description string `json:"description" validate:"required,min=4,max=150"`
}

// CreateInput is the cast form of CreateRequest.
type CreateInput struct {
	Identifier  string
	Name        string
	Description string
}

func (r CreateRequest) ToInput() CreateInput {
	name := strings.TrimSpace(r.Name)
	return CreateInput{
		Identifier:  strings.ToLower(name),
		Name:        name,
		Description: strings.TrimSpace(r.Description),
	}
}

// UpdateRequest is the partial-update body.
type UpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=4,max=30"`
	Description *string `json:"description" validate:"omitempty,min=4,max=150"`
}

func (r UpdateRequest) Empty() bool {
	return r.Name == nil && r.Description == nil
}

// UpdateInput is the cast form of UpdateRequest.
type UpdateInput struct {
	Name        *string
	Identifier  *string
	Description *string
}

func (r UpdateRequest) ToInput() UpdateInput {
	var input UpdateInput
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		identifier := strings.ToLower(name)
		input.Name = &name
		input.Identifier = &identifier
	}
	if r.Description != nil {
		description := strings.TrimSpace(*r.Description)
		input.Description = &description
	}
	return input
}

// View is the server shape returned to clients. DeletedAt only ever carries a
// value on privileged reads, since unprivileged ones never see deleted rows.
type View struct {
	ID          string     `json:"id"`
	Identifier  string     `json:"identifier"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at,omitempty"`
}

func NewView(server models.Server) View {
	view := View{
		ID:          server.ID,
		Identifier:  server.Identifier,
		Name:        server.Name,
		Description: server.Description,
		CreatedAt:   server.CreatedAt,
		UpdatedAt:   server.UpdatedAt,
	}
	if server.DeletedAt.Valid {
		deletedAt := server.DeletedAt.Time
		view.DeletedAt = &deletedAt
	}
	return view
}

func NewViews(rows []models.Server) []View {
	views := make([]View, 0, len(rows))
	for _, row := range rows {
		views = append(views, NewView(row))
	}
	return views
}

// ListResult is the list envelope payload for servers.
type ListResult struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalServers int64  `json:"total_servers"`
	Limit        int    `json:"limit"`
	Servers      []View `json:"servers"`
}
