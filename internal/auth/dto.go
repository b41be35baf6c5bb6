package auth

import (
	"strings"

	"github.com/gamestore/admin-backend/pkg/enums"
)

// LoginRequest is the credential body for POST /admin/auth.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6,max=20"`
}

// LoginInput is the cast form of LoginRequest.
type LoginInput struct {
	Email    string
	Password string
}

func (r LoginRequest) ToInput() LoginInput {
	return LoginInput{
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Password: r.Password,
	}
}

// SessionView reports the caller's own session identity.
type SessionView struct {
	Nickname   string     `json:"nickname"`
	Permission enums.Role `json:"permission"`
}
