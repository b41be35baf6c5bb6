package auth

import (
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
)

// SessionPayload captures the data available when minting a session token.
type SessionPayload struct {
	Nickname   string
	Permission enums.Role
	JTI        string
}

// SessionClaims represents the typed JWT carried in the session cookie.
type SessionClaims struct {
	Nickname   string     `json:"nickname"`
	Permission enums.Role `json:"permission"`
	jwt.RegisteredClaims
}
