package middleware

import (
	"context"

	"github.com/gamestore/admin-backend/pkg/enums"
)

type ctxKey int

const (
	ctxKeyAuthenticated ctxKey = iota
	ctxKeyNickname
	ctxKeyRole
	ctxKeyAccessID
	ctxKeyRequestID
)

// WithSession marks the request context as authenticated for the given actor.
func WithSession(ctx context.Context, nickname string, role enums.Role, accessID string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyAuthenticated, true)
	ctx = context.WithValue(ctx, ctxKeyNickname, nickname)
	ctx = context.WithValue(ctx, ctxKeyRole, role)
	return context.WithValue(ctx, ctxKeyAccessID, accessID)
}

// WithAnonymous marks the request context as unauthenticated.
func WithAnonymous(ctx context.Context) context.Context {
	return context.WithValue(ctx, ctxKeyAuthenticated, false)
}

// IsAuthenticated reports whether the session gate verified a token.
func IsAuthenticated(ctx context.Context) bool {
	authed, _ := ctx.Value(ctxKeyAuthenticated).(bool)
	return authed
}

// ActorNickname returns the authenticated actor's nickname, or "".
func ActorNickname(ctx context.Context) string {
	nickname, _ := ctx.Value(ctxKeyNickname).(string)
	return nickname
}

// ActorRole returns the authenticated actor's role, or "".
func ActorRole(ctx context.Context) enums.Role {
	role, _ := ctx.Value(ctxKeyRole).(enums.Role)
	return role
}

// ActorAccessID returns the session token id for the request, or "".
func ActorAccessID(ctx context.Context) string {
	accessID, _ := ctx.Value(ctxKeyAccessID).(string)
	return accessID
}

// WithRequestID stores the request id on the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ctxKeyRequestID, requestID)
}

// RequestIDFromContext returns the request id, or "".
func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(ctxKeyRequestID).(string)
	return requestID
}
