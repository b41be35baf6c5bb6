package middleware

import (
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
)

// RequireAuth rejects anonymous requests.
func RequireAuth(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !IsAuthenticated(r.Context()) {
				responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeAuthRequired, "no session on request"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole rejects requests whose actor does not hold one of the allowed
// roles. Anonymous requests fail the authentication check first.
func RequireRole(logg *logger.Logger, allowed ...enums.Role) func(http.Handler) http.Handler {
	allowedSet := map[enums.Role]struct{}{}
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !IsAuthenticated(ctx) {
				responses.WriteError(ctx, logg, w, errors.New(errors.CodeAuthRequired, "no session on request"))
				return
			}
			if _, ok := allowedSet[ActorRole(ctx)]; !ok {
				responses.WriteError(ctx, logg, w, errors.New(errors.CodeNoPermission, "role not allowed"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAnonymous rejects requests that already carry a live session.
func RequireAnonymous(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsAuthenticated(r.Context()) {
				responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeNeedLogout, "session already active"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
