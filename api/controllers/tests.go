package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/enums"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type testTokenIssuer interface {
	IssueTestToken(ctx context.Context, role enums.Role) (string, error)
}

// TestToken mints a session cookie for any role, for integration testing.
// Production deployments refuse it outright.
func TestToken(svc testTokenIssuer, jwt config.JWTConfig, isProd bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if isProd {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeNoPermission, "test tokens disabled in production"))
			return
		}

		role, err := enums.ParseRole(chi.URLParam(r, "level"))
		if err != nil {
			// Unknown levels answer 404 but keep the invalid-data message.
			responses.WriteJSON(w, http.StatusNotFound, map[string]string{
				"error": "Invalid request data",
			})
			return
		}

		token, err := svc.IssueTestToken(ctx, role)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setSessionCookie(w, jwt, token, false)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}
