package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/accounts"
	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type accountsService interface {
	List(ctx context.Context, q listing.Query) (*accounts.ListResult, error)
	GetByIdentifier(ctx context.Context, identifier string) (*accounts.View, error)
	GetSelf(ctx context.Context, nickname string) (*accounts.View, error)
	Create(ctx context.Context, input accounts.CreateInput) (*accounts.View, string, error)
	Update(ctx context.Context, identifier string, input accounts.UpdateInput) (*accounts.View, error)
	Delete(ctx context.Context, identifier, actorNickname string) (bool, error)
}

type sessionEnder interface {
	Logout(ctx context.Context, accessID string) error
}

// ListUsers pages through every account.
func ListUsers(svc accountsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.List(ctx, listing.ParseQuery(r.URL.Query()))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, result)
	}
}

// GetSelfUser returns the caller's own account.
func GetSelfUser(svc accountsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.GetSelf(ctx, middleware.ActorNickname(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, view)
	}
}

// GetUser returns one account by identifier.
func GetUser(svc accountsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.GetByIdentifier(ctx, chi.URLParam(r, "identifier"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, view)
	}
}

// CreateUser provisions an admin account and returns the generated password
// once.
func CreateUser(svc accountsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req accounts.CreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, password, err := svc.Create(ctx, req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, accounts.CreatedResult{
			Message:  responses.MsgCreated,
			User:     *view,
			Password: password,
		})
	}
}

// UpdateUser applies a partial update to an account.
func UpdateUser(svc accountsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req accounts.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.Empty() {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeInvalidRequest, "empty update").
				WithDetails([]string{"at least one field is required"}))
			return
		}

		view, err := svc.Update(ctx, chi.URLParam(r, "identifier"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": responses.MsgUpdated,
			"user":    view,
		})
	}
}

// DeleteUser tombstones an account. When the caller removes their own
// account the session ends with it.
func DeleteUser(svc accountsService, sessions sessionEnder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		self, err := svc.Delete(ctx, chi.URLParam(r, "identifier"), middleware.ActorNickname(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if self {
			if err := sessions.Logout(ctx, middleware.ActorAccessID(ctx)); err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			clearSessionCookie(w)
		}

		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
