package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/internal/servers"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type serversService interface {
	List(ctx context.Context, q listing.Query, privileged bool) (*servers.ListResult, error)
	Get(ctx context.Context, id string, privileged bool) (*servers.View, error)
	Create(ctx context.Context, input servers.CreateInput) (*servers.View, error)
	Update(ctx context.Context, id string, input servers.UpdateInput) (*servers.View, error)
	Delete(ctx context.Context, id string) error
}

// ListServers pages through servers; privileged callers also see deleted
// rows.
func ListServers(svc serversService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		result, err := svc.List(ctx, listing.ParseQuery(r.URL.Query()), middleware.ActorRole(ctx).Privileged())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, result)
	}
}

// GetServer returns one server by id.
func GetServer(svc serversService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Get(ctx, chi.URLParam(r, "id"), middleware.ActorRole(ctx).Privileged())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, view)
	}
}

// CreateServer registers a new game server.
func CreateServer(svc serversService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req servers.CreateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.Create(ctx, req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": responses.MsgCreated,
			"server":  view,
		})
	}
}

// UpdateServer applies a partial update to a server.
func UpdateServer(svc serversService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req servers.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.Empty() {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeInvalidRequest, "empty update").
				WithDetails([]string{"at least one field is required"}))
			return
		}

		view, err := svc.Update(ctx, chi.URLParam(r, "id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": responses.MsgUpdated,
			"server":  view,
		})
	}
}

// DeleteServer tombstones a server.
func DeleteServer(svc serversService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
