package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/products"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type commandsService interface {
	CreateCommand(ctx context.Context, productID string, input products.CommandInput) (*products.CommandView, error)
	UpdateCommand(ctx context.Context, productID, commandID string, input products.CommandInput) (*products.CommandView, error)
	DeleteCommand(ctx context.Context, productID, commandID string) error
}

// CreateCommand adds a command line item to a product.
func CreateCommand(svc commandsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.CommandRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.CreateCommand(ctx, chi.URLParam(r, "product_id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": responses.MsgCreated,
			"command": view,
		})
	}
}

// UpdateCommand replaces a command's text.
func UpdateCommand(svc commandsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.CommandRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateCommand(ctx, chi.URLParam(r, "product_id"), chi.URLParam(r, "command_id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": responses.MsgUpdated,
			"command": view,
		})
	}
}

// DeleteCommand soft deletes a command.
func DeleteCommand(svc commandsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteCommand(ctx, chi.URLParam(r, "product_id"), chi.URLParam(r, "command_id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
