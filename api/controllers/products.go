package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/internal/products"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type productsService interface {
	List(ctx context.Context, q listing.Query, privileged bool) (*products.ListResult, error)
	Get(ctx context.Context, id string, privileged bool) (*products.View, error)
	Create(ctx context.Context, input products.CreateInput) (*products.View, error)
	Update(ctx context.Context, id string, input products.UpdateInput) (*products.View, error)
	Delete(ctx context.Context, id string) error
}

// ListProducts pages through products; unprivileged callers only see live
// active products with the public field set.
func ListProducts(svc productsService, logg *logger.Logger) http.HandlerFunc {
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

// GetProduct returns one product by id.
func GetProduct(svc productsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Get(ctx, chi.URLParam(r, "product_id"), middleware.ActorRole(ctx).Privileged())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, view)
	}
}

// CreateProduct inserts a product with its line items atomically.
func CreateProduct(svc productsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.CreateRequest
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
			"product": view,
		})
	}
}

// UpdateProduct applies a partial update to a product.
func UpdateProduct(svc productsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.UpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if req.Empty() {
			responses.WriteError(ctx, logg, w, errors.New(errors.CodeInvalidRequest, "empty update").
				WithDetails([]string{"at least one field is required"}))
			return
		}

		view, err := svc.Update(ctx, chi.URLParam(r, "product_id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": responses.MsgUpdated,
			"product": view,
		})
	}
}

// DeleteProduct soft deletes a product and its line items.
func DeleteProduct(svc productsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Delete(ctx, chi.URLParam(r, "product_id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
