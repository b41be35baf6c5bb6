package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/coupons"
	"github.com/gamestore/admin-backend/internal/listing"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type couponsService interface {
	List(ctx context.Context, q listing.Query) (*coupons.ListResult, error)
	Get(ctx context.Context, id string) (*coupons.View, error)
	Create(ctx context.Context, input coupons.CreateInput) (*coupons.View, error)
	Update(ctx context.Context, id string, input coupons.UpdateInput) (*coupons.View, error)
	Delete(ctx context.Context, id string) error
}

// ListCoupons pages through coupons.
func ListCoupons(svc couponsService, logg *logger.Logger) http.HandlerFunc {
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

// GetCoupon returns one coupon by id.
func GetCoupon(svc couponsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		view, err := svc.Get(ctx, chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteJSON(w, http.StatusOK, view)
	}
}

// CreateCoupon inserts a coupon with a valid discount window.
func CreateCoupon(svc couponsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req coupons.CreateRequest
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
			"coupon":  view,
		})
	}
}

// UpdateCoupon applies a partial update to a coupon.
func UpdateCoupon(svc couponsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req coupons.UpdateRequest
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
			"coupon":  view,
		})
	}
}

// DeleteCoupon tombstones a coupon.
func DeleteCoupon(svc couponsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.Delete(ctx, chi.URLParam(r, "id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
