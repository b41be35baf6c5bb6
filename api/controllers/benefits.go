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

type benefitsService interface {
	CreateBenefit(ctx context.Context, productID string, input products.BenefitInput) (*products.BenefitView, error)
	UpdateBenefit(ctx context.Context, productID, benefitID string, input products.BenefitInput) (*products.BenefitView, error)
	DeleteBenefit(ctx context.Context, productID, benefitID string) error
}

// CreateBenefit adds a benefit line item to a product.
func CreateBenefit(svc benefitsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.BenefitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.CreateBenefit(ctx, chi.URLParam(r, "product_id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"message": responses.MsgCreated,
			"benefit": view,
		})
	}
}

// UpdateBenefit replaces a benefit's text.
func UpdateBenefit(svc benefitsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req products.BenefitRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		view, err := svc.UpdateBenefit(ctx, chi.URLParam(r, "product_id"), chi.URLParam(r, "benefit_id"), req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteJSON(w, http.StatusOK, map[string]any{
			"message": responses.MsgUpdated,
			"benefit": view,
		})
	}
}

// DeleteBenefit soft deletes a benefit.
func DeleteBenefit(svc benefitsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := svc.DeleteBenefit(ctx, chi.URLParam(r, "product_id"), chi.URLParam(r, "benefit_id")); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteMessage(w, http.StatusOK, responses.MsgDeleted)
	}
}
