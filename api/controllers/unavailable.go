package controllers

import (
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
)

// Unavailable answers for routes that exist in the API surface but are not
// served by this backend, such as the purchase endpoints.
func Unavailable(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteError(r.Context(), logg, w, errors.New(errors.CodeUnavailable, "route not served"))
	}
}
