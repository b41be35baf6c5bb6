package controllers

import (
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
)

// Root reports which environment the API is running in.
func Root(environment string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteJSON(w, http.StatusOK, map[string]string{
			"environment": environment,
		})
	}
}
