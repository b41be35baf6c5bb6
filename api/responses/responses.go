package responses

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
)

// Success message vocabulary shared by every controller.
const (
	MsgCreated   = "Successfully created"
	MsgUpdated   = "Successfully updated"
	MsgDeleted   = "Successfully deleted"
	MsgLoggedIn  = "Successfully logged in"
	MsgLoggedOut = "Successfully logged out"
)

type errorBody struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

type messageBody struct {
	Message string `json:"message"`
}

// WriteJSON serializes payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

// WriteMessage writes a {"message": ...} body.
func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, messageBody{Message: message})
}

// WriteError is the single funnel for handler errors. It resolves the typed
// error's vocabulary entry, logs according to severity, and never leaks
// internal messages to the client.
func WriteError(ctx context.Context, logg *logger.Logger, w http.ResponseWriter, err error) {
	typed := errors.As(err)
	if typed == nil {
		typed = errors.Wrap(errors.CodeInternal, err, "unhandled error")
	}

	meta := errors.MetadataFor(typed.Code())

	if logg != nil {
		if meta.HTTPStatus >= http.StatusInternalServerError {
			logg.Error(ctx, string(typed.Code()), err)
		} else {
			logg.Warn(ctx, typed.Error())
		}
	}

	body := errorBody{Error: meta.PublicMessage}
	if meta.DetailsAllowed {
		body.Errors = typed.Details()
	}

	WriteJSON(w, meta.HTTPStatus, body)
}
