package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
)

type Code string

const (
	CodeAuthRequired   Code = "AUTH_REQUIRED"
	CodeNoPermission   Code = "NO_PERMISSION"
	CodeNotFound       Code = "NOT_FOUND"
	CodeWrongPassword  Code = "WRONG_PASSWORD"
	CodeInvalidRequest Code = "INVALID_REQUEST"
	CodeConflict       Code = "CONFLICT"
	CodeNeedLogout     Code = "NEED_LOGOUT"
	CodeInternal       Code = "INTERNAL_ERROR"
	CodeUnavailable    Code = "ROUTE_UNAVAILABLE"
	CodeExpiredToken   Code = "EXPIRED_TOKEN"
	CodeInvalidToken   Code = "INVALID_TOKEN"
)

type Metadata struct {
	HTTPStatus     int
	PublicMessage  string
	DetailsAllowed bool
}

// The public messages form the closed response vocabulary; API consumers
// branch on these strings, so they never vary per resource.
var metadataByCode = map[Code]Metadata{
	CodeAuthRequired: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "Authentication required",
	},
	CodeNoPermission: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "Not allowed to access resource",
	},
	CodeNotFound: {
		HTTPStatus:    http.StatusNotFound,
		PublicMessage: "Resource not found",
	},
	CodeWrongPassword: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "Incorrect password",
	},
	CodeInvalidRequest: {
		HTTPStatus:     http.StatusBadRequest,
		PublicMessage:  "Invalid request data",
		DetailsAllowed: true,
	},
	CodeConflict: {
		// Conflicts share the invalid-request vocabulary entry but carry
		// 409 so callers can distinguish "already in use" from bad input.
		HTTPStatus:    http.StatusConflict,
		PublicMessage: "Invalid request data",
	},
	CodeNeedLogout: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "You need to log out first",
	},
	CodeInternal: {
		HTTPStatus:    http.StatusInternalServerError,
		PublicMessage: "Internal server error",
	},
	CodeUnavailable: {
		HTTPStatus:    http.StatusBadRequest,
		PublicMessage: "Route unavailable",
	},
	CodeExpiredToken: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "Expired token",
	},
	CodeInvalidToken: {
		HTTPStatus:    http.StatusUnauthorized,
		PublicMessage: "Invalid token",
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details []string
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

// Details returns the per-field violation messages attached to the error.
func (e *Error) Details() []string {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details []string) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}
