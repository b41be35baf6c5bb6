package controllers

import (
	"context"
	"net/http"

	"github.com/gamestore/admin-backend/api/middleware"
	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/api/validators"
	"github.com/gamestore/admin-backend/internal/auth"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/logger"
)

type authService interface {
	Login(ctx context.Context, input auth.LoginInput) (string, *auth.SessionView, error)
	Logout(ctx context.Context, accessID string) error
}

// Session reports the caller's own identity from the verified session.
func Session(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		responses.WriteJSON(w, http.StatusOK, auth.SessionView{
			Nickname:   middleware.ActorNickname(ctx),
			Permission: middleware.ActorRole(ctx),
		})
	}
}

// Login exchanges credentials for a session cookie.
func Login(svc authService, jwt config.JWTConfig, secure bool, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req auth.LoginRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		token, view, err := svc.Login(ctx, req.ToInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		setSessionCookie(w, jwt, token, secure)
		responses.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":    responses.MsgLoggedIn,
			"nickname":   view.Nickname,
			"permission": view.Permission,
		})
	}
}

// Logout revokes the session and clears the cookie.
func Logout(svc authService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := svc.Logout(ctx, middleware.ActorAccessID(ctx)); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		clearSessionCookie(w)
		responses.WriteMessage(w, http.StatusOK, responses.MsgLoggedOut)
	}
}

func setSessionCookie(w http.ResponseWriter, jwt config.JWTConfig, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(jwt.SessionTTL().Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
