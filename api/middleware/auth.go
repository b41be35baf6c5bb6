package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/gamestore/admin-backend/api/responses"
	"github.com/gamestore/admin-backend/pkg/auth"
	"github.com/gamestore/admin-backend/pkg/auth/session"
	"github.com/gamestore/admin-backend/pkg/config"
	"github.com/gamestore/admin-backend/pkg/errors"
	"github.com/gamestore/admin-backend/pkg/logger"
)

// SessionCookieName is the cookie carrying the session JWT.
const SessionCookieName = "token"

// SessionGate resolves the session cookie before routing. A missing cookie
// lets the request through as anonymous so per-route guards can decide;
// a present but bad cookie is terminal.
func SessionGate(cfg config.JWTConfig, checker session.Checker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				next.ServeHTTP(w, r.WithContext(WithAnonymous(ctx)))
				return
			}

			claims, err := auth.ParseSessionToken(cfg, cookie.Value)
			if err != nil {
				switch {
				case stderrors.Is(err, auth.ErrTokenExpired):
					responses.WriteError(ctx, logg, w, errors.Wrap(errors.CodeExpiredToken, err, "session token expired"))
				case stderrors.Is(err, auth.ErrTokenInvalid):
					responses.WriteError(ctx, logg, w, errors.Wrap(errors.CodeInvalidToken, err, "session token rejected"))
				default:
					responses.WriteError(ctx, logg, w, errors.Wrap(errors.CodeInternal, err, "verifying session token"))
				}
				return
			}

			if checker != nil {
				live, err := checker.HasSession(ctx, claims.ID)
				if err != nil {
					responses.WriteError(ctx, logg, w, errors.Wrap(errors.CodeInternal, err, "checking session whitelist"))
					return
				}
				if !live {
					responses.WriteError(ctx, logg, w, errors.New(errors.CodeInvalidToken, "session revoked"))
					return
				}
			}

			ctx = WithSession(ctx, claims.Nickname, claims.Permission, claims.ID)
			if logg != nil {
				ctx = logg.WithActor(ctx, claims.Nickname, claims.Permission.String())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
