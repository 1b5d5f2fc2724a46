package middleware

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-tracker/internal/domain/auth"
	"github.com/cmlabs-hris/attendance-tracker/internal/handler/http/response"
	"github.com/cmlabs-hris/attendance-tracker/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

const accessTokenType = "access"

// AdminRequired verifies the bearer token and admits dashboard admin access tokens only.
// Tokens that fail verification get 401; verified tokens without the admin role get 403.
func AdminRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	verify := jwtauth.Verifier(ja)

	return func(next http.Handler) http.Handler {
		return verify(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				slog.Debug("Rejected dashboard request", "path", r.URL.Path, "error", err)
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if tokenType, _ := claims["type"].(string); tokenType != accessTokenType {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			if role, _ := claims["role"].(string); role != jwt.RoleAdmin {
				slog.Warn("Non-admin token used on dashboard", "path", r.URL.Path, "user_id", claims["user_id"])
				response.Forbidden(w, "admin privileges required")
				return
			}

			next.ServeHTTP(w, r)
		}))
	}
}
