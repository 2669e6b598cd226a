package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/siteworks/siteops-backend-go/internal/handler/http/response"
)

// AdminOnly guards transfer and approval routes; only callers carrying the
// admin role claim pass.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}

		role, ok := claims["role"].(string)
		if !ok || role != "admin" {
			response.Forbidden(w, "Admin privilege required")
			return
		}

		next.ServeHTTP(w, r)
	})
}
