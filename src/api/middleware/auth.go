package middleware

import (
	"fmt"
	"net/http"
	"reports/src/utils"
	"strings"

	"github.com/go-chi/jwtauth"
)

const (
	RoleAdmin = "admin"
	RoleSales = "sales"
)

// RequireRole admits requests whose verified token carries one of roles in
// its "role" claim. It must run after jwtauth.Verifier.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())
			if err != nil || token == nil {
				utils.WriteError(w, utils.Unauthorized("invalid or missing token"))
				return
			}

			role, _ := claims["role"].(string)
			if !allowed[strings.ToLower(role)] {
				utils.WriteError(w, utils.Forbidden(fmt.Sprintf("role %q may not access this resource", role)))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
