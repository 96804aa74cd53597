package tenancy

import (
	"encoding/json"
	"net/http"

	"github.com/Lexor-hub/id-transportes-back-sub000/pkg/authz"
)

// Middleware resolves the company scope from the authenticated actor and
// stores it in the request context. Mount after authz.TokenMiddleware.
// Actors without a company scope are rejected with 403.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := authz.ActorFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "no authenticated actor")
				return
			}

			scope, err := ResolveScope(actor)
			if err != nil {
				writeError(w, http.StatusForbidden, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(WithScope(r.Context(), scope)))
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
