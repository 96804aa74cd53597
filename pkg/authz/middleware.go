package authz

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the token payload issued by the auth service.
// user_type and company_id mirror the columns of the users table.
type Claims struct {
	UserID    int64  `json:"id"`
	Name      string `json:"name"`
	Role      string `json:"user_type"`
	CompanyID int64  `json:"company_id"`
	jwt.RegisteredClaims
}

// TokenMiddleware returns HTTP middleware that verifies the Authorization
// bearer token and stores the decoded Actor in the request context.
// Requests without a valid token are rejected with 401.
func TokenMiddleware(secret []byte, logger *slog.Logger) func(http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				logger.Warn("token verification failed", "error", err, "path", r.URL.Path)
				writeAuthError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			actor := Actor{
				UserID:    claims.UserID,
				Name:      claims.Name,
				Role:      Role(strings.ToUpper(strings.TrimSpace(claims.Role))),
				CompanyID: claims.CompanyID,
			}

			ctx := WithActor(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRoles returns middleware that only admits actors holding one of the
// given roles. Mount after TokenMiddleware.
func RequireRoles(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "no authenticated actor")
				return
			}
			if _, ok := allowed[actor.Role]; !ok {
				writeAuthError(w, http.StatusForbidden,
					fmt.Sprintf("role %s is not allowed on this endpoint", actor.Role))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
