package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tair/pos-backoffice/pkg/auth"
	"github.com/tair/pos-backoffice/pkg/httpresp"
)

type claimsKey struct{}

// ClaimsFromContext returns the caller's claims set by Authenticate
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims, ok
}

// ContextWithClaims binds claims to ctx
func ContextWithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Authenticate validates the bearer token
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httpresp.JSON(w, http.StatusUnauthorized, httpresp.Response{Error: "Authorization header required"})
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httpresp.JSON(w, http.StatusUnauthorized, httpresp.Response{Error: "Invalid authorization header format"})
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				httpresp.JSON(w, http.StatusUnauthorized, httpresp.Response{Error: "Invalid token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole allows the request only when the caller holds one of roles
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				httpresp.JSON(w, http.StatusUnauthorized, httpresp.Response{Error: "Authentication required"})
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			httpresp.JSON(w, http.StatusForbidden, httpresp.Response{Error: "Insufficient role"})
		})
	}
}

// Supervisor gates a handler to supervisors
func Supervisor(h http.HandlerFunc) http.Handler {
	return RequireRole(auth.RoleSupervisor)(h)
}

// AnyRole gates a handler to any authenticated role
func AnyRole(h http.HandlerFunc) http.Handler {
	return RequireRole(auth.RoleSupervisor, auth.RoleOperator)(h)
}
