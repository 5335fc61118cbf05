package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"fundraiser/internal/auth"
	"fundraiser/internal/domain"
)

type claimsContextKey struct{}

// ClaimsKey carries the verified session claims on the request context.
var ClaimsKey = claimsContextKey{}

const (
	loginPath   = "/login"
	adminPrefix = "/admin"
)

// AuthGate decides allow / redirect-to-login / redirect-to-admin from the
// request path and the session cookie. A cookie that fails verification is
// treated exactly like a missing one; the failure is only logged. The gate
// holds no state across requests.
func AuthGate(tokens *auth.TokenService, logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := gateClaims(tokens, logger, r)

			if r.URL.Path == loginPath && claims != nil {
				http.Redirect(w, r, adminPrefix, http.StatusFound)
				return
			}

			if strings.HasPrefix(r.URL.Path, adminPrefix) && claims == nil {
				http.Redirect(w, r, loginPath, http.StatusFound)
				return
			}

			if claims != nil {
				r = r.WithContext(context.WithValue(r.Context(), ClaimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func gateClaims(tokens *auth.TokenService, logger zerolog.Logger, r *http.Request) *auth.Claims {
	token, ok := auth.TokenFromRequest(r)
	if !ok {
		return nil
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		logger.Debug().Err(err).Str("path", r.URL.Path).Msg("session cookie rejected")
		return nil
	}
	return claims
}

// RequireRole guards JSON endpoints: 401 without a verified session, 403
// when the session role is not in the allowed set.
func RequireRole(tokens *auth.TokenService, roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.ClaimsFromRequest(r)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, ok := allowed[claims.Role]; !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified session claims, if any.
func ClaimsFromContext(ctx context.Context) *auth.Claims {
	if v, ok := ctx.Value(ClaimsKey).(*auth.Claims); ok {
		return v
	}
	return nil
}
