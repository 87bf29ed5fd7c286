package middleware

import (
	"net/http"
	"strings"

	"github.com/fieldmark/designer/internal/web/auth"
)

// AuthConfig holds configuration for authentication middleware
type AuthConfig struct {
	// Service verifies bearer tokens
	Service *auth.Service
	// SkipPaths is a list of paths to skip authentication
	SkipPaths []string
	// Unauthorized writes the rejection response
	Unauthorized func(w http.ResponseWriter, r *http.Request, message string)
}

// Auth creates an authentication middleware with the given token service
func Auth(service *auth.Service, skipPaths ...string) Middleware {
	return AuthWithConfig(AuthConfig{Service: service, SkipPaths: skipPaths})
}

// AuthWithConfig creates an authentication middleware with custom configuration
func AuthWithConfig(config AuthConfig) Middleware {
	reject := config.Unauthorized
	if reject == nil {
		reject = func(w http.ResponseWriter, _ *http.Request, message string) {
			http.Error(w, message, http.StatusUnauthorized)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skip(config.SkipPaths, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				reject(w, r, "Authorization required")
				return
			}

			claims, err := config.Service.Verify(token)
			if err != nil {
				reject(w, r, "Invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithClaims(r.Context(), claims)))
		})
	}
}

// bearerToken reads the token from the Authorization header. Browsers cannot
// set headers on websocket handshakes, so an access_token query parameter is
// accepted for upgrade requests.
func bearerToken(r *http.Request) (string, bool) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", false
		}
		return parts[1], true
	}
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		if token := r.URL.Query().Get("access_token"); token != "" {
			return token, true
		}
	}
	return "", false
}

// RequirePermission rejects authenticated callers lacking permission with 403.
// Requests without claims pass through, which is the case when the server
// runs with authentication disabled.
func RequirePermission(permission auth.Permission, forbidden func(http.ResponseWriter, *http.Request)) Middleware {
	if forbidden == nil {
		forbidden = func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Forbidden", http.StatusForbidden)
		}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := auth.FromContext(r.Context())
			if claims != nil && !claims.Allowed(permission) {
				forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
