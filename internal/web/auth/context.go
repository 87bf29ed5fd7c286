package auth

import "context"

type contextKey int

const claimsKey contextKey = iota

// WithClaims returns a context carrying the authenticated caller
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// FromContext returns the authenticated caller, or nil when the request was
// not authenticated
func FromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// Subject returns the caller's subject, or "" for anonymous requests
func Subject(ctx context.Context) string {
	if claims := FromContext(ctx); claims != nil {
		return claims.Subject
	}
	return ""
}
