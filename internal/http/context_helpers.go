package httpx

import (
	"context"

	domainauth "github.com/tourdesh/tourdesh-api/internal/domain/auth"
)

// authContextKey is an unexported context key type to avoid collisions
// across packages. Centralized here so all handlers and middleware use
// the same key.
type authContextKey struct{}

// SetAuthContext returns a child context carrying the caller's verified
// identity.
func SetAuthContext(ctx context.Context, authCtx domainauth.Context) context.Context {
	return context.WithValue(ctx, authContextKey{}, authCtx)
}

// GetAuthContext returns the caller identity from context and whether one
// is present. Handlers behind RequireAuth can rely on presence.
func GetAuthContext(ctx context.Context) (domainauth.Context, bool) {
	authCtx, ok := ctx.Value(authContextKey{}).(domainauth.Context)
	return authCtx, ok
}
