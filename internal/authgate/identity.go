package authgate

import (
	"context"

	"github.com/mlc-apps/finance-backend/internal/token"
)

type contextKey string

const identityKey contextKey = "identity"

func WithIdentity(ctx context.Context, identity token.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext returns the identity attached by a gate for the
// current request. The value is request-scoped and must not be retained.
func IdentityFromContext(ctx context.Context) (token.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(token.Identity)
	return identity, ok
}
