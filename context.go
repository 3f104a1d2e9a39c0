package actiongate

import (
	"context"

	"github.com/mwestra/actiongate/permission"
)

type grantedContextKey struct{}
type identityContextKey struct{}

// WithGrantedPermissions attaches the caller's granted tag set to ctx. By
// convention an upstream identity action populates it once per request; the
// engine only reads it.
func WithGrantedPermissions(ctx context.Context, set permission.Set) context.Context {
	return context.WithValue(ctx, grantedContextKey{}, set)
}

// GrantedFromContext returns the granted set attached to ctx, if any.
func GrantedFromContext(ctx context.Context) (permission.Set, bool) {
	set, ok := ctx.Value(grantedContextKey{}).(permission.Set)
	return set, ok
}

// WithIdentity attaches the caller's identity to ctx for audit output.
func WithIdentity(ctx context.Context, identity string) context.Context {
	return context.WithValue(ctx, identityContextKey{}, identity)
}

// IdentityFromContext returns the identity attached to ctx, or "".
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityContextKey{}).(string)
	return identity
}

// ContextSource is the default GrantedPermissionSource: it reads the set
// attached to the request context via [WithGrantedPermissions]. A missing
// set yields an empty one, not an error.
type ContextSource struct{}

// Permissions returns the context-attached granted set.
func (ContextSource) Permissions(ctx context.Context) (permission.Set, error) {
	if set, ok := GrantedFromContext(ctx); ok {
		return set, nil
	}
	return permission.Set{}, nil
}
