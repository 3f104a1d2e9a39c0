package actiongate

import (
	"context"

	"github.com/mwestra/actiongate/permission"
)

// ActionRef identifies one action in a dispatch chain.
type ActionRef struct {
	Namespace string
	Name      string
}

// ChainResolver abstracts the host dispatcher's chain introspection. It
// returns the ordered ancestor actions of the request being dispatched,
// outermost first. The engine consumes only this plain slice and never
// touches dispatcher internals.
type ChainResolver interface {
	Chain(ctx context.Context) []ActionRef
}

// ChainFunc adapts a function to the ChainResolver interface.
type ChainFunc func(ctx context.Context) []ActionRef

// Chain calls f.
func (f ChainFunc) Chain(ctx context.Context) []ActionRef { return f(ctx) }

// GrantedPermissionSource yields the permission tags the current caller
// holds. Implementations are request-scoped; the engine never writes to
// them and consults them only when a requirement exists for the action.
type GrantedPermissionSource interface {
	Permissions(ctx context.Context) (permission.Set, error)
}

// SourceFunc adapts a function to the GrantedPermissionSource interface.
type SourceFunc func(ctx context.Context) (permission.Set, error)

// Permissions calls f.
func (f SourceFunc) Permissions(ctx context.Context) (permission.Set, error) {
	return f(ctx)
}

// StaticSource is a fixed-set GrantedPermissionSource, mainly for tests and
// trusted in-process callers.
type StaticSource permission.Set

// Permissions returns the fixed set.
func (s StaticSource) Permissions(context.Context) (permission.Set, error) {
	return permission.Set(s), nil
}

// Request carries the per-request inputs of one evaluation.
type Request struct {
	// Namespace of the action being dispatched (roughly, the controller).
	Namespace string
	// Action is the name of the current request's action, used when no
	// chain entry shares the request namespace.
	Action string
	// Method is the HTTP method of the request ("GET", "POST", ...).
	Method string
	// Chain holds the ordered ancestor actions, outermost first. May be nil.
	Chain []ActionRef
	// Identity names the caller for audit purposes. Empty is reported as
	// "anonymous".
	Identity string
	// Source yields the caller's granted tags. When nil, the engine reads
	// the set attached to ctx via WithGrantedPermissions.
	Source GrantedPermissionSource
}

// DenyReason classifies why a Decision denies.
type DenyReason uint8

const (
	// DenyNone is the reason carried by an allowing Decision.
	DenyNone DenyReason = iota
	// DenyMisconfigured means no requirement entry exists for the action
	// (directly, via method suffix, or via the "setup" fallback) and the
	// engine runs in deny-unconfigured mode. This is an operator error: a
	// reachable action has no permission policy.
	DenyMisconfigured
	// DenyInsufficientPermissions means a requirement exists and the
	// caller's granted set does not intersect it.
	DenyInsufficientPermissions
)

func (r DenyReason) String() string {
	switch r {
	case DenyMisconfigured:
		return "misconfigured"
	case DenyInsufficientPermissions:
		return "insufficient_permissions"
	default:
		return "none"
	}
}

// Decision is the outcome of one evaluation. Both deny reasons produce the
// same transport-visible effect (the host short-circuits with a
// 403-equivalent); they differ in audit severity and operational meaning.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Reason is DenyNone when Allowed is true.
	Reason DenyReason
	// Action is the effective action name the requirement was resolved for
	// (the deepest same-namespace chain entry, or the request action).
	Action string
	// Required holds the effective requirement, in registration order. Nil
	// when the action was unconfigured.
	Required []permission.Tag
	// Matched holds the required tags the caller actually held.
	Matched []permission.Tag
}
