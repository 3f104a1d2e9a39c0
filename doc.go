// Package actiongate is an authorization interceptor for backend frameworks
// that model request handling as a hierarchical action chain: a parent
// "setup" action followed by leaf actions, grouped into namespaces.
//
// For each request the [Engine] resolves the effective permission
// requirement of the dispatched action (direct entry, then a
// method-suffixed entry for non-GET methods, then the "setup" fallback) and
// compares it against the caller's granted tags. Holding any one required
// tag is sufficient. The result is a [Decision]: allow, deny for
// insufficient permissions, or deny because the action has no configured
// policy while the engine runs in deny-unconfigured mode.
//
// The package is designed for concurrent server workloads: Engine methods
// are safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// actiongate decides; it never transports. The Engine returns the Decision
// and emits audit events and metric counters, but writing the 403 response
// and short-circuiting the handler chain is the host's job (the middleware
// subpackage does it for net/http hosts). Authentication, session
// management, and persistent grant storage are external: callers hand the
// Engine a [GrantedPermissionSource] per request (the jwtgrant and
// grantstore subpackages provide ready-made sources).
//
// # Performance contract
//
// Evaluate is the hot path. It performs no I/O of its own and completes
// without suspension; the only potentially blocking step is the caller's
// GrantedPermissionSource, which is consulted only when a requirement
// actually exists for the action.
package actiongate
