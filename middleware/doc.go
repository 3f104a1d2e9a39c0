// Package middleware glues an actiongate Engine into net/http hosts.
//
// Guard wraps a handler for one namespace/action route and evaluates every
// request before the handler runs. Intercept additionally drives a host
// handler's explicit Setup hook, evaluating after setup succeeds and before
// the main handler. That is the extension point for frameworks whose
// actions have a setup phase. Hosts must implement [SetupHandler] explicitly; the
// interceptor never relies on structural discovery of a setup method
// beyond that interface.
//
// Both write a plain 403 on denial by default; override with
// WithDenyHandler. The two deny reasons are indistinguishable on the wire
// on purpose; the distinction lives in audit severity.
package middleware
