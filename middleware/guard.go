package middleware

import (
	"net/http"

	actiongate "github.com/mwestra/actiongate"
)

// DenyHandler renders the denial response. It runs instead of the wrapped
// handler; it must not call the next handler.
type DenyHandler func(w http.ResponseWriter, r *http.Request, decision actiongate.Decision)

// Option customizes Guard and Intercept.
type Option func(*options)

type options struct {
	source   actiongate.GrantedPermissionSource
	chain    actiongate.ChainResolver
	identity func(*http.Request) string
	deny     DenyHandler
}

// WithSource sets the granted-permission source for the wrapped routes.
// Default: the request-context source populated via
// [actiongate.WithGrantedPermissions].
func WithSource(src actiongate.GrantedPermissionSource) Option {
	return func(o *options) { o.source = src }
}

// WithChainResolver sets the resolver supplying the ancestor action chain.
// Default: no chain; the route's own action governs.
func WithChainResolver(cr actiongate.ChainResolver) Option {
	return func(o *options) { o.chain = cr }
}

// WithIdentityFunc sets how the caller identity is derived for audit
// output. Default: [actiongate.IdentityFromContext].
func WithIdentityFunc(f func(*http.Request) string) Option {
	return func(o *options) { o.identity = f }
}

// WithDenyHandler replaces the default 403 response.
func WithDenyHandler(h DenyHandler) Option {
	return func(o *options) { o.deny = h }
}

func buildOptions(opts []Option) options {
	o := options{
		deny: func(w http.ResponseWriter, _ *http.Request, _ actiongate.Decision) {
			http.Error(w, "forbidden", http.StatusForbidden)
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Guard returns middleware that evaluates every request against the given
// namespace/action before the wrapped handler runs. Denials and grant
// source failures short-circuit the chain; source failures fail closed.
func Guard(engine *actiongate.Engine, namespace, action string, opts ...Option) func(http.Handler) http.Handler {
	o := buildOptions(opts)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			decision, err := engine.Evaluate(r.Context(), evalRequest(o, r, namespace, action))
			if err != nil {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			if !decision.Allowed {
				o.deny(w, r, decision)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func evalRequest(o options, r *http.Request, namespace, action string) actiongate.Request {
	req := actiongate.Request{
		Namespace: namespace,
		Action:    action,
		Method:    r.Method,
		Source:    o.source,
	}
	if o.chain != nil {
		req.Chain = o.chain.Chain(r.Context())
	}
	if o.identity != nil {
		req.Identity = o.identity(r)
	} else {
		req.Identity = actiongate.IdentityFromContext(r.Context())
	}
	return req
}
