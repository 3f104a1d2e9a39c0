package middleware

import (
	"net/http"

	actiongate "github.com/mwestra/actiongate"
)

// SetupHandler is a handler with an explicit setup phase. Setup runs before
// authorization and typically resolves identity and attaches the caller's
// granted set to the request context; ServeHTTP is the main handler and
// runs only after an allowing decision.
type SetupHandler interface {
	http.Handler
	// Setup prepares the request and returns the derived context. A non-nil
	// error aborts the request before evaluation.
	Setup(w http.ResponseWriter, r *http.Request) (*http.Request, error)
}

// Intercept wires a SetupHandler into the evaluation flow for one
// namespace/action route: setup, then evaluation, then the main handler.
// Setup failures abort with a 500; denials go through the configured deny
// handler.
func Intercept(engine *actiongate.Engine, namespace, action string, h SetupHandler, opts ...Option) http.Handler {
	o := buildOptions(opts)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		prepared, err := h.Setup(w, r)
		if err != nil {
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}
		if prepared != nil {
			r = prepared
		}

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

		h.ServeHTTP(w, r)
	})
}
