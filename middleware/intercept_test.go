package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	actiongate "github.com/mwestra/actiongate"
	"github.com/mwestra/actiongate/permission"
)

// stubHandler implements SetupHandler: Setup attaches the granted set the
// way a host identity action would, ServeHTTP is the main handler.
type stubHandler struct {
	granted  permission.Set
	setupErr error

	setupRan bool
	mainRan  bool
}

func (h *stubHandler) Setup(_ http.ResponseWriter, r *http.Request) (*http.Request, error) {
	h.setupRan = true
	if h.setupErr != nil {
		return nil, h.setupErr
	}
	ctx := actiongate.WithGrantedPermissions(r.Context(), h.granted)
	return r.WithContext(ctx), nil
}

func (h *stubHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	h.mainRan = true
	w.WriteHeader(http.StatusOK)
}

func TestInterceptRunsSetupThenEvaluatesThenHandler(t *testing.T) {
	engine := buildGuardTestEngine(t, actiongate.PolicyDenyUnconfigured, map[string][]permission.Tag{
		"view": {"Admin"},
	})

	h := &stubHandler{granted: permission.NewSet("Admin")}
	rec := httptest.NewRecorder()
	Intercept(engine, "articles", "view", h).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if !h.setupRan || !h.mainRan {
		t.Fatalf("setupRan=%v mainRan=%v", h.setupRan, h.mainRan)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestInterceptDenialSkipsMainHandler(t *testing.T) {
	engine := buildGuardTestEngine(t, actiongate.PolicyDenyUnconfigured, map[string][]permission.Tag{
		"view": {"Admin"},
	})

	h := &stubHandler{granted: permission.NewSet("Viewer")}
	rec := httptest.NewRecorder()
	Intercept(engine, "articles", "view", h).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if !h.setupRan {
		t.Fatal("setup must run before evaluation")
	}
	if h.mainRan {
		t.Fatal("denial must skip the main handler")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}
}

func TestInterceptSetupFailureAbortsBeforeEvaluation(t *testing.T) {
	engine := buildGuardTestEngine(t, actiongate.PolicyAllowUnconfigured, nil)

	h := &stubHandler{setupErr: errors.New("db down")}
	rec := httptest.NewRecorder()
	Intercept(engine, "articles", "view", h).
		ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	if h.mainRan {
		t.Fatal("main handler must not run after setup failure")
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
