package actiongate

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwestra/actiongate/permission"
)

// Evaluate decides whether the request may proceed.
//
// The effective action is the last chain entry whose namespace equals the
// request namespace, falling back to the request's own action name. Only
// that single action is inspected, never the cumulative requirements of the
// whole ancestor chain.
//
// The requirement is then resolved through [permission.ResolveOverride] and
// compared against the caller's granted set with any-of semantics. An
// unconfigured action is decided by Config.Policy.Mode. The granted source
// is consulted only when a requirement exists.
//
// Evaluate returns an error only when the granted source fails; the caller
// should treat that as a denial (fail closed). It never touches transport
// state: short-circuiting the handler and writing the 403 is the host's
// job.
func (e *Engine) Evaluate(ctx context.Context, req Request) (Decision, error) {
	if e == nil {
		return Decision{}, ErrEngineNotReady
	}

	start := time.Now()

	action := effectiveAction(req)
	required, kind := permission.ResolveOverride(e.registry.Load(), action, req.Method)
	e.metricInc(resolutionMetric(kind))

	var decision Decision
	var granted permission.Set

	if kind == permission.MatchNone {
		if e.config.Policy.Mode == PolicyAllowUnconfigured {
			decision = Decision{Allowed: true, Action: action}
		} else {
			decision = Decision{Reason: DenyMisconfigured, Action: action}
		}
	} else {
		var err error
		granted, err = e.grantedSet(ctx, req)
		if err != nil {
			e.metricInc(MetricGrantSourceError)
			return Decision{}, fmt.Errorf("%w: %v", ErrGrantSourceFailed, err)
		}

		matched := granted.Intersect(required)
		if len(matched) > 0 {
			decision = Decision{Allowed: true, Action: action, Required: required, Matched: matched}
		} else {
			decision = Decision{Reason: DenyInsufficientPermissions, Action: action, Required: required}
		}
	}

	e.observe(ctx, req, decision, granted)
	if e.metrics != nil {
		e.metrics.Observe(MetricEvaluateLatency, time.Since(start))
	}

	return decision, nil
}

// effectiveAction selects the action whose requirement governs the request:
// the deepest chain entry in the request's namespace, or the request action
// when the chain has none.
func effectiveAction(req Request) string {
	action := req.Action
	for _, ref := range req.Chain {
		if ref.Namespace == req.Namespace {
			action = ref.Name
		}
	}
	return action
}

func (e *Engine) grantedSet(ctx context.Context, req Request) (permission.Set, error) {
	source := req.Source
	if source == nil {
		source = ContextSource{}
	}
	return source.Permissions(ctx)
}

func resolutionMetric(kind permission.MatchKind) MetricID {
	switch kind {
	case permission.MatchDirect:
		return MetricResolveDirect
	case permission.MatchMethodOverride:
		return MetricResolveMethodOverride
	case permission.MatchSetupFallback:
		return MetricResolveSetupFallback
	default:
		return MetricResolveUnconfigured
	}
}

// observe records the metric counter for the outcome and, for denials,
// queues the audit event. Allowed requests are not audited.
func (e *Engine) observe(ctx context.Context, req Request, decision Decision, granted permission.Set) {
	switch {
	case decision.Allowed:
		e.metricInc(MetricEvaluateAllow)
		return
	case decision.Reason == DenyMisconfigured:
		e.metricInc(MetricEvaluateDenyMisconfigured)
	default:
		e.metricInc(MetricEvaluateDenyInsufficient)
	}

	if e.audit == nil {
		return
	}

	identity := req.Identity
	if identity == "" {
		identity = IdentityFromContext(ctx)
	}
	if identity == "" {
		identity = AnonymousIdentity
	}

	event := AuditEvent{
		EventID:   uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Namespace: req.Namespace,
		Action:    decision.Action,
		Method:    req.Method,
		Identity:  identity,
		Reason:    decision.Reason.String(),
	}

	if decision.Reason == DenyMisconfigured {
		event.EventType = EventConfigurationError
		event.Severity = SeverityError
	} else {
		event.EventType = EventAccessDenied
		event.Severity = SeverityInfo
		event.Required = permission.TagStrings(decision.Required)
		event.Granted = granted.Strings()
	}

	e.audit.Emit(ctx, event)
}
