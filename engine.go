package actiongate

import (
	"sort"
	"sync/atomic"

	"github.com/mwestra/actiongate/permission"
)

// Engine is the decision core. It is stateless across evaluations: all
// state is either process-wide configuration, read-only at request time, or
// per-request input.
type Engine struct {
	config   Config
	registry atomic.Pointer[permission.Registry]
	audit    *auditDispatcher
	metrics  *Metrics
}

// Close stops the audit dispatcher after draining queued events.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// ReplaceRequirements swaps the requirement registry for a freshly built
// one in a single atomic store. In-flight evaluations observe either the
// old registry or the new one, never a partial state.
func (e *Engine) ReplaceRequirements(reqs map[string][]permission.Tag) error {
	if e == nil {
		return ErrEngineNotReady
	}

	actions := make([]string, 0, len(reqs))
	for action := range reqs {
		actions = append(actions, action)
	}
	sort.Strings(actions)

	registry, err := buildRegistry(actions, reqs)
	if err != nil {
		return err
	}

	e.registry.Store(registry)
	return nil
}

// Requirement returns the configured tags for an action, without override
// resolution. Intended for introspection and host-side diagnostics.
func (e *Engine) Requirement(action string) ([]permission.Tag, bool) {
	if e == nil {
		return nil, false
	}
	return e.registry.Load().Lookup(action)
}

// AuditDropped returns the number of audit events dropped under
// backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the engine's metric counters, for the exporters
// under metrics/export.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}
