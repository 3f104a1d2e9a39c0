package actiongate

import (
	"sort"

	"github.com/mwestra/actiongate/permission"
)

// Builder assembles an Engine. Construction is allocation-only; all
// validation happens at Build, which may be called once.
type Builder struct {
	config Config

	actions      []string
	requirements map[string][]permission.Tag

	auditSink AuditSink

	built bool
}

// New creates a Builder with an empty requirement set. The policy mode has
// no default and must be supplied through WithConfig.
func New() *Builder {
	return &Builder{
		requirements: make(map[string][]permission.Tag),
	}
}

// WithConfig replaces the engine configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithRequirement adds one action's required tags. Registration order is
// preserved; registering the same action twice surfaces as
// [permission.ErrDuplicateRegistration] at Build. An empty tag list is a
// real, explicitly empty requirement.
func (b *Builder) WithRequirement(action string, tags ...permission.Tag) *Builder {
	b.actions = append(b.actions, action)
	if tags == nil {
		tags = []permission.Tag{}
	}
	b.requirements[action] = tags
	return b
}

// WithRequirements adds a batch of requirements. Actions are registered in
// sorted order so Build failures are deterministic.
func (b *Builder) WithRequirements(reqs map[string][]permission.Tag) *Builder {
	keys := make([]string, 0, len(reqs))
	for action := range reqs {
		keys = append(keys, action)
	}
	sort.Strings(keys)
	for _, action := range keys {
		b.WithRequirement(action, reqs[action]...)
	}
	return b
}

// WithAuditSink sets the sink receiving denial events. Ignored unless
// Config.Audit.Enabled is set.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric counters.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the evaluation latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, freezes the requirement registry, and
// returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	if err := b.config.Validate(); err != nil {
		return nil, err
	}

	registry, err := buildRegistry(b.actions, b.requirements)
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:  b.config,
		audit:   newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics: NewMetrics(b.config.Metrics),
	}
	engine.registry.Store(registry)

	b.built = true

	return engine, nil
}

// buildRegistry registers actions in order and freezes the result. A
// duplicate action fails the whole build rather than silently overwriting;
// two requirements for one action is a configuration bug.
func buildRegistry(actions []string, reqs map[string][]permission.Tag) (*permission.Registry, error) {
	registry := permission.NewRegistry()
	seen := make(map[string]struct{}, len(actions))

	for _, action := range actions {
		if _, dup := seen[action]; dup {
			return nil, permission.ErrDuplicateRegistration
		}
		seen[action] = struct{}{}
		if err := registry.Register(action, reqs[action]); err != nil {
			return nil, err
		}
	}

	registry.Freeze()
	return registry, nil
}
