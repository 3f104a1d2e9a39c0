package actiongate

// PolicyMode selects what happens when an action has no requirement entry
// at any resolution step. The zero value is invalid on purpose: historical
// integrations disagreed on the default, so the flag is required, explicit
// configuration and the integrator chooses.
type PolicyMode uint8

const (
	// PolicyModeUnset is the invalid zero value; Build rejects it.
	PolicyModeUnset PolicyMode = iota
	// PolicyAllowUnconfigured permits requests to unconfigured actions.
	PolicyAllowUnconfigured
	// PolicyDenyUnconfigured denies requests to unconfigured actions and
	// flags the denial as an operator misconfiguration.
	PolicyDenyUnconfigured
)

// Config defines the process-wide engine configuration. It is read-only
// after Build; reconfiguring requirements at runtime goes through
// [Engine.ReplaceRequirements].
type Config struct {
	Policy  PolicyConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

// PolicyConfig controls the decision for unconfigured actions.
type PolicyConfig struct {
	Mode PolicyMode
}

// AuditConfig controls the asynchronous audit event dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the evaluating request
	// when the dispatcher buffer is full.
	DropIfFull bool
}

// MetricsConfig controls the in-process metric counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// Validate checks the configuration for use by Build.
func (c Config) Validate() error {
	switch c.Policy.Mode {
	case PolicyAllowUnconfigured, PolicyDenyUnconfigured:
		return nil
	default:
		return ErrPolicyModeRequired
	}
}
