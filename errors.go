package actiongate

import "errors"

var (
	// ErrPolicyModeRequired is returned by Build when Config.Policy.Mode is
	// left at its zero value. The unconfigured-action policy is deliberate
	// required configuration; the engine bakes in no default.
	ErrPolicyModeRequired = errors.New("policy mode must be set explicitly")
	// ErrBuilderUsed is returned when Build is called twice on one Builder.
	ErrBuilderUsed = errors.New("builder already used")
	// ErrEngineNotReady is returned when an Engine method is called on a nil
	// or unbuilt engine.
	ErrEngineNotReady = errors.New("engine not initialized")
	// ErrGrantSourceFailed wraps failures of a GrantedPermissionSource.
	ErrGrantSourceFailed = errors.New("granted permission source failed")
)
