package permission

import "net/http"

// SetupAction is the conventional registry entry holding chain-wide default
// requirements. It is consulted only after both the direct and the
// method-suffixed lookups miss.
const SetupAction = "setup"

// MatchKind reports which resolution step produced the effective
// requirement.
type MatchKind uint8

const (
	// MatchNone means no entry was found at any step; the action is
	// unconfigured.
	MatchNone MatchKind = iota
	// MatchDirect means the action's own entry matched.
	MatchDirect
	// MatchMethodOverride means the method-suffixed entry matched
	// (for example "create_POST").
	MatchMethodOverride
	// MatchSetupFallback means the "setup" entry matched.
	MatchSetupFallback
)

func (k MatchKind) String() string {
	switch k {
	case MatchDirect:
		return "direct"
	case MatchMethodOverride:
		return "method_override"
	case MatchSetupFallback:
		return "setup_fallback"
	default:
		return "none"
	}
}

// ResolveOverride finds the effective requirement for an action/method pair.
// The order is fixed:
//
//  1. the action's own entry
//  2. for non-GET methods only, the method-suffixed entry
//     (action + "_" + method)
//  3. the "setup" entry
//
// The first entry found wins; an explicit empty requirement at an earlier
// step shadows later steps. [MatchNone] means all steps missed and the
// caller must apply its unconfigured policy.
func ResolveOverride(reg *Registry, action, method string) ([]Tag, MatchKind) {
	if tags, ok := reg.Lookup(action); ok {
		return tags, MatchDirect
	}

	if method != http.MethodGet {
		if tags, ok := reg.Lookup(action + "_" + method); ok {
			return tags, MatchMethodOverride
		}
	}

	if tags, ok := reg.Lookup(SetupAction); ok {
		return tags, MatchSetupFallback
	}

	return nil, MatchNone
}
