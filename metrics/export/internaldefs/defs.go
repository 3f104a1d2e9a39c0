package internaldefs

import (
	actiongate "github.com/mwestra/actiongate"
)

// CounterDef ties a MetricID to its exported name and help text.
type CounterDef struct {
	ID   actiongate.MetricID
	Name string
	Help string
}

// HistogramDef ties a histogram MetricID to its exported name and help text.
type HistogramDef struct {
	ID   actiongate.MetricID
	Name string
	Help string
}

// CounterDefs lists every exported counter, in a fixed order shared by both
// exporters.
var CounterDefs = []CounterDef{
	{ID: actiongate.MetricEvaluateAllow, Name: "actiongate_evaluate_allow_total", Help: "Allowing access decisions."},
	{ID: actiongate.MetricEvaluateDenyInsufficient, Name: "actiongate_evaluate_deny_insufficient_total", Help: "Denials for insufficient permissions."},
	{ID: actiongate.MetricEvaluateDenyMisconfigured, Name: "actiongate_evaluate_deny_misconfigured_total", Help: "Denials for unconfigured actions."},
	{ID: actiongate.MetricResolveDirect, Name: "actiongate_resolve_direct_total", Help: "Requirements resolved from the action's own entry."},
	{ID: actiongate.MetricResolveMethodOverride, Name: "actiongate_resolve_method_override_total", Help: "Requirements resolved from a method-suffixed entry."},
	{ID: actiongate.MetricResolveSetupFallback, Name: "actiongate_resolve_setup_fallback_total", Help: "Requirements resolved from the setup fallback entry."},
	{ID: actiongate.MetricResolveUnconfigured, Name: "actiongate_resolve_unconfigured_total", Help: "Resolutions that found no requirement at any step."},
	{ID: actiongate.MetricGrantSourceError, Name: "actiongate_grant_source_error_total", Help: "Failed granted-permission lookups."},
}

// HistogramDefs lists every exported histogram.
var HistogramDefs = []HistogramDef{
	{ID: actiongate.MetricEvaluateLatency, Name: "actiongate_evaluate_latency_us", Help: "Evaluate latency histogram (microseconds)."},
}

// HistogramBounds are the upper bucket bounds in microseconds.
var HistogramBounds = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"+Inf",
}

// HistogramBoundSuffix are the bounds as metric-name-safe suffixes.
var HistogramBoundSuffix = []string{
	"1",
	"5",
	"10",
	"25",
	"50",
	"100",
	"250",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed width.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts to cumulative counts.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
