// Package permission holds the permission data model of actiongate: opaque
// tags, per-request granted sets, the action-to-requirement registry, and
// the override resolution order that finds the effective requirement for an
// action/method pair.
//
// A Registry is configured once, frozen, and then read concurrently by any
// number of request evaluations. Granted Sets are per-request values and are
// never shared between requests.
package permission
