// Package otel exports actiongate engine metrics through OpenTelemetry
// observable instruments registered on a caller-supplied meter.
package otel
