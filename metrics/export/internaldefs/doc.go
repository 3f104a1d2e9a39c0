// Package internaldefs holds the metric name and help-text tables shared by
// the Prometheus and OpenTelemetry exporters, so both expose identical
// series.
package internaldefs
