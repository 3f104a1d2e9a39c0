// Package prometheus exports actiongate engine metrics in Prometheus text
// exposition format, either as a rendered string or as an http.Handler.
package prometheus
