// Package metric records configuration persistence metrics in Prometheus
// format.
//
// The CLI is short-lived, so nothing is served over HTTP. Metrics are
// written to a textfile after each run for the node exporter's textfile
// collector to pick up.
package metric
