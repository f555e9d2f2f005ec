// Package metrics exposes run statistics as Prometheus gauges written to a
// node-exporter textfile.
package metrics
