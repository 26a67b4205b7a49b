// Package metrics exports cleanup outcomes to Prometheus.
package metrics
