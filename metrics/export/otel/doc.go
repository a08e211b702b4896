// Package otel exports tracker metrics through OpenTelemetry observable
// instruments. Counters are observed from snapshots on each collection cycle;
// histograms surface as per-bucket cumulative gauges because the core
// snapshot stores raw bucket counts, not recorded samples.
package otel
