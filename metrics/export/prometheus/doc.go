// Package prometheus renders tracker metrics in the Prometheus text
// exposition format, hand-written to stay dependency-free on the scrape path.
//
// Wire [PrometheusExporter.Handler] onto a mux route (typically /metrics) and
// point a scraper at it.
package prometheus
