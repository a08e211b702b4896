// Package internaldefs holds the shared metric definitions (names, help
// strings, histogram bounds) used by the prometheus and otel exporters so the
// two surfaces cannot drift apart.
//
// It is internal to the exporters in spirit; nothing outside metrics/export
// should import it.
package internaldefs
