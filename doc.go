// Package sessiontrack provides a minimal session tracker: it records a login
// timestamp and identifier in a persistent key-value store, validates records against
// a fixed time-to-live window, and exposes helpers to gate access and report remaining
// session time.
//
// The package is designed around injected collaborators: Tracker methods are safe to call
// from multiple goroutines after initialization through [Builder.Build] as long as the
// configured storage backend is.
//
// # Architecture boundaries
//
// sessiontrack is the public surface. It exposes [Tracker], [Builder], [Config], and value
// types (MetricsSnapshot, AuditEvent, etc.). The record wire format lives in the record
// sub-package and storage backends live in the store sub-package; neither imports this
// package back.
//
// # What this package must NOT do
//
//   - Verify credentials, sign tokens, or talk to an authentication backend. A record
//     is written on the caller's say-so and trusted unconditionally, clock included.
//   - Expose storage clients or encoding details in its public API beyond the
//     [store.Storage] port.
//   - Sweep expired records in the background. Expiry is lazy: it is detected and
//     cleaned up only when a validity check touches the record.
//
// # Failure contract
//
// No operation surfaces a fault to the ultimate caller as a panic. Absent records are
// normal and signaled by falsy returns; corrupt records are reported to the configured
// [AuditSink] and degrade to "not logged in" semantics; storage read failures degrade
// the same way. Every operation is a single synchronous attempt, no retries.
package sessiontrack
