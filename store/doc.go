// Package store defines the persistent key-value port the tracker writes
// session records through, plus the bundled backends: an in-memory map, a
// Redis client adapter, and a single-file SQLite database.
//
// The contract is a synchronous string-keyed, string-valued mapping with
// Get, Set, and Remove. Absence is signaled by [ErrNoRecord], never by an
// empty value. Backends persist for as long as their medium does: the memory
// backend lives with the process, the SQLite backend survives restarts, and
// Redis persists per its own configuration.
//
// # What this package must NOT do
//
//   - Interpret values. Expiry, corruption handling, and record semantics
//     belong to the tracker; backends move opaque strings.
//   - Expire keys on its own. TTLs are deliberately not set on the Redis
//     backend so that expiry stays lazy and observable by the tracker.
package store
