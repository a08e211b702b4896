// Package middleware exposes HTTP adapters for the session tracker: a page
// guard that redirects unauthenticated requests and a logout handler.
//
// # Guards
//
//   - [Guard] — wraps a handler; redirects to the login target when the
//     session key holds no valid record, otherwise injects the record into
//     the request context.
//   - [LogoutHandler] — deletes the session record and redirects.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Tracker calls. It does NOT
// implement validity logic itself — all decisions are delegated to
// Tracker.IsValid and Tracker.Logout. Redirects are issued directly on the
// ResponseWriter rather than through the tracker's Navigator port, because
// an HTTP redirect is scoped to one request.
//
// # What this package must NOT do
//
//   - Parse or write session records (delegates to Tracker).
//   - Access storage backends directly.
//   - Validate redirect targets; they are passed through as configured.
package middleware
