package middleware

import (
	"context"
	"net/http"

	sessiontrack "github.com/mzkv/sessiontrack"
	"github.com/mzkv/sessiontrack/record"
)

type recordContextKey struct{}

// RecordFromContext returns the session record injected by [Guard].
func RecordFromContext(ctx context.Context) (*record.Record, bool) {
	rec, ok := ctx.Value(recordContextKey{}).(*record.Record)
	return rec, ok
}

// Guard returns middleware that gates access on the session key. Requests
// without a valid record are redirected to loginURL; valid requests proceed
// with the record available via [RecordFromContext].
func Guard(tracker *sessiontrack.Tracker, key, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tracker == nil {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			if !tracker.IsValid(r.Context(), key) {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			rec, ok := tracker.Data(r.Context(), key)
			if !ok {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}

			ctx := context.WithValue(r.Context(), recordContextKey{}, rec)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LogoutHandler returns a handler that deletes the session record under key
// and redirects to redirectURL regardless of whether a record existed.
func LogoutHandler(tracker *sessiontrack.Tracker, key, redirectURL string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tracker != nil {
			_ = tracker.Logout(r.Context(), key, redirectURL)
		}
		http.Redirect(w, r, redirectURL, http.StatusFound)
	})
}
