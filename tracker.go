package sessiontrack

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mzkv/sessiontrack/record"
	"github.com/mzkv/sessiontrack/store"
)

// Sentinel strings returned by [Tracker.RemainingTime].
const (
	// RemainingNotLoggedIn is an exported constant or variable used by the session tracker.
	RemainingNotLoggedIn = "Not logged in"
	// RemainingExpired is an exported constant or variable used by the session tracker.
	RemainingExpired = "Expired"
	// RemainingError is an exported constant or variable used by the session tracker.
	RemainingError = "Error"
)

// loadOutcome is the enumerated result of reading one session key. Every public
// read path (IsValid, Data, RemainingTime) is built on top of it so the
// parse-and-check logic exists exactly once.
type loadOutcome int

const (
	outcomeValid loadOutcome = iota
	outcomeAbsent
	outcomeExpired
	outcomeCorrupt
)

// Tracker defines a public type used by sessiontrack APIs.
//
// Tracker instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Tracker struct {
	config  Config
	storage store.Storage
	clock   Clock
	nav     Navigator
	metrics *Metrics
	audit   *auditDispatcher
}

// Close describes the close operation and its observable behavior.
func (t *Tracker) Close() {
	if t == nil {
		return
	}
	if t.audit != nil {
		t.audit.Close()
	}
}

// AuditDropped describes the auditdropped operation and its observable behavior.
func (t *Tracker) AuditDropped() uint64 {
	if t == nil || t.audit == nil {
		return 0
	}
	return t.audit.Dropped()
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (t *Tracker) MetricsSnapshot() MetricsSnapshot {
	if t == nil || t.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return t.metrics.Snapshot()
}

// Window returns the configured session validity window.
func (t *Tracker) Window() time.Duration {
	if t == nil {
		return 0
	}
	return t.config.Session.Window
}

func (t *Tracker) metricInc(id MetricID) {
	if t == nil || t.metrics == nil {
		return
	}
	t.metrics.Inc(id)
}

func (t *Tracker) auditEmit(ctx context.Context, event AuditEvent) {
	if t == nil || t.audit == nil {
		return
	}
	event.Timestamp = t.clock.Now()
	t.audit.Emit(ctx, event)
}

func (t *Tracker) storageKey(key string) string {
	if t.config.Session.KeyPrefix == "" {
		return key
	}
	return t.config.Session.KeyPrefix + ":" + key
}

// Login describes the login operation and its observable behavior.
//
// Login writes a session record under key with the login time stamped from the
// configured clock, overwriting any existing record. It performs no credential
// verification; the caller's external login flow has already decided.
//
// Login may return an error when input validation or the storage write fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) Login(ctx context.Context, key, username string) error {
	if t == nil || t.storage == nil {
		return ErrTrackerNotReady
	}
	if key == "" {
		return ErrKeyEmpty
	}
	if username == "" {
		return ErrUsernameEmpty
	}

	rec := record.New(username, t.clock.Now())
	raw, err := record.Encode(rec)
	if err != nil {
		return err
	}

	if err := t.storage.Set(ctx, t.storageKey(key), raw); err != nil {
		t.metricInc(MetricStorageError)
		t.auditEmit(ctx, AuditEvent{EventType: AuditStorageFailure, Key: key, Error: err.Error()})
		return fmt.Errorf("store session record: %w", err)
	}

	t.metricInc(MetricLoginRecorded)
	t.auditEmit(ctx, AuditEvent{EventType: AuditLoginRecorded, Key: key, Username: username})
	return nil
}

// IsValid describes the isvalid operation and its observable behavior.
//
// IsValid reports whether a non-expired record exists under key. Expired and
// corrupt records are removed on detection (lazy, destructive expiry) and
// report false. A missing record is not an error, it simply reports false.
//
// IsValid does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) IsValid(ctx context.Context, key string) bool {
	if t == nil || t.storage == nil {
		return false
	}

	start := time.Now()
	outcome, _ := t.load(ctx, key)
	if t.metrics != nil {
		t.metrics.Observe(MetricLookupLatency, time.Since(start))
	}

	switch outcome {
	case outcomeValid:
		t.metricInc(MetricLookupValid)
		return true
	case outcomeExpired:
		t.evict(ctx, key, MetricExpiredEvicted, AuditRecordExpired, "")
		return false
	case outcomeCorrupt:
		t.evict(ctx, key, MetricCorruptEvicted, AuditRecordCorrupt, "deserialization failed")
		return false
	default:
		t.metricInc(MetricLookupAbsent)
		return false
	}
}

// Data describes the data operation and its observable behavior.
//
// Data returns the stored record under key without checking expiry; callers
// that care about freshness must ask IsValid separately. Corrupt records are
// removed and reported as absent, same cleanup policy as IsValid.
//
// Data does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) Data(ctx context.Context, key string) (*record.Record, bool) {
	if t == nil || t.storage == nil {
		return nil, false
	}

	outcome, rec := t.load(ctx, key)
	switch outcome {
	case outcomeValid, outcomeExpired:
		return rec, true
	case outcomeCorrupt:
		t.evict(ctx, key, MetricCorruptEvicted, AuditRecordCorrupt, "deserialization failed")
		return nil, false
	default:
		return nil, false
	}
}

// Logout describes the logout operation and its observable behavior.
//
// Logout deletes the record under key unconditionally, valid or not, then
// fires a navigation to redirectTarget. The target is not validated and the
// navigation outcome is not awaited.
//
// Logout may return an error when the storage delete fails; navigation still fires.
// Logout does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) Logout(ctx context.Context, key, redirectTarget string) error {
	if t == nil || t.storage == nil {
		return ErrTrackerNotReady
	}

	err := t.storage.Remove(ctx, t.storageKey(key))
	if err != nil {
		t.metricInc(MetricStorageError)
		t.auditEmit(ctx, AuditEvent{EventType: AuditStorageFailure, Key: key, Error: err.Error()})
	} else {
		t.metricInc(MetricLogout)
		t.auditEmit(ctx, AuditEvent{EventType: AuditLogout, Key: key})
	}

	t.navigate(ctx, redirectTarget)
	return err
}

// Protect describes the protect operation and its observable behavior.
//
// Protect is the page guard: it answers IsValid and, when the answer is false,
// fires a navigation to loginTarget. When valid it produces no side effect.
//
// Protect does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) Protect(ctx context.Context, key, loginTarget string) bool {
	if t == nil || t.storage == nil {
		return false
	}
	if t.IsValid(ctx, key) {
		return true
	}

	t.navigate(ctx, loginTarget)
	return false
}

// RemainingTime describes the remainingtime operation and its observable behavior.
//
// RemainingTime reports the time left in the session window as "{hours}h
// {minutes}m" with floor division, or one of the sentinel strings
// [RemainingNotLoggedIn], [RemainingExpired], [RemainingError].
//
// RemainingTime does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (t *Tracker) RemainingTime(ctx context.Context, key string) string {
	if t == nil || t.storage == nil {
		return RemainingNotLoggedIn
	}

	outcome, rec := t.load(ctx, key)
	switch outcome {
	case outcomeAbsent:
		return RemainingNotLoggedIn
	case outcomeCorrupt:
		t.evict(ctx, key, MetricCorruptEvicted, AuditRecordCorrupt, "deserialization failed")
		return RemainingError
	}

	remaining := rec.Remaining(t.config.Session.Window, t.clock.Now())
	if remaining <= 0 {
		return RemainingExpired
	}
	return formatRemaining(remaining)
}

// load reads and classifies one session key. It never deletes; cleanup
// decisions belong to the callers so that Data can keep expired records.
func (t *Tracker) load(ctx context.Context, key string) (loadOutcome, *record.Record) {
	raw, err := t.storage.Get(ctx, t.storageKey(key))
	if errors.Is(err, store.ErrNoRecord) {
		return outcomeAbsent, nil
	}
	if err != nil {
		// Storage faults degrade to "not logged in", surfaced only on the
		// diagnostic channel.
		t.metricInc(MetricStorageError)
		t.auditEmit(ctx, AuditEvent{EventType: AuditStorageFailure, Key: key, Error: err.Error()})
		return outcomeAbsent, nil
	}

	rec, err := record.Decode(raw)
	if err != nil {
		return outcomeCorrupt, nil
	}

	if rec.Expired(t.config.Session.Window, t.clock.Now()) {
		return outcomeExpired, rec
	}

	return outcomeValid, rec
}

func (t *Tracker) evict(ctx context.Context, key string, metric MetricID, eventType, detail string) {
	_ = t.storage.Remove(ctx, t.storageKey(key))
	t.metricInc(metric)
	t.auditEmit(ctx, AuditEvent{EventType: eventType, Key: key, Error: detail})
}

func (t *Tracker) navigate(ctx context.Context, target string) {
	t.metricInc(MetricRedirect)
	t.auditEmit(ctx, AuditEvent{EventType: AuditRedirect, Target: target})
	t.nav.Navigate(ctx, target)
}

func formatRemaining(remaining time.Duration) string {
	ms := remaining.Milliseconds()
	hours := ms / 3_600_000
	minutes := (ms % 3_600_000) / 60_000
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
