package sessiontrack

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/mzkv/sessiontrack/store"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(start time.Time) *fakeClock {
	return &fakeClock{now: start}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fakeNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (n *fakeNavigator) Navigate(_ context.Context, target string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.targets = append(n.targets, target)
}

func (n *fakeNavigator) Targets() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.targets))
	copy(out, n.targets)
	return out
}

var testEpoch = time.UnixMilli(1_700_000_000_000)

func newTrackerTest(t *testing.T) (*Tracker, *store.Memory, *fakeClock, *fakeNavigator) {
	t.Helper()

	mem := store.NewMemory()
	clock := newFakeClock(testEpoch)
	nav := &fakeNavigator{}

	cfg := DefaultConfig()
	cfg.Metrics.Enabled = true

	tracker, err := New().
		WithConfig(cfg).
		WithStorage(mem).
		WithClock(clock).
		WithNavigator(nav).
		Build()
	if err != nil {
		t.Fatalf("build tracker: %v", err)
	}
	t.Cleanup(tracker.Close)

	return tracker, mem, clock, nav
}

func TestAbsentKeySemantics(t *testing.T) {
	tracker, _, _, _ := newTrackerTest(t)
	ctx := context.Background()

	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true for a key never written")
	}
	if rec, ok := tracker.Data(ctx, KeyUserSession); ok || rec != nil {
		t.Fatalf("Data returned %v, %v for a key never written", rec, ok)
	}
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingNotLoggedIn {
		t.Fatalf("RemainingTime = %q, want %q", got, RemainingNotLoggedIn)
	}
}

func TestLoginThenValidAndData(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if !tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid false immediately after login")
	}

	rec, ok := tracker.Data(ctx, KeyUserSession)
	if !ok {
		t.Fatal("Data absent immediately after login")
	}
	if rec.Username != "alice" {
		t.Fatalf("username = %q, want alice", rec.Username)
	}
	if rec.LoginTime != clock.Now().UnixMilli() {
		t.Fatalf("loginTime = %d, want %d", rec.LoginTime, clock.Now().UnixMilli())
	}
}

func TestLoginOverwritesExistingRecord(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("first login: %v", err)
	}
	clock.Advance(time.Hour)
	if err := tracker.Login(ctx, KeyUserSession, "bob"); err != nil {
		t.Fatalf("second login: %v", err)
	}

	rec, ok := tracker.Data(ctx, KeyUserSession)
	if !ok {
		t.Fatal("Data absent after overwrite")
	}
	if rec.Username != "bob" {
		t.Fatalf("username = %q, want bob", rec.Username)
	}
	if rec.LoginTime != clock.Now().UnixMilli() {
		t.Fatal("loginTime not refreshed on overwrite")
	}
}

func TestLazyExpiryIsDestructive(t *testing.T) {
	tracker, mem, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}

	clock.Advance(DefaultWindow + time.Millisecond)

	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true past the window")
	}
	if mem.Len() != 0 {
		t.Fatalf("expired record not removed, %d keys left", mem.Len())
	}
	// Expiry is destructive, not advisory: a later Data sees nothing.
	if _, ok := tracker.Data(ctx, KeyUserSession); ok {
		t.Fatal("Data found a record after destructive expiry")
	}
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingNotLoggedIn {
		t.Fatalf("RemainingTime = %q after destructive expiry, want %q", got, RemainingNotLoggedIn)
	}
}

func TestWindowBoundarySemantics(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}

	clock.Advance(DefaultWindow)

	// Elapsed == window is still valid, but zero time remains.
	if !tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid false at exactly the window boundary")
	}
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingExpired {
		t.Fatalf("RemainingTime = %q at exactly the window boundary, want %q", got, RemainingExpired)
	}
}

func TestDataIgnoresExpiry(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(DefaultWindow + time.Hour)

	// Data does not check freshness; as long as no validity check has
	// evicted the record, it comes back.
	rec, ok := tracker.Data(ctx, KeyUserSession)
	if !ok || rec.Username != "alice" {
		t.Fatalf("Data = %v, %v for an expired-but-present record", rec, ok)
	}
}

func TestRemainingTimeImmediatelyAfterLogin(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(time.Second)

	if got := tracker.RemainingTime(ctx, KeyUserSession); got != "23h 59m" {
		t.Fatalf("RemainingTime = %q right after login, want %q", got, "23h 59m")
	}
}

func TestRemainingTimeAfterPartialElapse(t *testing.T) {
	tracker, _, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	clock.Advance(2*time.Hour + 30*time.Minute)

	if got := tracker.RemainingTime(ctx, KeyUserSession); got != "21h 30m" {
		t.Fatalf("RemainingTime = %q, want %q", got, "21h 30m")
	}
}

func TestLogoutRemovesAndNavigates(t *testing.T) {
	tracker, mem, _, nav := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if err := tracker.Logout(ctx, KeyUserSession, "/goodbye"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true after logout")
	}
	if mem.Len() != 0 {
		t.Fatal("record survived logout")
	}

	targets := nav.Targets()
	if len(targets) != 1 || targets[0] != "/goodbye" {
		t.Fatalf("navigation targets = %v, want [/goodbye]", targets)
	}
}

func TestLogoutOnMissingKeyStillNavigates(t *testing.T) {
	tracker, _, _, nav := newTrackerTest(t)

	if err := tracker.Logout(context.Background(), KeyUserSession, "/goodbye"); err != nil {
		t.Fatalf("logout of missing key: %v", err)
	}
	if got := nav.Targets(); len(got) != 1 {
		t.Fatalf("navigation targets = %v, want one entry", got)
	}
}

func TestProtectNavigatesOnlyWhenInvalid(t *testing.T) {
	tracker, _, clock, nav := newTrackerTest(t)
	ctx := context.Background()

	if tracker.Protect(ctx, KeyUserSession, "/login") {
		t.Fatal("Protect passed with no record")
	}
	if got := nav.Targets(); len(got) != 1 || got[0] != "/login" {
		t.Fatalf("navigation targets = %v after guarded miss, want [/login]", got)
	}

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !tracker.Protect(ctx, KeyUserSession, "/login") {
		t.Fatal("Protect rejected a valid session")
	}
	if got := nav.Targets(); len(got) != 1 {
		t.Fatalf("Protect navigated on a valid session: %v", got)
	}

	clock.Advance(DefaultWindow + time.Minute)
	if tracker.Protect(ctx, KeyUserSession, "/login") {
		t.Fatal("Protect passed an expired session")
	}
	if got := nav.Targets(); len(got) != 2 {
		t.Fatalf("navigation targets = %v after expiry, want two entries", got)
	}
}

func TestCorruptRecordCleanup(t *testing.T) {
	tracker, mem, _, _ := newTrackerTest(t)
	ctx := context.Background()

	seedCorrupt := func() {
		if err := mem.Set(ctx, KeyUserSession, "{{not json"); err != nil {
			t.Fatalf("seed corrupt record: %v", err)
		}
	}

	seedCorrupt()
	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true for corrupt record")
	}
	if mem.Len() != 0 {
		t.Fatal("IsValid left the corrupt record in place")
	}

	seedCorrupt()
	if _, ok := tracker.Data(ctx, KeyUserSession); ok {
		t.Fatal("Data returned a corrupt record")
	}
	if mem.Len() != 0 {
		t.Fatal("Data left the corrupt record in place")
	}

	seedCorrupt()
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingError {
		t.Fatalf("RemainingTime = %q for corrupt record, want %q", got, RemainingError)
	}
	if mem.Len() != 0 {
		t.Fatal("RemainingTime left the corrupt record in place")
	}
}

func TestValidJSONMissingLoginTimeIsCorrupt(t *testing.T) {
	tracker, mem, _, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := mem.Set(ctx, KeyUserSession, `{"username":"alice"}`); err != nil {
		t.Fatalf("seed record: %v", err)
	}
	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid accepted a record without loginTime")
	}
	if mem.Len() != 0 {
		t.Fatal("record without loginTime not cleaned up")
	}
}

func TestKeyIsolation(t *testing.T) {
	tracker, _, _, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("user login: %v", err)
	}
	if err := tracker.Login(ctx, KeyAdminSession, "root"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	if err := tracker.Logout(ctx, KeyAdminSession, "/bye"); err != nil {
		t.Fatalf("admin logout: %v", err)
	}

	if tracker.IsValid(ctx, KeyAdminSession) {
		t.Fatal("admin session survived its logout")
	}
	if !tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("user session was affected by the admin logout")
	}
}

func TestKeyPrefixScopesStorage(t *testing.T) {
	mem := store.NewMemory()
	cfg := DefaultConfig()
	cfg.Session.KeyPrefix = "tenant42"

	tracker, err := New().
		WithConfig(cfg).
		WithStorage(mem).
		WithClock(newFakeClock(testEpoch)).
		Build()
	if err != nil {
		t.Fatalf("build tracker: %v", err)
	}
	t.Cleanup(tracker.Close)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}

	if _, err := mem.Get(ctx, "tenant42:"+KeyUserSession); err != nil {
		t.Fatalf("prefixed key not found in storage: %v", err)
	}
	if _, err := mem.Get(ctx, KeyUserSession); !errors.Is(err, store.ErrNoRecord) {
		t.Fatal("unprefixed key unexpectedly present in storage")
	}
}

func TestLoginInputValidation(t *testing.T) {
	tracker, _, _, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, "", "alice"); !errors.Is(err, ErrKeyEmpty) {
		t.Fatalf("empty key error = %v, want ErrKeyEmpty", err)
	}
	if err := tracker.Login(ctx, KeyUserSession, ""); !errors.Is(err, ErrUsernameEmpty) {
		t.Fatalf("empty username error = %v, want ErrUsernameEmpty", err)
	}
}

type failingStorage struct{}

func (failingStorage) Get(context.Context, string) (string, error) {
	return "", errors.New("backend down")
}
func (failingStorage) Set(context.Context, string, string) error {
	return errors.New("backend down")
}
func (failingStorage) Remove(context.Context, string) error {
	return errors.New("backend down")
}

func TestStorageFailureDegradesToNotLoggedIn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.Enabled = true

	tracker, err := New().
		WithConfig(cfg).
		WithStorage(failingStorage{}).
		WithClock(newFakeClock(testEpoch)).
		Build()
	if err != nil {
		t.Fatalf("build tracker: %v", err)
	}
	t.Cleanup(tracker.Close)
	ctx := context.Background()

	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true on a failing backend")
	}
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingNotLoggedIn {
		t.Fatalf("RemainingTime = %q on a failing backend, want %q", got, RemainingNotLoggedIn)
	}
	if err := tracker.Login(ctx, KeyUserSession, "alice"); err == nil {
		t.Fatal("Login succeeded on a failing backend")
	}

	snap := tracker.MetricsSnapshot()
	if snap.Counters[MetricStorageError] == 0 {
		t.Fatal("storage failures not counted")
	}
}

func TestMetricsCountersTrackOperations(t *testing.T) {
	tracker, mem, clock, _ := newTrackerTest(t)
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); err != nil {
		t.Fatalf("login: %v", err)
	}
	// One valid hit, one absent miss.
	tracker.IsValid(ctx, KeyUserSession)
	tracker.IsValid(ctx, KeyAdminSession)

	// One expired eviction.
	clock.Advance(DefaultWindow + time.Minute)
	tracker.IsValid(ctx, KeyUserSession)

	// One corrupt eviction.
	_ = mem.Set(ctx, KeyUserSession, "garbage")
	tracker.IsValid(ctx, KeyUserSession)

	snap := tracker.MetricsSnapshot()
	expect := map[MetricID]uint64{
		MetricLoginRecorded:  1,
		MetricLookupValid:    1,
		MetricLookupAbsent:   1,
		MetricExpiredEvicted: 1,
		MetricCorruptEvicted: 1,
	}
	for id, want := range expect {
		if got := snap.Counters[id]; got != want {
			t.Fatalf("counter %d = %d, want %d", id, got, want)
		}
	}
}

func TestNilTrackerDegradesOnEveryOperation(t *testing.T) {
	var tracker *Tracker
	ctx := context.Background()

	if err := tracker.Login(ctx, KeyUserSession, "alice"); !errors.Is(err, ErrTrackerNotReady) {
		t.Fatalf("Login on nil tracker error = %v, want ErrTrackerNotReady", err)
	}
	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true on nil tracker")
	}
	if rec, ok := tracker.Data(ctx, KeyUserSession); ok || rec != nil {
		t.Fatalf("Data on nil tracker = %v, %v", rec, ok)
	}
	if err := tracker.Logout(ctx, KeyUserSession, "/login"); !errors.Is(err, ErrTrackerNotReady) {
		t.Fatalf("Logout on nil tracker error = %v, want ErrTrackerNotReady", err)
	}
	if tracker.Protect(ctx, KeyUserSession, "/login") {
		t.Fatal("Protect true on nil tracker")
	}
	if got := tracker.RemainingTime(ctx, KeyUserSession); got != RemainingNotLoggedIn {
		t.Fatalf("RemainingTime on nil tracker = %q, want %q", got, RemainingNotLoggedIn)
	}
	if got := tracker.Window(); got != 0 {
		t.Fatalf("Window on nil tracker = %v, want 0", got)
	}
	if got := tracker.AuditDropped(); got != 0 {
		t.Fatalf("AuditDropped on nil tracker = %d, want 0", got)
	}
	snap := tracker.MetricsSnapshot()
	if len(snap.Counters) != 0 || len(snap.Histograms) != 0 {
		t.Fatalf("MetricsSnapshot on nil tracker not empty: %+v", snap)
	}
	tracker.Close()
}

func TestZeroValueTrackerDegradesWithoutNavigating(t *testing.T) {
	// A Tracker built without Build() has no storage and no navigator; guard
	// paths must not reach the navigator port.
	tracker := &Tracker{}
	ctx := context.Background()

	if tracker.Protect(ctx, KeyUserSession, "/login") {
		t.Fatal("Protect true on zero-value tracker")
	}
	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true on zero-value tracker")
	}
	if err := tracker.Login(ctx, KeyUserSession, "alice"); !errors.Is(err, ErrTrackerNotReady) {
		t.Fatalf("Login on zero-value tracker error = %v, want ErrTrackerNotReady", err)
	}
}

func TestAuditEmitsCorruptRecordEvent(t *testing.T) {
	mem := store.NewMemory()
	sink := NewChannelSink(16)

	cfg := DefaultConfig()
	cfg.Audit.Enabled = true

	tracker, err := New().
		WithConfig(cfg).
		WithStorage(mem).
		WithClock(newFakeClock(testEpoch)).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build tracker: %v", err)
	}
	t.Cleanup(tracker.Close)
	ctx := context.Background()

	if err := mem.Set(ctx, KeyUserSession, "garbage"); err != nil {
		t.Fatalf("seed corrupt record: %v", err)
	}
	if tracker.IsValid(ctx, KeyUserSession) {
		t.Fatal("IsValid true for corrupt record")
	}

	select {
	case event := <-sink.Events():
		if event.EventType != AuditRecordCorrupt {
			t.Fatalf("event type = %q, want %q", event.EventType, AuditRecordCorrupt)
		}
		if event.Key != KeyUserSession {
			t.Fatalf("event key = %q, want %q", event.Key, KeyUserSession)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit event within deadline")
	}
}
