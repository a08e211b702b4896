package record

import "time"

// Record defines a public type used by sessiontrack APIs.
//
// Record instances are created by Tracker.Login and treated as immutable afterwards.
type Record struct {
	Username  string `json:"username"`
	LoginTime int64  `json:"loginTime"` // milliseconds since epoch
}

// New returns a record stamped at the given login instant.
func New(username string, loginAt time.Time) *Record {
	return &Record{
		Username:  username,
		LoginTime: loginAt.UnixMilli(),
	}
}

// LoginAt returns the login instant as a time.Time.
func (r *Record) LoginAt() time.Time {
	return time.UnixMilli(r.LoginTime)
}

// Age returns now - loginTime. A negative age means the record was written
// by a clock ahead of now; callers treat it as zero elapsed.
func (r *Record) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-r.LoginTime) * time.Millisecond
}

// Expired reports whether the record has outlived the window at the given
// instant. The boundary itself is still valid: age == window is not expired.
func (r *Record) Expired(window time.Duration, now time.Time) bool {
	return r.Age(now) > window
}

// Remaining returns window - age, which is <= 0 once the record is expired.
func (r *Record) Remaining(window time.Duration, now time.Time) time.Duration {
	return window - r.Age(now)
}
