package sessiontrack

import "time"

// Clock defines a public type used by sessiontrack APIs.
//
// Clock abstracts the ambient wall clock so validity checks can be tested
// deterministically. The tracker only ever calls Now.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to the [Clock] interface.
type ClockFunc func() time.Time

// Now describes the now operation and its observable behavior.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock returns the real wall clock. It is the default when a Builder
// is given no explicit clock.
func SystemClock() Clock { return systemClock{} }
