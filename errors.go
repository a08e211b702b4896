package sessiontrack

import "errors"

var (
	// ErrStorageRequired is an exported constant or variable used by the session tracker.
	ErrStorageRequired = errors.New("storage backend required")
	// ErrKeyEmpty is an exported constant or variable used by the session tracker.
	ErrKeyEmpty = errors.New("session key must not be empty")
	// ErrUsernameEmpty is an exported constant or variable used by the session tracker.
	ErrUsernameEmpty = errors.New("username must not be empty")
	// ErrTrackerNotReady is an exported constant or variable used by the session tracker.
	ErrTrackerNotReady = errors.New("tracker not initialized")
)
