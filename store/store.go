package store

import (
	"context"
	"errors"
)

// ErrNoRecord is returned by Get when no value exists under the key.
var ErrNoRecord = errors.New("no record under key")

// Storage defines a public type used by sessiontrack APIs.
//
// Storage is the persistent store port: a synchronous string-keyed,
// string-valued mapping. Implementations must report absence with
// [ErrNoRecord] and must treat Remove of a missing key as a no-op.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
