package sessiontrack

import "context"

// Navigator defines a public type used by sessiontrack APIs.
//
// Navigator is the navigation collaborator: an external capability to redirect
// the current page (or process) to a given target. Navigation is fire-and-forget;
// the tracker never awaits it, never validates the target, and ignores failures.
type Navigator interface {
	Navigate(ctx context.Context, target string)
}

// NavigatorFunc adapts a plain function to the [Navigator] interface.
type NavigatorFunc func(ctx context.Context, target string)

// Navigate describes the navigate operation and its observable behavior.
func (f NavigatorFunc) Navigate(ctx context.Context, target string) { f(ctx, target) }

// NoOpNavigator discards navigation requests. It is the default when a Builder
// is given no explicit navigator.
type NoOpNavigator struct{}

// Navigate describes the navigate operation and its observable behavior.
func (NoOpNavigator) Navigate(context.Context, string) {}
