package container

import "context"

// Runtime provides the container operations the dispatcher needs.
// Implementations must be safe for concurrent use.
type Runtime interface {
	// Lifecycle runs a start, restart or stop against the named container.
	Lifecycle(ctx context.Context, op Op, name string) Result

	// Running reports whether the named container is currently running.
	// Any invocation failure reports false; the Result carries the detail.
	Running(ctx context.Context, name string) (bool, Result)

	// List returns every container, running or not.
	List(ctx context.Context) ([]Entry, error)

	// Logs returns the last tail lines of combined stdout and stderr.
	Logs(ctx context.Context, name string, tail int) (string, Result)
}
