package dispatch

import "context"

// Replier delivers command output back to whoever issued the command.
type Replier interface {
	// Acknowledge sends the immediate response to a command.
	Acknowledge(ctx context.Context, text string) error

	// Send posts a follow-up message after the command has done its work.
	Send(ctx context.Context, text string) error
}
