package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/elijahcutler/helix/internal/dispatch"
)

// terminalReplier prints every reply on its own line.
type terminalReplier struct {
	mu sync.Mutex // serializes writes from concurrent commands
	w  io.Writer
}

func newTerminalReplier(w io.Writer) *terminalReplier {
	return &terminalReplier{w: w}
}

func (t *terminalReplier) Acknowledge(ctx context.Context, text string) error {
	return t.write(ctx, text)
}

func (t *terminalReplier) Send(ctx context.Context, text string) error {
	return t.write(ctx, text)
}

func (t *terminalReplier) write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	_, err := fmt.Fprintln(t.w, text)
	return err
}

// containerAction is a dispatcher operation that targets one container.
type containerAction func(d *dispatch.Dispatcher, ctx context.Context, r dispatch.Replier, name string) error

// NewCtlCmd creates the ctl command group, which runs bot commands locally
// and prints the replies instead of posting them to Discord.
func NewCtlCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctl",
		Short: "Run bot commands from the terminal",
	}

	cmd.AddCommand(newCtlContainerCmd(a, "start", "Start a container", (*dispatch.Dispatcher).Start))
	cmd.AddCommand(newCtlContainerCmd(a, "restart", "Restart a container", (*dispatch.Dispatcher).Restart))
	cmd.AddCommand(newCtlContainerCmd(a, "stop", "Stop a container", (*dispatch.Dispatcher).Stop))
	cmd.AddCommand(newCtlContainerCmd(a, "status", "Check whether a container is running", (*dispatch.Dispatcher).Status))
	cmd.AddCommand(newCtlContainerCmd(a, "logs", "Show a container's recent logs", (*dispatch.Dispatcher).Logs))
	cmd.AddCommand(newCtlListCmd(a))

	return cmd
}

func newCtlContainerCmd(a *App, use, short string, action containerAction) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <container-name>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, release, err := a.ctlDispatcher()
			if err != nil {
				return err
			}
			defer release()
			return action(d, cmd.Context(), newTerminalReplier(cmd.OutOrStdout()), args[0])
		},
	}
}

func newCtlListCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all containers with their state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, release, err := a.ctlDispatcher()
			if err != nil {
				return err
			}
			defer release()
			return d.List(cmd.Context(), newTerminalReplier(cmd.OutOrStdout()))
		},
	}
}

// ctlDispatcher wires a dispatcher without requiring a bot token.
func (a *App) ctlDispatcher() (*dispatch.Dispatcher, func(), error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return a.wireDispatcher(cfg)
}
