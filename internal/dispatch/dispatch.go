package dispatch

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"github.com/elijahcutler/helix/internal/container"
)

const (
	// DefaultLogTail is how many log lines Logs fetches when unset.
	DefaultLogTail = 100

	// MaxMessageLen is the longest chat message Logs will produce.
	MaxMessageLen = 2000
)

// Dispatcher turns one command into one runtime call and its replies.
// It holds no per-command state and is safe for concurrent use.
type Dispatcher struct {
	runtime container.Runtime
	icons   Icons
	logTail int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithIcons replaces the state glyph table.
func WithIcons(icons Icons) Option {
	return func(d *Dispatcher) {
		d.icons = icons
	}
}

// WithLogTail sets how many lines Logs fetches.
func WithLogTail(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.logTail = n
		}
	}
}

// New creates a Dispatcher backed by rt.
func New(rt container.Runtime, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		runtime: rt,
		icons:   DefaultIcons(),
		logTail: DefaultLogTail,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start acknowledges, starts the container, then reports whether it runs.
func (d *Dispatcher) Start(ctx context.Context, r Replier, name string) error {
	return d.lifecycle(ctx, r, container.OpStart, "Starting", name)
}

// Restart acknowledges, restarts the container, then reports whether it runs.
func (d *Dispatcher) Restart(ctx context.Context, r Replier, name string) error {
	return d.lifecycle(ctx, r, container.OpRestart, "Restarting", name)
}

// Stop acknowledges, stops the container, then reports whether it runs.
// The report checks for a running container, so a successful stop reads
// "failed to stop".
func (d *Dispatcher) Stop(ctx context.Context, r Replier, name string) error {
	return d.lifecycle(ctx, r, container.OpStop, "Stopping", name)
}

// Status reports whether the container is running.
func (d *Dispatcher) Status(ctx context.Context, r Replier, name string) error {
	running, _ := d.runtime.Running(ctx, name)
	if running {
		return r.Send(ctx, fmt.Sprintf("(%s) running!", name))
	}
	return r.Send(ctx, fmt.Sprintf("(%s) stopped.", name))
}

// List replies with one "name | glyph" line per container. A parse failure
// is returned without replying.
func (d *Dispatcher) List(ctx context.Context, r Replier) error {
	entries, err := d.runtime.List(ctx)
	if err != nil {
		return fmt.Errorf("list containers: %w", err)
	}
	return r.Acknowledge(ctx, d.FormatList(entries))
}

// FormatList renders entries as newline-separated "name | glyph" lines.
func (d *Dispatcher) FormatList(entries []container.Entry) string {
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s | %s", e.Names, d.icons.For(e.State)))
	}
	return strings.Join(lines, "\n")
}

// Logs acknowledges, then sends the container's recent logs in a code block.
func (d *Dispatcher) Logs(ctx context.Context, r Replier, name string) error {
	if err := r.Acknowledge(ctx, fmt.Sprintf("Fetching logs for %s...", name)); err != nil {
		return fmt.Errorf("acknowledge logs: %w", err)
	}

	out, res := d.runtime.Logs(ctx, name, d.logTail)
	if !res.OK() {
		log.Printf("logs %s: %v", name, res.Err)
		return r.Send(ctx, fmt.Sprintf("(%s) failed to fetch logs.", name))
	}

	out = strings.TrimRight(out, "\n")
	if strings.TrimSpace(out) == "" {
		return r.Send(ctx, fmt.Sprintf("(%s) has no logs.", name))
	}
	return r.Send(ctx, codeBlock(out, MaxMessageLen))
}

// lifecycle runs the acknowledge, mutate, report sequence shared by
// start, restart and stop.
func (d *Dispatcher) lifecycle(ctx context.Context, r Replier, op container.Op, verb, name string) error {
	if err := r.Acknowledge(ctx, fmt.Sprintf("%s %s...", verb, name)); err != nil {
		return fmt.Errorf("acknowledge %s: %w", op, err)
	}

	if res := d.runtime.Lifecycle(ctx, op, name); !res.OK() {
		log.Printf("%s %s: %v", op, name, res.Err)
	}

	return r.Send(ctx, d.statusReport(ctx, name, string(op)))
}

// statusReport infers success of action from whether the container runs now.
func (d *Dispatcher) statusReport(ctx context.Context, name, action string) string {
	running, _ := d.runtime.Running(ctx, name)
	if running {
		return fmt.Sprintf("(%s) has %sed!", name, action)
	}
	return fmt.Sprintf("(%s) failed to %s.", name, action)
}

// zeroWidthSpace splits backtick runs in log output so they cannot close the fence.
const zeroWidthSpace = "\u200b"

// codeBlock fences text, dropping the oldest lines until it fits in limit bytes.
func codeBlock(text string, limit int) string {
	const fenceOpen, fenceClose = "```\n", "\n```"
	budget := limit - len(fenceOpen) - len(fenceClose)

	if strings.Contains(text, "```") {
		text = strings.ReplaceAll(text, "``", "`"+zeroWidthSpace+"`")
	}

	for len(text) > budget {
		i := strings.IndexByte(text, '\n')
		if i < 0 {
			// A single oversized line keeps its tail, cut on a rune boundary.
			cut := len(text) - budget
			for cut < len(text) && !utf8.RuneStart(text[cut]) {
				cut++
			}
			text = text[cut:]
			break
		}
		text = text[i+1:]
	}
	return fenceOpen + text + fenceClose
}
