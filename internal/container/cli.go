package container

import (
	"context"
	"log"
	"strconv"
	"strings"
)

// runningFormat is passed as-is to `container inspect --format`. The single
// quotes are part of the argument and therefore appear in the output.
const runningFormat = "'{{json .State.Running}}'"

// CLIRuntime implements Runtime by shelling out to the docker (or podman) CLI.
type CLIRuntime struct {
	bin         string
	runner      Runner
	trimRunning bool
	debug       bool
}

// CLIOption configures a CLIRuntime.
type CLIOption func(*CLIRuntime)

// WithRunner replaces the command runner. Intended for tests.
func WithRunner(r Runner) CLIOption {
	return func(c *CLIRuntime) {
		c.runner = r
	}
}

// WithTrimmedRunningCheck strips whitespace and quotes from inspect output
// before comparing it against "true".
func WithTrimmedRunningCheck(trim bool) CLIOption {
	return func(c *CLIRuntime) {
		c.trimRunning = trim
	}
}

// WithDebug logs every invocation and its exit code.
func WithDebug(debug bool) CLIOption {
	return func(c *CLIRuntime) {
		c.debug = debug
	}
}

// NewCLIRuntime creates a Runtime using the given binary (e.g. "docker").
// Use DetectRuntime() to find an available binary first.
func NewCLIRuntime(bin string, opts ...CLIOption) *CLIRuntime {
	c := &CLIRuntime{
		bin:    bin,
		runner: DefaultRunner(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Bin returns the runtime binary this CLIRuntime invokes.
func (c *CLIRuntime) Bin() string {
	return c.bin
}

// Lifecycle runs `container <op> <name>`.
func (c *CLIRuntime) Lifecycle(ctx context.Context, op Op, name string) Result {
	return c.exec(ctx, "container", string(op), name)
}

// Running runs `container inspect` and checks the captured output.
func (c *CLIRuntime) Running(ctx context.Context, name string) (bool, Result) {
	res := c.exec(ctx, "container", "inspect", "--format", runningFormat, name)
	return runningToken(res.Stdout, c.trimRunning), res
}

// List runs `container ls -a --format json`. The exit status is not
// inspected: a failed invocation with no output lists nothing.
func (c *CLIRuntime) List(ctx context.Context) ([]Entry, error) {
	res := c.exec(ctx, "container", "ls", "-a", "--format", "json")
	return parseEntries(res.Stdout)
}

// Logs runs `container logs --tail <n> <name>` with stdout and stderr combined.
func (c *CLIRuntime) Logs(ctx context.Context, name string, tail int) (string, Result) {
	args := []string{"container", "logs", "--tail", strconv.Itoa(tail), name}
	res := c.runner.ExecCombined(ctx, c.bin, args...)
	c.trace(args, res)
	return string(res.Stdout), res
}

func (c *CLIRuntime) exec(ctx context.Context, args ...string) Result {
	res := c.runner.Exec(ctx, c.bin, args...)
	c.trace(args, res)
	return res
}

func (c *CLIRuntime) trace(args []string, res Result) {
	if !c.debug {
		return
	}
	if res.Err != nil {
		log.Printf("%s %s: exit %d: %v", c.bin, strings.Join(args, " "), res.ExitCode, res.Err)
		return
	}
	log.Printf("%s %s: exit %d", c.bin, strings.Join(args, " "), res.ExitCode)
}

// Verify CLIRuntime implements Runtime interface
var _ Runtime = (*CLIRuntime)(nil)
