package container

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
	"github.com/docker/docker/pkg/stdcopy"
)

// EngineRuntime implements Runtime against the Docker Engine API.
type EngineRuntime struct {
	client *client.Client
}

// NewEngineRuntime creates an EngineRuntime. With no options the client is
// configured from the environment (DOCKER_HOST etc.) and negotiates the
// API version on first use.
func NewEngineRuntime(opts ...client.Opt) (*EngineRuntime, error) {
	if len(opts) == 0 {
		opts = []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	}
	cli, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return &EngineRuntime{client: cli}, nil
}

// Close releases the underlying client.
func (e *EngineRuntime) Close() error {
	return e.client.Close()
}

// Lifecycle starts, restarts or stops the named container.
func (e *EngineRuntime) Lifecycle(ctx context.Context, op Op, name string) Result {
	var err error
	switch op {
	case OpStart:
		err = e.client.ContainerStart(ctx, name, container.StartOptions{})
	case OpRestart:
		err = e.client.ContainerRestart(ctx, name, container.StopOptions{})
	case OpStop:
		err = e.client.ContainerStop(ctx, name, container.StopOptions{})
	default:
		err = fmt.Errorf("unknown lifecycle op: %s", op)
	}
	return engineResult(nil, err)
}

// Running inspects the container. Stdout carries "true" or "false" so callers
// see the same shape as the CLI runtime's trimmed output.
func (e *EngineRuntime) Running(ctx context.Context, name string) (bool, Result) {
	inspect, err := e.client.ContainerInspect(ctx, name)
	if err != nil {
		return false, engineResult(nil, err)
	}
	if inspect.ContainerJSONBase == nil || inspect.State == nil {
		return false, engineResult(nil, errors.New("inspect response has no state"))
	}

	running := inspect.State.Running
	if running {
		return true, engineResult([]byte("true"), nil)
	}
	return false, engineResult([]byte("false"), nil)
}

// List returns all containers. A failed request lists nothing, matching the
// CLI runtime which does not inspect exit status.
func (e *EngineRuntime) List(ctx context.Context) ([]Entry, error) {
	containers, err := e.client.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		log.Printf("docker engine: list containers: %v", err)
		return nil, nil
	}

	entries := make([]Entry, 0, len(containers))
	for _, c := range containers {
		entries = append(entries, Entry{
			Names: engineName(c.Names),
			State: string(c.State),
		})
	}
	return entries, nil
}

// Logs returns the last tail lines of the container's stdout and stderr.
func (e *EngineRuntime) Logs(ctx context.Context, name string, tail int) (string, Result) {
	reader, err := e.client.ContainerLogs(ctx, name, container.LogsOptions{
		ShowStdout: true,
		ShowStderr: true,
		Tail:       fmt.Sprintf("%d", tail),
	})
	if err != nil {
		return "", engineResult(nil, err)
	}
	defer reader.Close()

	var output strings.Builder
	if _, err := stdcopy.StdCopy(&output, &output, reader); err != nil {
		return output.String(), engineResult([]byte(output.String()), err)
	}
	return output.String(), engineResult([]byte(output.String()), nil)
}

// engineName joins the API's name list the way `docker ls` prints it:
// without the leading slash, comma separated.
func engineName(names []string) string {
	trimmed := make([]string, 0, len(names))
	for _, n := range names {
		trimmed = append(trimmed, strings.TrimPrefix(n, "/"))
	}
	return strings.Join(trimmed, ",")
}

func engineResult(stdout []byte, err error) Result {
	if err != nil {
		return Result{Stdout: stdout, ExitCode: 1, Err: fmt.Errorf("docker engine: %w", err)}
	}
	return Result{Stdout: stdout, ExitCode: 0}
}

// Verify EngineRuntime implements Runtime interface
var _ Runtime = (*EngineRuntime)(nil)
