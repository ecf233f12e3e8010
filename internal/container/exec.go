package container

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes runtime commands.
type Runner interface {
	// Exec runs bin with args and captures standard output only.
	Exec(ctx context.Context, bin string, args ...string) Result

	// ExecCombined runs bin with args and captures stdout and stderr together.
	ExecCombined(ctx context.Context, bin string, args ...string) Result
}

// osRunner executes real commands via exec.CommandContext.
type osRunner struct{}

func (osRunner) Exec(ctx context.Context, bin string, args ...string) Result {
	cmd := exec.CommandContext(ctx, bin, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return newResult(bin, args, stdout.Bytes(), stderr.String(), err)
}

func (osRunner) ExecCombined(ctx context.Context, bin string, args ...string) Result {
	cmd := exec.CommandContext(ctx, bin, args...)

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	return newResult(bin, args, out.Bytes(), "", err)
}

// newResult folds a finished command into a Result. The exit code is -1 when
// the process could not be started at all.
func newResult(bin string, args []string, stdout []byte, stderr string, err error) Result {
	if err == nil {
		return Result{Stdout: stdout, ExitCode: 0}
	}

	code := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	if stderr != "" {
		err = fmt.Errorf("%s %s failed: %w\nstderr: %s",
			bin, strings.Join(args, " "), err, strings.TrimSpace(stderr))
	} else {
		err = fmt.Errorf("%s %s failed: %w", bin, strings.Join(args, " "), err)
	}

	return Result{Stdout: stdout, ExitCode: code, Err: err}
}

// DefaultRunner returns a Runner backed by the operating system.
func DefaultRunner() Runner {
	return osRunner{}
}
