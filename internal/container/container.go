package container

import "fmt"

// Op is a lifecycle operation accepted by `docker container <op>`.
type Op string

const (
	OpStart   Op = "start"
	OpRestart Op = "restart"
	OpStop    Op = "stop"
)

// Entry is one container as reported by `docker container ls --format json`.
type Entry struct {
	// Names is the container name (e.g., "web")
	Names string `json:"Names"`

	// State is the runtime state label (e.g., "running", "exited")
	State string `json:"State"`
}

// Result is the outcome of a single runtime invocation.
type Result struct {
	// Stdout holds the captured standard output, untouched.
	Stdout []byte

	// ExitCode is the process exit status, or -1 if the process never ran.
	ExitCode int

	// Err is set when the invocation failed for any reason.
	Err error
}

// OK reports whether the invocation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// ParseError is returned when a line of listing output is not valid JSON.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse container list line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
