package container

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

type fakeRunner struct {
	mu        sync.Mutex
	responses map[string][]Result
	calls     []fakeCall
}

type fakeCall struct {
	bin      string
	args     []string
	combined bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		responses: make(map[string][]Result),
	}
}

func (f *fakeRunner) stub(args string, out string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	code := 0
	if err != nil {
		code = 1
	}
	f.responses[args] = append(f.responses[args], Result{Stdout: []byte(out), ExitCode: code, Err: err})
}

func (f *fakeRunner) Exec(ctx context.Context, bin string, args ...string) Result {
	return f.record(bin, args, false)
}

func (f *fakeRunner) ExecCombined(ctx context.Context, bin string, args ...string) Result {
	return f.record(bin, args, true)
}

func (f *fakeRunner) record(bin string, args []string, combined bool) Result {
	key := strings.Join(args, " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fakeCall{bin: bin, args: append([]string(nil), args...), combined: combined})
	queue := f.responses[key]
	if len(queue) == 0 {
		return Result{ExitCode: -1, Err: fmt.Errorf("unexpected %s call: %s", bin, key)}
	}
	resp := queue[0]
	f.responses[key] = queue[1:]
	return resp
}

func (f *fakeRunner) lastCall() fakeCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return fakeCall{}
	}
	return f.calls[len(f.calls)-1]
}
