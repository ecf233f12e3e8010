package dispatch

import (
	"context"
	"sync"

	"github.com/elijahcutler/helix/internal/container"
)

// journal records the order of replies and runtime calls across fakes.
type journal struct {
	mu     sync.Mutex
	events []string
}

func (j *journal) add(event string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.events = append(j.events, event)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.events...)
}

type fakeReplier struct {
	j       *journal
	acks    []string
	sends   []string
	ackErr  error
	sendErr error
}

func (f *fakeReplier) Acknowledge(ctx context.Context, text string) error {
	f.j.add("ack:" + text)
	f.acks = append(f.acks, text)
	return f.ackErr
}

func (f *fakeReplier) Send(ctx context.Context, text string) error {
	f.j.add("send:" + text)
	f.sends = append(f.sends, text)
	return f.sendErr
}

type fakeRuntime struct {
	j        *journal
	running  bool
	entries  []container.Entry
	listErrs []error
	logs     string
	logsRes  container.Result
	lifeRes  container.Result
	tail     int
}

func (f *fakeRuntime) Lifecycle(ctx context.Context, op container.Op, name string) container.Result {
	f.j.add("lifecycle:" + string(op) + ":" + name)
	return f.lifeRes
}

func (f *fakeRuntime) Running(ctx context.Context, name string) (bool, container.Result) {
	f.j.add("running:" + name)
	return f.running, container.Result{}
}

func (f *fakeRuntime) List(ctx context.Context) ([]container.Entry, error) {
	f.j.add("list")
	if len(f.listErrs) > 0 {
		err := f.listErrs[0]
		f.listErrs = f.listErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	return f.entries, nil
}

func (f *fakeRuntime) Logs(ctx context.Context, name string, tail int) (string, container.Result) {
	f.j.add("logs:" + name)
	f.tail = tail
	return f.logs, f.logsRes
}

func newFakes() (*fakeRuntime, *fakeReplier, *journal) {
	j := &journal{}
	return &fakeRuntime{j: j}, &fakeReplier{j: j}, j
}
