package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/elijahcutler/helix/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStart_Running(t *testing.T) {
	rt, r, j := newFakes()
	rt.running = true

	err := New(rt).Start(context.Background(), r, "web")

	require.NoError(t, err)
	assert.Equal(t, []string{
		"ack:Starting web...",
		"lifecycle:start:web",
		"running:web",
		"send:(web) has started!",
	}, j.list())
}

func TestStart_NotRunning(t *testing.T) {
	rt, r, _ := newFakes()
	rt.running = false

	require.NoError(t, New(rt).Start(context.Background(), r, "web"))

	assert.Equal(t, []string{"Starting web..."}, r.acks)
	assert.Equal(t, []string{"(web) failed to start."}, r.sends)
}

func TestStart_LifecycleFailureStillReports(t *testing.T) {
	rt, r, _ := newFakes()
	rt.lifeRes = container.Result{ExitCode: 1, Err: errors.New("No such container: ghost")}

	require.NoError(t, New(rt).Start(context.Background(), r, "ghost"))

	assert.Equal(t, []string{"(ghost) failed to start."}, r.sends)
}

func TestRestart(t *testing.T) {
	rt, r, j := newFakes()
	rt.running = true

	require.NoError(t, New(rt).Restart(context.Background(), r, "web"))

	assert.Equal(t, []string{
		"ack:Restarting web...",
		"lifecycle:restart:web",
		"running:web",
		"send:(web) has restarted!",
	}, j.list())

	rt.running = false
	require.NoError(t, New(rt).Restart(context.Background(), r, "web"))
	assert.Equal(t, "(web) failed to restart.", r.sends[len(r.sends)-1])
}

// Stop reuses the running check, so a container that stopped successfully
// is reported as a failure. This pins the existing chat output.
func TestStop_SuccessfulStopReadsAsFailure(t *testing.T) {
	rt, r, j := newFakes()
	rt.running = false

	require.NoError(t, New(rt).Stop(context.Background(), r, "web"))

	assert.Equal(t, []string{
		"ack:Stopping web...",
		"lifecycle:stop:web",
		"running:web",
		"send:(web) failed to stop.",
	}, j.list())
}

func TestStop_StillRunningReadsAsSuccess(t *testing.T) {
	rt, r, _ := newFakes()
	rt.running = true

	require.NoError(t, New(rt).Stop(context.Background(), r, "web"))

	assert.Equal(t, []string{"(web) has stoped!"}, r.sends)
}

func TestLifecycle_AcknowledgeFailureSkipsRuntime(t *testing.T) {
	rt, r, j := newFakes()
	r.ackErr = errors.New("interaction expired")

	err := New(rt).Start(context.Background(), r, "web")

	require.Error(t, err)
	assert.ErrorIs(t, err, r.ackErr)
	assert.Equal(t, []string{"ack:Starting web..."}, j.list())
}

func TestStatus(t *testing.T) {
	rt, r, _ := newFakes()
	d := New(rt)

	rt.running = true
	require.NoError(t, d.Status(context.Background(), r, "web"))
	rt.running = false
	require.NoError(t, d.Status(context.Background(), r, "web"))

	assert.Empty(t, r.acks, "status never acknowledges")
	assert.Equal(t, []string{"(web) running!", "(web) stopped."}, r.sends)
	for _, msg := range r.sends {
		assert.NotContains(t, msg, "has")
		assert.NotContains(t, msg, "failed")
	}
}

func TestList_Empty(t *testing.T) {
	rt, r, _ := newFakes()

	require.NoError(t, New(rt).List(context.Background(), r))

	assert.Equal(t, []string{""}, r.acks)
	assert.Empty(t, r.sends)
}

func TestList_Formats(t *testing.T) {
	rt, r, _ := newFakes()
	rt.entries = []container.Entry{
		{Names: "web", State: "running"},
		{Names: "db", State: "exited"},
	}

	require.NoError(t, New(rt).List(context.Background(), r))

	assert.Equal(t, []string{"web | 🟢\ndb | 🔴"}, r.acks)
}

func TestList_UnknownState(t *testing.T) {
	rt, r, _ := newFakes()
	rt.entries = []container.Entry{{Names: "odd", State: "unknown_state_xyz"}}

	require.NoError(t, New(rt).List(context.Background(), r))

	assert.Equal(t, []string{"odd | ❔"}, r.acks)
}

func TestList_ParseErrorPropagatesThenRecovers(t *testing.T) {
	rt, r, _ := newFakes()
	parseErr := &container.ParseError{Line: 1, Err: errors.New("invalid character 'n'")}
	rt.listErrs = []error{parseErr, nil}
	rt.entries = []container.Entry{{Names: "web", State: "running"}}
	d := New(rt)

	err := d.List(context.Background(), r)
	var got *container.ParseError
	require.ErrorAs(t, err, &got)
	assert.Empty(t, r.acks, "no reply on parse failure")

	require.NoError(t, d.List(context.Background(), r))
	assert.Equal(t, []string{"web | 🟢"}, r.acks)
}

func TestList_CustomIcons(t *testing.T) {
	rt, r, _ := newFakes()
	rt.entries = []container.Entry{{Names: "web", State: "running"}}

	require.NoError(t, New(rt, WithIcons(Icons{})).List(context.Background(), r))

	assert.Equal(t, []string{"web | ❔"}, r.acks)
}

func TestLogs(t *testing.T) {
	rt, r, j := newFakes()
	rt.logs = "line1\nline2\n"

	require.NoError(t, New(rt, WithLogTail(20)).Logs(context.Background(), r, "web"))

	assert.Equal(t, 20, rt.tail)
	assert.Equal(t, []string{
		"ack:Fetching logs for web...",
		"logs:web",
		"send:```\nline1\nline2\n```",
	}, j.list())
}

func TestLogs_DefaultTail(t *testing.T) {
	rt, r, _ := newFakes()
	rt.logs = "x"

	require.NoError(t, New(rt, WithLogTail(0)).Logs(context.Background(), r, "web"))

	assert.Equal(t, DefaultLogTail, rt.tail)
}

func TestLogs_Empty(t *testing.T) {
	rt, r, _ := newFakes()
	rt.logs = "\n"

	require.NoError(t, New(rt).Logs(context.Background(), r, "web"))

	assert.Equal(t, []string{"(web) has no logs."}, r.sends)
}

func TestLogs_Failure(t *testing.T) {
	rt, r, _ := newFakes()
	rt.logsRes = container.Result{ExitCode: 1, Err: errors.New("No such container: web")}

	require.NoError(t, New(rt).Logs(context.Background(), r, "web"))

	assert.Equal(t, []string{"(web) failed to fetch logs."}, r.sends)
}

func TestLogs_TruncatesToNewestLines(t *testing.T) {
	rt, r, _ := newFakes()
	var lines []string
	for i := 0; i < 500; i++ {
		lines = append(lines, strings.Repeat("a", 20)+"-"+string(rune('0'+i%10)))
	}
	lines = append(lines, "newest")
	rt.logs = strings.Join(lines, "\n")

	require.NoError(t, New(rt).Logs(context.Background(), r, "web"))

	require.Len(t, r.sends, 1)
	msg := r.sends[0]
	assert.LessOrEqual(t, len(msg), MaxMessageLen)
	assert.True(t, strings.HasSuffix(msg, "newest\n```"))
	assert.True(t, strings.HasPrefix(msg, "```\n"+strings.Repeat("a", 20)))
}

func TestCodeBlock_SingleLongLineCutsOnRuneBoundary(t *testing.T) {
	text := strings.Repeat("🟢", 1000)

	out := codeBlock(text, 100)

	assert.LessOrEqual(t, len(out), 100)
	body := strings.TrimSuffix(strings.TrimPrefix(out, "```\n"), "\n```")
	assert.Equal(t, strings.Repeat("🟢", len(body)/4), body)
}

func TestCodeBlock_LogFencesCannotCloseBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"fence line", "before\n```\nafter"},
		{"inline fence", "go ```run``` done"},
		{"long backtick run", "``````"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := codeBlock(tt.text, MaxMessageLen)

			assert.Equal(t, 2, strings.Count(out, "```"))
			assert.True(t, strings.HasPrefix(out, "```\n"))
			assert.True(t, strings.HasSuffix(out, "\n```"))
			body := strings.TrimSuffix(strings.TrimPrefix(out, "```\n"), "\n```")
			assert.Equal(t, tt.text, strings.ReplaceAll(body, zeroWidthSpace, ""))
		})
	}
}

func TestCodeBlock_DoubleBackticksUntouched(t *testing.T) {
	assert.Equal(t, "```\nrun ``x`` now\n```", codeBlock("run ``x`` now", MaxMessageLen))
}
