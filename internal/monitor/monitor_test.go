package monitor

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"taskbench/internal/logger"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/stats"
	"taskbench/internal/task"
)

func quietLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelError)
}

type recordingObserver struct {
	mu    sync.Mutex
	calls int
	last  stats.Snapshot
}

func (r *recordingObserver) Observe(s stats.Snapshot, _, _, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.last = s
}

func newTestMonitor(t *testing.T, target int64) (*Monitor, *stats.Aggregator, *shutdown.Token, *bytes.Buffer) {
	t.Helper()
	q, err := queue.New[*task.Task](10)
	if err != nil {
		t.Fatalf("queue.New: %v", err)
	}
	agg := stats.New(2)
	token := shutdown.NewToken()

	m := New(agg, q, token, func() int { return 2 }, Config{
		Interval: 10 * time.Millisecond,
		Target:   target,
	})
	m.SetLogger(quietLogger())

	buf := &bytes.Buffer{}
	m.SetOutput(buf)
	return m, agg, token, buf
}

func TestMonitorReportContents(t *testing.T) {
	m, agg, token, buf := newTestMonitor(t, 0)
	agg.RecordSuccess(0, 5*time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Run()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	token.Trigger("test done")
	<-done

	out := buf.String()
	for _, want := range []string{
		"Monitor Report",
		"Total Tasks Completed: 1",
		"Total Tasks Failed: 0",
		"Throughput:",
		"Average Processing Time:",
		"Queue Size: 0/10",
		"Active Workers: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\nreport:\n%s", want, out)
		}
	}
}

func TestMonitorStopsAtTarget(t *testing.T) {
	m, agg, _, _ := newTestMonitor(t, 3)
	for range 3 {
		agg.RecordSuccess(0, time.Millisecond)
	}

	finished := make(chan struct{})
	go func() {
		m.Run()
		close(finished)
	}()

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not signal completion")
	}

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("monitor did not stop after reaching target")
	}
}

func TestMonitorDoesNotTriggerShutdown(t *testing.T) {
	m, agg, token, _ := newTestMonitor(t, 1)
	agg.RecordSuccess(0, time.Millisecond)

	go m.Run()

	select {
	case <-m.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("monitor did not signal completion")
	}

	// Raising the token is the orchestrator's job, never the monitor's
	if token.Triggered() {
		t.Error("monitor must not trigger the shutdown token")
	}
}

func TestMonitorNotifiesObserver(t *testing.T) {
	m, agg, token, _ := newTestMonitor(t, 0)
	obs := &recordingObserver{}
	m.SetObserver(obs)

	agg.RecordSuccess(1, time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Run()
		close(done)
	}()

	deadline := time.After(2 * time.Second)
	for {
		obs.mu.Lock()
		calls := obs.calls
		obs.mu.Unlock()
		if calls >= 2 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("observer not notified")
		case <-time.After(time.Millisecond):
		}
	}
	token.Trigger("test done")
	<-done

	obs.mu.Lock()
	defer obs.mu.Unlock()
	if obs.last.TotalCompleted != 1 {
		t.Errorf("observer snapshot TotalCompleted = %d, want 1", obs.last.TotalCompleted)
	}
}
