package stats

import (
	"sync"
	"testing"
	"time"
)

func TestRecordSuccess(t *testing.T) {
	agg := New(2)

	agg.RecordSuccess(0, 10*time.Millisecond)
	agg.RecordSuccess(0, 30*time.Millisecond)
	agg.RecordSuccess(1, 20*time.Millisecond)

	s := agg.Snapshot()
	if s.TotalCompleted != 3 {
		t.Errorf("TotalCompleted = %d, want 3", s.TotalCompleted)
	}

	w0 := s.Workers[0]
	if w0.Completed != 2 {
		t.Errorf("worker 0 Completed = %d, want 2", w0.Completed)
	}
	if w0.TotalTime != 40*time.Millisecond {
		t.Errorf("worker 0 TotalTime = %v, want 40ms", w0.TotalTime)
	}
	if w0.MaxTime != 30*time.Millisecond {
		t.Errorf("worker 0 MaxTime = %v, want 30ms", w0.MaxTime)
	}
	if w0.MinTime != 10*time.Millisecond {
		t.Errorf("worker 0 MinTime = %v, want 10ms", w0.MinTime)
	}
	if w0.AvgTime() != 20*time.Millisecond {
		t.Errorf("worker 0 AvgTime = %v, want 20ms", w0.AvgTime())
	}
}

func TestMinTimeSentinel(t *testing.T) {
	agg := New(2)

	// First sample must overwrite the sentinel even if large
	agg.RecordSuccess(0, time.Hour)
	s := agg.Snapshot()
	if s.Workers[0].MinTime != time.Hour {
		t.Errorf("MinTime = %v, want 1h", s.Workers[0].MinTime)
	}

	// Idle worker reports zero, not the sentinel
	if s.Workers[1].MinTime != 0 {
		t.Errorf("idle worker MinTime = %v, want 0", s.Workers[1].MinTime)
	}
}

func TestRecordSuccessReturnsGlobalTotal(t *testing.T) {
	agg := New(3)

	if got := agg.RecordSuccess(0, time.Millisecond); got != 1 {
		t.Errorf("first RecordSuccess = %d, want 1", got)
	}
	if got := agg.RecordSuccess(2, time.Millisecond); got != 2 {
		t.Errorf("second RecordSuccess = %d, want 2", got)
	}
}

func TestRecordFailure(t *testing.T) {
	agg := New(1)

	agg.RecordFailure(0, 5*time.Millisecond)
	agg.RecordSuccess(0, 10*time.Millisecond)

	s := agg.Snapshot()
	if s.TotalFailed != 1 {
		t.Errorf("TotalFailed = %d, want 1", s.TotalFailed)
	}
	if s.Workers[0].Failed != 1 {
		t.Errorf("worker Failed = %d, want 1", s.Workers[0].Failed)
	}
	// Failed tasks do not feed the timing aggregates
	if s.Workers[0].TotalTime != 10*time.Millisecond {
		t.Errorf("TotalTime = %v, want 10ms", s.Workers[0].TotalTime)
	}
}

// The sum of per-worker completed counters always equals the global total.
func TestConservationUnderConcurrency(t *testing.T) {
	const workers = 8
	const perWorker = 5000

	agg := New(workers)

	var wg sync.WaitGroup
	for id := range workers {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for range perWorker {
				agg.RecordSuccess(id, time.Microsecond)
			}
		}(id)
	}
	wg.Wait()

	s := agg.Snapshot()
	var sum int64
	for _, w := range s.Workers {
		sum += w.Completed
	}
	if sum != s.TotalCompleted {
		t.Errorf("per-worker sum = %d, global = %d", sum, s.TotalCompleted)
	}
	if s.TotalCompleted != workers*perWorker {
		t.Errorf("TotalCompleted = %d, want %d", s.TotalCompleted, workers*perWorker)
	}
}

func TestSnapshotIsIndependentCopy(t *testing.T) {
	agg := New(1)
	agg.RecordSuccess(0, time.Millisecond)

	s := agg.Snapshot()
	s.Workers[0].Completed = 999

	if agg.Snapshot().Workers[0].Completed != 1 {
		t.Error("mutating a snapshot must not affect the aggregator")
	}
}

func TestSnapshotDerivedValues(t *testing.T) {
	agg := New(2)
	agg.RecordSuccess(0, 10*time.Millisecond)
	agg.RecordSuccess(1, 20*time.Millisecond)

	s := agg.Snapshot()
	if s.AvgTime != 15*time.Millisecond {
		t.Errorf("AvgTime = %v, want 15ms", s.AvgTime)
	}
	if s.Throughput <= 0 {
		t.Errorf("Throughput = %f, want > 0", s.Throughput)
	}
	if s.Elapsed <= 0 {
		t.Errorf("Elapsed = %v, want > 0", s.Elapsed)
	}
}
