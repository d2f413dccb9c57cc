package observability

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskbench/internal/stats"
)

func TestExporterObserve(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("taskbench", reg)
	require.NoError(t, err)

	s := stats.Snapshot{
		Elapsed:        2 * time.Second,
		TotalCompleted: 150,
		TotalFailed:    3,
		Throughput:     75,
		AvgTime:        20 * time.Millisecond,
		Workers: []stats.WorkerStats{
			{ID: 0, Completed: 100},
			{ID: 1, Completed: 50},
		},
	}
	exporter.Observe(s, 7, 1000, 8)

	assert.Equal(t, 150.0, testutil.ToFloat64(exporter.tasksCompleted))
	assert.Equal(t, 3.0, testutil.ToFloat64(exporter.tasksFailed))
	assert.Equal(t, 75.0, testutil.ToFloat64(exporter.throughput))
	assert.InDelta(t, 0.02, testutil.ToFloat64(exporter.avgTimeSeconds), 1e-9)
	assert.Equal(t, 7.0, testutil.ToFloat64(exporter.queueDepth))
	assert.Equal(t, 1000.0, testutil.ToFloat64(exporter.queueCapacity))
	assert.Equal(t, 8.0, testutil.ToFloat64(exporter.activeWorkers))

	assert.Equal(t, 100.0, testutil.ToFloat64(exporter.workerCompleted.WithLabelValues("0")))
	assert.Equal(t, 50.0, testutil.ToFloat64(exporter.workerCompleted.WithLabelValues("1")))
}

func TestExporterAlreadyRegisteredReuse(t *testing.T) {
	reg := prom.NewRegistry()

	first, err := NewExporter("taskbench", reg)
	require.NoError(t, err)

	second, err := NewExporter("taskbench", reg)
	require.NoError(t, err)

	// Both exporters share the same underlying collectors
	first.Observe(stats.Snapshot{TotalCompleted: 42}, 0, 10, 1)
	assert.Equal(t, 42.0, testutil.ToFloat64(second.tasksCompleted))
}

func TestExporterDefaultNamespace(t *testing.T) {
	reg := prom.NewRegistry()
	exporter, err := NewExporter("", reg)
	require.NoError(t, err)

	exporter.Observe(stats.Snapshot{TotalCompleted: 1}, 0, 1, 1)

	families, err := reg.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "taskbench_tasks_completed_total" {
			found = true
		}
	}
	assert.True(t, found, "expected metric under default namespace")
}

func TestNilExporterObserveIsSafe(t *testing.T) {
	var exporter *Exporter
	exporter.Observe(stats.Snapshot{}, 0, 0, 0)
}
