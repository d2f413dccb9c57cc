package observability

import (
	"errors"
	"fmt"
	"strconv"

	prom "github.com/prometheus/client_golang/prometheus"

	"taskbench/internal/stats"
)

const defaultNamespace = "taskbench"

// Exporter は統計スナップショットをPrometheusコレクタへ反映する
type Exporter struct {
	tasksCompleted  prom.Gauge
	tasksFailed     prom.Gauge
	throughput      prom.Gauge
	avgTimeSeconds  prom.Gauge
	queueDepth      prom.Gauge
	queueCapacity   prom.Gauge
	activeWorkers   prom.Gauge
	workerCompleted *prom.GaugeVec
}

// NewExporter はコレクタを作成してregに登録する
// 登録済みの同一コレクタがあればそれを再利用する
func NewExporter(namespace string, reg prom.Registerer) (*Exporter, error) {
	if namespace == "" {
		namespace = defaultNamespace
	}
	if reg == nil {
		reg = prom.DefaultRegisterer
	}

	gauge := func(name, help string) prom.Gauge {
		return prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	e := &Exporter{
		tasksCompleted: gauge("tasks_completed_total", "Total number of completed tasks."),
		tasksFailed:    gauge("tasks_failed_total", "Total number of failed tasks."),
		throughput:     gauge("throughput_tasks_per_second", "Completed tasks per second since start."),
		avgTimeSeconds: gauge("task_avg_processing_seconds", "Mean task processing time in seconds."),
		queueDepth:     gauge("queue_depth", "Current number of queued tasks."),
		queueCapacity:  gauge("queue_capacity", "Queue capacity."),
		activeWorkers:  gauge("active_workers", "Number of running workers."),
		workerCompleted: prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "worker_tasks_completed",
			Help:      "Completed tasks per worker.",
		}, []string{"worker"}),
	}

	var err error
	if e.tasksCompleted, err = registerCollector(reg, e.tasksCompleted); err != nil {
		return nil, err
	}
	if e.tasksFailed, err = registerCollector(reg, e.tasksFailed); err != nil {
		return nil, err
	}
	if e.throughput, err = registerCollector(reg, e.throughput); err != nil {
		return nil, err
	}
	if e.avgTimeSeconds, err = registerCollector(reg, e.avgTimeSeconds); err != nil {
		return nil, err
	}
	if e.queueDepth, err = registerCollector(reg, e.queueDepth); err != nil {
		return nil, err
	}
	if e.queueCapacity, err = registerCollector(reg, e.queueCapacity); err != nil {
		return nil, err
	}
	if e.activeWorkers, err = registerCollector(reg, e.activeWorkers); err != nil {
		return nil, err
	}
	if e.workerCompleted, err = registerCollector(reg, e.workerCompleted); err != nil {
		return nil, err
	}

	return e, nil
}

// Observe はスナップショットをコレクタに反映する
// monitor.Observerを実装する
func (e *Exporter) Observe(s stats.Snapshot, queueLen, queueCap, activeWorkers int) {
	if e == nil {
		return
	}
	e.tasksCompleted.Set(float64(s.TotalCompleted))
	e.tasksFailed.Set(float64(s.TotalFailed))
	e.throughput.Set(s.Throughput)
	e.avgTimeSeconds.Set(s.AvgTime.Seconds())
	e.queueDepth.Set(float64(queueLen))
	e.queueCapacity.Set(float64(queueCap))
	e.activeWorkers.Set(float64(activeWorkers))

	for _, w := range s.Workers {
		e.workerCompleted.WithLabelValues(strconv.Itoa(w.ID)).Set(float64(w.Completed))
	}
}

func registerCollector[T prom.Collector](reg prom.Registerer, collector T) (T, error) {
	err := reg.Register(collector)
	if err == nil {
		return collector, nil
	}

	var alreadyRegisteredErr prom.AlreadyRegisteredError
	if errors.As(err, &alreadyRegisteredErr) {
		existing, ok := alreadyRegisteredErr.ExistingCollector.(T)
		if !ok {
			return collector, fmt.Errorf("collector type mismatch for %T", collector)
		}
		return existing, nil
	}

	return collector, err
}
