package monitor

import (
	"fmt"
	"io"
	"os"
	"time"

	"taskbench/internal/logger"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/stats"
	"taskbench/internal/task"
)

// Observer はスナップショットごとに通知を受ける（Prometheusエクスポータ等）
type Observer interface {
	Observe(s stats.Snapshot, queueLen, queueCap, activeWorkers int)
}

// Config はMonitorの設定
type Config struct {
	Interval time.Duration // レポート間隔
	Target   int64         // 完了目標（この数に達したらモニタは停止する）
}

// Monitor は定期レポータ兼完了検出器
type Monitor struct {
	config Config
	agg    *stats.Aggregator
	queue  *queue.Queue[*task.Task]
	token  *shutdown.Token
	active func() int

	observer Observer
	out      io.Writer
	done     chan struct{}
	log      *logger.Logger
}

// New は新しいMonitorを作成する
// activeは現在稼働中のワーカー数を返す関数
func New(agg *stats.Aggregator, q *queue.Queue[*task.Task], token *shutdown.Token, active func() int, config Config) *Monitor {
	if config.Interval <= 0 {
		config.Interval = time.Second
	}
	return &Monitor{
		config: config,
		agg:    agg,
		queue:  q,
		token:  token,
		active: active,
		out:    os.Stdout,
		done:   make(chan struct{}),
		log:    logger.Default,
	}
}

// SetObserver はスナップショットの通知先を設定する
func (m *Monitor) SetObserver(o Observer) {
	m.observer = o
}

// SetOutput はレポートの出力先を設定する（テスト用）
func (m *Monitor) SetOutput(out io.Writer) {
	m.out = out
}

// SetLogger はロガーを差し替える（テスト用）
func (m *Monitor) SetLogger(l *logger.Logger) {
	m.log = l
}

// Done は目標到達時にcloseされるチャネルを返す
func (m *Monitor) Done() <-chan struct{} {
	return m.done
}

// Run はシャットダウンか目標到達までレポートを出力し続ける
func (m *Monitor) Run() {
	m.log.Info("monitor", "Monitor started (interval: %v)", m.config.Interval)

	ticker := time.NewTicker(m.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-m.token.Done():
			m.log.Info("monitor", "Monitor shutting down")
			return
		case <-ticker.C:
			s := m.report()
			if m.config.Target > 0 && s.TotalCompleted >= m.config.Target {
				m.log.Info("monitor", "All tasks completed. Monitor shutting down")
				close(m.done)
				return
			}
		}
	}
}

// report は1回分のレポートを出力する
func (m *Monitor) report() stats.Snapshot {
	s := m.agg.Snapshot()
	queueLen := m.queue.Len()
	activeWorkers := m.active()

	fmt.Fprintf(m.out, "\n=== Monitor Report (Elapsed: %.2f seconds) ===\n", s.Elapsed.Seconds())
	fmt.Fprintf(m.out, "Total Tasks Completed: %d\n", s.TotalCompleted)
	fmt.Fprintf(m.out, "Total Tasks Failed: %d\n", s.TotalFailed)
	fmt.Fprintf(m.out, "Throughput: %.2f tasks/second\n", s.Throughput)
	fmt.Fprintf(m.out, "Average Processing Time: %v\n", s.AvgTime.Round(time.Microsecond))
	fmt.Fprintf(m.out, "Queue Size: %d/%d\n", queueLen, m.queue.Cap())
	fmt.Fprintf(m.out, "Active Workers: %d\n", activeWorkers)
	fmt.Fprintf(m.out, "========================================\n")

	if m.observer != nil {
		m.observer.Observe(s, queueLen, m.queue.Cap(), activeWorkers)
	}
	return s
}
