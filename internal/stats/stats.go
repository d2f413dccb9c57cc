package stats

import (
	"math"
	"sync"
	"time"
)

// minTimeSentinel は未計測のMinTimeを表す番兵値
// 最初の実サンプルで必ず上書きされる
const minTimeSentinel = time.Duration(math.MaxInt64)

// WorkerStats は1ワーカー分の統計
type WorkerStats struct {
	ID        int
	Completed int64
	Failed    int64
	TotalTime time.Duration
	MaxTime   time.Duration
	MinTime   time.Duration
}

// AvgTime は平均処理時間を返す（未完了なら0）
func (w WorkerStats) AvgTime() time.Duration {
	if w.Completed == 0 {
		return 0
	}
	return w.TotalTime / time.Duration(w.Completed)
}

// Aggregator は全ワーカーの統計を1つのロックの下で保持する
type Aggregator struct {
	mu             sync.Mutex
	workers        []WorkerStats
	totalCompleted int64
	totalFailed    int64
	startTime      time.Time
}

// New は指定ワーカー数分のスロットを持つAggregatorを作成する
func New(numWorkers int) *Aggregator {
	workers := make([]WorkerStats, numWorkers)
	for i := range workers {
		workers[i].ID = i
		workers[i].MinTime = minTimeSentinel
	}
	return &Aggregator{
		workers:   workers,
		startTime: time.Now(),
	}
}

// RecordSuccess はワーカーの完了を記録し、更新後の全体完了数を返す
// 戻り値はワーカーの定期yield判定に使われる
func (a *Aggregator) RecordSuccess(workerID int, d time.Duration) int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	w := &a.workers[workerID]
	w.Completed++
	w.TotalTime += d
	if d > w.MaxTime {
		w.MaxTime = d
	}
	if d < w.MinTime {
		w.MinTime = d
	}

	a.totalCompleted++
	return a.totalCompleted
}

// RecordFailure はワーカーの失敗を記録する
// 失敗したタスクの処理時間は平均には含めない
func (a *Aggregator) RecordFailure(workerID int, _ time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.workers[workerID].Failed++
	a.totalFailed++
}

// TotalCompleted は全体の完了数を返す
func (a *Aggregator) TotalCompleted() int64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.totalCompleted
}

// StartTime は計測開始時刻を返す
func (a *Aggregator) StartTime() time.Time {
	return a.startTime
}

// Snapshot は統計のスナップショット
type Snapshot struct {
	Elapsed        time.Duration
	TotalCompleted int64
	TotalFailed    int64
	TotalTime      time.Duration
	Throughput     float64       // 完了数/秒
	AvgTime        time.Duration // 完了タスクの平均処理時間
	Workers        []WorkerStats
}

// Snapshot はロックの下で一貫したコピーを取得する
// 未計測スロットのMinTimeは0に正規化される
func (a *Aggregator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	workers := make([]WorkerStats, len(a.workers))
	copy(workers, a.workers)

	var totalTime time.Duration
	for i := range workers {
		totalTime += workers[i].TotalTime
		if workers[i].Completed == 0 {
			workers[i].MinTime = 0
		}
	}

	s := Snapshot{
		Elapsed:        time.Since(a.startTime),
		TotalCompleted: a.totalCompleted,
		TotalFailed:    a.totalFailed,
		TotalTime:      totalTime,
		Workers:        workers,
	}
	if secs := s.Elapsed.Seconds(); secs > 0 {
		s.Throughput = float64(s.TotalCompleted) / secs
	}
	if s.TotalCompleted > 0 {
		s.AvgTime = totalTime / time.Duration(s.TotalCompleted)
	}
	return s
}
