package worker

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"taskbench/internal/logger"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/stats"
	"taskbench/internal/task"
	"taskbench/internal/workload"
)

// ワーカー数の既定と上限
const (
	DefaultNumWorkers = 8
	MaxWorkers        = 32
)

// yieldInterval 全体完了数がこの倍数に達するたびにGoschedする
const yieldInterval = 1000

// Pool は固定サイズのワーカープール
type Pool struct {
	queue      *queue.Queue[*task.Task]
	agg        *stats.Aggregator
	work       workload.Func
	token      *shutdown.Token
	numWorkers int

	active atomic.Int32
	wg     sync.WaitGroup
	log    *logger.Logger
}

// NewPool は新しいプールを作成する
// numWorkersが0以下ならDefaultNumWorkers、MaxWorkersを超える場合は
// MaxWorkersに丸められる
func NewPool(q *queue.Queue[*task.Task], agg *stats.Aggregator, work workload.Func, token *shutdown.Token, numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = DefaultNumWorkers
	}
	if numWorkers > MaxWorkers {
		numWorkers = MaxWorkers
	}
	return &Pool{
		queue:      q,
		agg:        agg,
		work:       work,
		token:      token,
		numWorkers: numWorkers,
		log:        logger.Default,
	}
}

// SetLogger はロガーを差し替える（テスト用）
func (p *Pool) SetLogger(l *logger.Logger) {
	p.log = l
}

// Start は全ワーカーを起動する
func (p *Pool) Start() {
	for id := range p.numWorkers {
		p.wg.Add(1)
		go p.run(id)
	}
	p.log.Info("pool", "Started %d workers", p.numWorkers)
}

// run は1ワーカーの消費ループ
// idは生成時に固定され、実行時の自己探索は行わない
func (p *Pool) run(id int) {
	defer p.wg.Done()

	tag := workerTag(id)
	p.active.Add(1)
	defer p.active.Add(-1)

	p.log.Info(tag, "Worker started")

	for !p.token.Triggered() {
		t, ok := p.queue.Dequeue()
		if !ok {
			// ドレイン完了: これ以上アイテムは来ない
			break
		}

		start := time.Now()
		err := p.work(t.ID, t.Priority)
		elapsed := time.Since(start)
		t.CompletionTime = time.Now()

		if err != nil {
			p.agg.RecordFailure(id, elapsed)
			continue
		}

		total := p.agg.RecordSuccess(id, elapsed)
		if total%yieldInterval == 0 {
			runtime.Gosched()
		}
	}

	p.log.Info(tag, "Worker shutting down")
}

// Wait は全ワーカーの終了を待つ
func (p *Pool) Wait() {
	p.wg.Wait()
}

// NumWorkers はワーカー数を返す
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Active は現在稼働中のワーカー数を返す
func (p *Pool) Active() int {
	return int(p.active.Load())
}

func workerTag(id int) string {
	return fmt.Sprintf("worker-%d", id)
}
