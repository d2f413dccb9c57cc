package generator

import (
	"context"
	"math/rand"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"taskbench/internal/logger"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/task"
)

// スロットリング: throttleEveryタスクごとにthrottlePause休止する
const (
	throttleEvery = 100
	throttlePause = time.Millisecond
)

// Config はGeneratorの設定
type Config struct {
	TaskCount int     // 生成するタスク数
	RateLimit float64 // 持続レート上限（タスク/秒、0で無効）
	Seed      int64   // 乱数シード（0で現在時刻）
}

// Generator は有限個数のタスク生産者
type Generator struct {
	config  Config
	queue   *queue.Queue[*task.Task]
	token   *shutdown.Token
	rng     *rand.Rand
	limiter *rate.Limiter

	generated atomic.Int64
	log       *logger.Logger
}

// New は新しいGeneratorを作成する
func New(q *queue.Queue[*task.Task], token *shutdown.Token, config Config) *Generator {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := &Generator{
		config: config,
		queue:  q,
		token:  token,
		rng:    rand.New(rand.NewSource(seed)),
		log:    logger.Default,
	}
	if config.RateLimit > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), 1)
	}
	return g
}

// SetLogger はロガーを差し替える（テスト用）
func (g *Generator) SetLogger(l *logger.Logger) {
	g.log = l
}

// Run はタスクを生成して投入する。以下のいずれかで戻る:
// 個数到達、投入キャンセル（シャットダウン）、トークン発火
func (g *Generator) Run(ctx context.Context) {
	g.log.Info("generator", "Task generator started (target: %d tasks)", g.config.TaskCount)

	// レートリミッタ内での待機もトークン発火で解除されるよう、
	// 発火時にキャンセルされるcontextを被せる
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g.token.OnTrigger(cancel)

	id := 0
	for id < g.config.TaskCount && !g.token.Triggered() {
		if g.limiter != nil {
			if err := g.limiter.Wait(ctx); err != nil {
				break
			}
		}

		t := task.New(id, task.RandomPriority(g.rng))
		if err := g.queue.Enqueue(t); err != nil {
			// キャンセルされた投入: tの所有権は戻ってくるが、
			// 生成済みには数えず破棄する
			break
		}
		id++
		g.generated.Store(int64(id))

		if id%throttleEvery == 0 {
			time.Sleep(throttlePause)
		}
	}

	g.log.Info("generator", "Task generator completed. Generated %d tasks", id)
}

// Generated は投入に成功したタスク数を返す
func (g *Generator) Generated() int64 {
	return g.generated.Load()
}
