package harness

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sync"
	"time"

	"taskbench/internal/events"
	"taskbench/internal/generator"
	"taskbench/internal/logger"
	"taskbench/internal/monitor"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/stats"
	"taskbench/internal/stress"
	"taskbench/internal/task"
	"taskbench/internal/worker"
	"taskbench/internal/workload"
)

// シャットダウン理由
const (
	ReasonCompleted   = "all tasks completed"
	ReasonDuration    = "test duration reached"
	ReasonInterrupted = "termination signal received"
)

// Config はハーネスの設定
type Config struct {
	Name          string        // 設定名
	Description   string        // 説明
	Workers       int           // ワーカー数
	QueueCapacity int           // キュー容量
	TaskCount     int           // ジェネレータが生成するタスク数（完了目標）
	MaxDuration   time.Duration // 最大実行時間

	MonitorInterval time.Duration // モニタのレポート間隔
	PollInterval    time.Duration // オーケストレータのポーリング間隔

	EnableStress   bool          // ストレス注入を有効化
	StressInterval time.Duration // バースト間隔
	StressLevel    int           // ストレスレベル

	FailureRate float64 // ワークロードへの失敗注入率（0で無効）
	RateLimit   float64 // ジェネレータの持続レート上限（0で無効）
	Seed        int64   // 乱数シード（0で現在時刻）

	// Workload はワーカーが実行する処理。nilならworkload.Simulate
	Workload workload.Func
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Name:            "default",
		Description:     "Default load test",
		Workers:         worker.DefaultNumWorkers,
		QueueCapacity:   1000,
		TaskCount:       10000,
		MaxDuration:     10 * time.Second,
		MonitorInterval: time.Second,
		PollInterval:    time.Second,
		EnableStress:    true,
		StressInterval:  5 * time.Second,
		StressLevel:     5,
	}
}

// Validate は設定を検証する
func (c Config) Validate() error {
	if c.QueueCapacity <= 0 {
		return fmt.Errorf("queue capacity must be positive, got %d", c.QueueCapacity)
	}
	if c.Workers < 0 || c.Workers > worker.MaxWorkers {
		return fmt.Errorf("workers must be in [0, %d], got %d", worker.MaxWorkers, c.Workers)
	}
	if c.TaskCount <= 0 {
		return fmt.Errorf("task count must be positive, got %d", c.TaskCount)
	}
	if c.MaxDuration <= 0 {
		return fmt.Errorf("max duration must be positive, got %v", c.MaxDuration)
	}
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be in [0, 1], got %f", c.FailureRate)
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must be non-negative, got %f", c.RateLimit)
	}
	return nil
}

// Result はハーネス実行結果
type Result struct {
	Name      string
	Reason    string // シャットダウン理由
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	TotalCompleted int64
	TotalFailed    int64
	Throughput     float64
	AvgTime        time.Duration
	Generated      int64 // ジェネレータが投入したタスク数
	Injected       int64 // ストレスインジェクタが投入したタスク数

	Workers []stats.WorkerStats
}

// Engine はハーネスの合成ルート兼オーケストレータ
type Engine struct {
	config   Config
	eventBus *events.Bus
	observer monitor.Observer
	out      io.Writer
	log      *logger.Logger

	mu      sync.Mutex
	running bool
}

// New は新しいEngineを作成する
func New(config Config) *Engine {
	return &Engine{
		config: config,
		out:    os.Stdout,
		log:    logger.Default,
	}
}

// SetEventBus はライフサイクルイベントの通知先を設定する
func (e *Engine) SetEventBus(bus *events.Bus) {
	e.eventBus = bus
}

// SetObserver はモニタのスナップショット通知先を設定する
func (e *Engine) SetObserver(o monitor.Observer) {
	e.observer = o
}

// SetOutput はモニタレポートの出力先を設定する（テスト用）
func (e *Engine) SetOutput(out io.Writer) {
	e.out = out
}

// SetLogger はロガーを差し替える（テスト用）
func (e *Engine) SetLogger(l *logger.Logger) {
	e.log = l
}

// publish はイベントバスが設定されていれば発行する
func (e *Engine) publish(ev events.Event) {
	if e.eventBus != nil {
		e.eventBus.Publish(ev)
	}
}

// Run はハーネスを実行し、最終統計を返す
// 設定不正とキュー作成失敗は作業開始前のエラーとして返す
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	e.mu.Lock()
	if e.running {
		e.mu.Unlock()
		return nil, fmt.Errorf("harness is already running")
	}
	e.running = true
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
	}()

	cfg := e.config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	q, err := queue.New[*task.Task](cfg.QueueCapacity)
	if err != nil {
		return nil, fmt.Errorf("failed to create queue: %w", err)
	}

	token := shutdown.NewToken()
	// シャットダウン発火時にブロック中の全スレッドを起こす
	token.OnTrigger(q.Shutdown)
	token.OnTrigger(func() {
		e.publish(events.NewShutdownEvent(token.Reason()))
	})

	work := cfg.Workload
	if work == nil {
		work = workload.Simulate
	}
	if cfg.FailureRate > 0 {
		work = workload.WithFailures(work, cfg.FailureRate, newRNG(cfg.Seed))
	}

	agg := stats.New(clampWorkers(cfg.Workers))

	pool := worker.NewPool(q, agg, work, token, cfg.Workers)
	pool.SetLogger(e.log)

	gen := generator.New(q, token, generator.Config{
		TaskCount: cfg.TaskCount,
		RateLimit: cfg.RateLimit,
		Seed:      cfg.Seed,
	})
	gen.SetLogger(e.log)

	mon := monitor.New(agg, q, token, pool.Active, monitor.Config{
		Interval: cfg.MonitorInterval,
		Target:   int64(cfg.TaskCount),
	})
	mon.SetLogger(e.log)
	mon.SetOutput(e.out)
	if e.observer != nil {
		mon.SetObserver(e.observer)
	}

	var inj *stress.Injector
	if cfg.EnableStress {
		inj = stress.New(q, token, stress.Config{
			Interval: cfg.StressInterval,
			Level:    cfg.StressLevel,
			IDBase:   cfg.TaskCount,
		})
		inj.SetLogger(e.log)
	}

	e.log.Info("harness", "=== Load test '%s' started ===", cfg.Name)
	e.publish(events.NewRunStartedEvent())

	startTime := agg.StartTime()

	pool.Start()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		gen.Run(ctx)
		e.publish(events.NewGeneratorDoneEvent(gen.Generated()))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		mon.Run()
	}()

	if inj != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			inj.Run()
		}()
	}

	// オーケストレータのポーリングループ
	e.poll(ctx, token, agg, q, startTime)

	// 全goroutineのjoinが済むまでキューの後始末はしない
	pool.Wait()
	wg.Wait()

	result := e.collect(token, agg, gen, inj, startTime)
	e.publish(events.NewRunFinishedEvent(result.TotalCompleted, result.TotalFailed))

	e.log.Info("harness", "=== Load test '%s' finished (%s) ===", cfg.Name, result.Reason)

	return result, nil
}

// poll はシャットダウン条件を監視し、トークンを発火する
func (e *Engine) poll(ctx context.Context, token *shutdown.Token, agg *stats.Aggregator, q *queue.Queue[*task.Task], startTime time.Time) {
	interval := e.config.PollInterval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctxDone := ctx.Done()
	for {
		select {
		case <-ctxDone:
			e.log.Info("harness", "Termination requested. Initiating shutdown...")
			token.Trigger(ReasonInterrupted)
			ctxDone = nil

		case <-token.Done():
			return

		case <-ticker.C:
			// 完了数とキュー長は別々のロックで読むため原子的ではない。
			// 2つの読み取りの間にバーストが入ると、未処理タスクを残した
			// まま完了判定になり得る
			if agg.TotalCompleted() >= int64(e.config.TaskCount) && q.IsEmpty() {
				e.log.Info("harness", "All tasks completed. Initiating shutdown...")
				token.Trigger(ReasonCompleted)
				continue
			}
			if time.Since(startTime) >= e.config.MaxDuration {
				e.log.Info("harness", "Test duration reached. Initiating shutdown...")
				token.Trigger(ReasonDuration)
			}
		}
	}
}

// collect は最終統計を収集する
func (e *Engine) collect(token *shutdown.Token, agg *stats.Aggregator, gen *generator.Generator, inj *stress.Injector, startTime time.Time) *Result {
	s := agg.Snapshot()

	result := &Result{
		Name:           e.config.Name,
		Reason:         token.Reason(),
		StartTime:      startTime,
		EndTime:        time.Now(),
		TotalCompleted: s.TotalCompleted,
		TotalFailed:    s.TotalFailed,
		Throughput:     s.Throughput,
		AvgTime:        s.AvgTime,
		Generated:      gen.Generated(),
		Workers:        s.Workers,
	}
	result.Duration = result.EndTime.Sub(result.StartTime)
	if inj != nil {
		result.Injected = inj.Injected()
	}
	return result
}

// IsRunning は実行中かどうかを返す
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func clampWorkers(n int) int {
	if n <= 0 {
		return worker.DefaultNumWorkers
	}
	if n > worker.MaxWorkers {
		return worker.MaxWorkers
	}
	return n
}

func newRNG(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
