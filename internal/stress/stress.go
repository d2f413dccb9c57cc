package stress

import (
	"sync/atomic"
	"time"

	"taskbench/internal/logger"
	"taskbench/internal/queue"
	"taskbench/internal/shutdown"
	"taskbench/internal/task"
)

// バーストサイズはLevel * burstMultiplier
const burstMultiplier = 100

// Config はInjectorの設定
type Config struct {
	Interval time.Duration // バースト間隔
	Level    int           // ストレスレベル（バーストサイズの係数）
	IDBase   int           // タスクIDの開始値（ジェネレータと重ならない値）
}

// DefaultConfig はデフォルト設定を返す
func DefaultConfig() Config {
	return Config{
		Interval: 5 * time.Second,
		Level:    5,
	}
}

// Injector は周期的なバースト生産者
type Injector struct {
	config Config
	queue  *queue.Queue[*task.Task]
	token  *shutdown.Token

	bursts   atomic.Int64
	injected atomic.Int64
	log      *logger.Logger
}

// New は新しいInjectorを作成する
func New(q *queue.Queue[*task.Task], token *shutdown.Token, config Config) *Injector {
	if config.Interval <= 0 {
		config.Interval = DefaultConfig().Interval
	}
	if config.Level <= 0 {
		config.Level = DefaultConfig().Level
	}
	return &Injector{
		config: config,
		queue:  q,
		token:  token,
		log:    logger.Default,
	}
}

// SetLogger はロガーを差し替える（テスト用）
func (s *Injector) SetLogger(l *logger.Logger) {
	s.log = l
}

// Run はシャットダウンまでバースト注入を繰り返す
func (s *Injector) Run() {
	s.log.Info("stress", "Stress injector started (interval: %v, level: %d)",
		s.config.Interval, s.config.Level)

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.token.Done():
			s.log.Info("stress", "Stress injector shutting down")
			return
		case <-ticker.C:
			s.burst()
		}
	}
}

// burst は1回分のバーストを投入する
// キューが受け付ける限り全力で投入し、キャンセルで打ち切る
func (s *Injector) burst() {
	size := s.config.Level * burstMultiplier
	s.log.Info("stress", "Starting stress burst (%d tasks)", size)

	base := s.config.IDBase + int(s.injected.Load())
	for i := range size {
		if s.token.Triggered() {
			return
		}
		t := task.New(base+i, task.MinPriority)
		if err := s.queue.Enqueue(t); err != nil {
			// キャンセルされた投入: バーストを打ち切り、tは破棄
			return
		}
		s.injected.Add(1)
	}

	s.bursts.Add(1)
	s.log.Info("stress", "Stress burst completed")
}

// Bursts は完了したバースト数を返す
func (s *Injector) Bursts() int64 {
	return s.bursts.Load()
}

// Injected は投入に成功したタスク数を返す
func (s *Injector) Injected() int64 {
	return s.injected.Load()
}
