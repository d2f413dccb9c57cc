package workload

import (
	"errors"
	"math"
	"math/rand"
	"sync"
	"time"
)

// Func はタスク1つ分の処理を実行する
// idとpriorityは模擬処理時間の決定にのみ使われる
type Func func(id, priority int) error

// ErrInjected はWithFailuresが注入する失敗
var ErrInjected = errors.New("workload: injected failure")

// Simulate は優先度に応じたCPUバウンドの模擬処理
// 優先度が高いほど処理時間が短い（(10-priority)ms + ばらつき）
// 100タスクに1回、短いI/O待ちを模す
func Simulate(id, priority int) error {
	workTime := time.Duration(10-priority) * time.Millisecond
	workTime += time.Duration(rand.Int63n(int64(time.Millisecond)))

	spin(workTime)

	if id%100 == 0 {
		time.Sleep(time.Millisecond)
	}
	return nil
}

// spin は指定時間だけCPUを回す
func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	x := 0.0
	for i := 0; time.Now().Before(deadline); i++ {
		x += math.Sin(float64(i)*0.1) * math.Cos(float64(i)*0.2)
	}
	_ = x
}

// Fixed は常に指定時間だけスリープする決定的なワークロードを返す
// テスト用
func Fixed(d time.Duration) Func {
	return func(_, _ int) error {
		if d > 0 {
			time.Sleep(d)
		}
		return nil
	}
}

// WithFailures はfnをラップし、確率rateでErrInjectedを返す
// rate 0で元のfnと等価。乱数は内部ロックで保護される
func WithFailures(fn Func, rate float64, rng *rand.Rand) Func {
	if rate <= 0 {
		return fn
	}
	var mu sync.Mutex
	return func(id, priority int) error {
		mu.Lock()
		fail := rng.Float64() < rate
		mu.Unlock()
		if fail {
			return ErrInjected
		}
		return fn(id, priority)
	}
}
