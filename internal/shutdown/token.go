package shutdown

import (
	"sync"
	"sync/atomic"
)

// Token は共有のシャットダウンフラグ
// 一度発火したら戻らない（終端状態）
type Token struct {
	triggered atomic.Bool
	once      sync.Once
	done      chan struct{}

	mu        sync.Mutex
	callbacks []func()
	reason    string
}

// NewToken は未発火のTokenを作成する
func NewToken() *Token {
	return &Token{
		done: make(chan struct{}),
	}
}

// OnTrigger は発火時に一度だけ実行されるコールバックを登録する
// 既に発火済みの場合は即座に実行される
func (t *Token) OnTrigger(fn func()) {
	t.mu.Lock()
	if t.triggered.Load() {
		t.mu.Unlock()
		fn()
		return
	}
	t.callbacks = append(t.callbacks, fn)
	t.mu.Unlock()
}

// Trigger はシャットダウンを発火する。冪等。
// 最初の呼び出しのみが理由を記録し、コールバックを実行する
func (t *Token) Trigger(reason string) {
	t.once.Do(func() {
		t.mu.Lock()
		t.reason = reason
		callbacks := t.callbacks
		t.callbacks = nil
		t.triggered.Store(true)
		t.mu.Unlock()

		close(t.done)
		for _, fn := range callbacks {
			fn()
		}
	})
}

// Triggered は発火済みかどうかを返す
func (t *Token) Triggered() bool {
	return t.triggered.Load()
}

// Done は発火時にcloseされるチャネルを返す
func (t *Token) Done() <-chan struct{} {
	return t.done
}

// Reason は発火理由を返す（未発火なら空文字列）
func (t *Token) Reason() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.reason
}
