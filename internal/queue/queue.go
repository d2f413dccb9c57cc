package queue

import (
	"errors"
	"sync"
)

var (
	// ErrInvalidCapacity は容量が正でない場合にNewが返す
	ErrInvalidCapacity = errors.New("queue: capacity must be positive")

	// ErrShuttingDown はシャットダウン中のEnqueueが返す
	// アイテムは投入されず、所有権は呼び出し側に残る
	ErrShuttingDown = errors.New("queue: shutting down")
)

// Queue は容量固定のブロッキングFIFOキュー
type Queue[T any] struct {
	mu       sync.Mutex
	notFull  *sync.Cond // 空きあり
	notEmpty *sync.Cond // アイテムあり

	buf      []T
	head     int // 次に取り出すスロット
	tail     int // 次に挿入するスロット
	count    int
	capacity int
	closed   bool
}

// New は指定容量のキューを作成する
func New[T any](capacity int) (*Queue[T], error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	q := &Queue[T]{
		buf:      make([]T, capacity),
		capacity: capacity,
	}
	q.notFull = sync.NewCond(&q.mu)
	q.notEmpty = sync.NewCond(&q.mu)
	return q, nil
}

// Enqueue はアイテムを末尾に挿入する。満杯の間はブロックする。
// シャットダウンが発火している場合（待機中の発火を含む）は
// ErrShuttingDownを返し、アイテムは投入されない
func (q *Queue[T]) Enqueue(item T) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == q.capacity {
		if q.closed {
			return ErrShuttingDown
		}
		q.notFull.Wait()
	}
	if q.closed {
		return ErrShuttingDown
	}

	q.buf[q.tail] = item
	q.tail = (q.tail + 1) % q.capacity
	q.count++

	// 1アイテム増えたので待機中の消費者を1つ起こす
	q.notEmpty.Signal()
	return nil
}

// Dequeue は先頭のアイテムを取り出す。空の間はブロックする。
// シャットダウン発火済みかつ空の場合は (ゼロ値, false) を即座に返す
// （ドレイン完了の合図）。発火済みでもアイテムが残っていれば取り出す
func (q *Queue[T]) Dequeue() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for q.count == 0 {
		if q.closed {
			var zero T
			return zero, false
		}
		q.notEmpty.Wait()
	}

	item := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero // 参照を残さない
	q.head = (q.head + 1) % q.capacity
	q.count--

	// 1スロット空いたので待機中の生産者を1つ起こす
	q.notFull.Signal()
	return item, true
}

// Shutdown はキューを終了状態にし、ブロック中の全スレッドを起こす。冪等。
// Signalではなく両条件変数のBroadcastを使う: シャットダウン時は複数の
// スレッドが同時に待機している可能性があり、1つだけ起こしても残りが
// フラグを観測できるとは限らない
func (q *Queue[T]) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.notFull.Broadcast()
	q.notEmpty.Broadcast()
}

// Len は現在のアイテム数を返す
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap は容量を返す
func (q *Queue[T]) Cap() int {
	return q.capacity
}

// IsEmpty は空かどうかを返す
// 値はロック解放時点のスナップショットにすぎない点に注意
func (q *Queue[T]) IsEmpty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == 0
}

// IsFull は満杯かどうかを返す
func (q *Queue[T]) IsFull() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count == q.capacity
}
