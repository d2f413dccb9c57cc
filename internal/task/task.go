package task

import (
	"math/rand"
	"time"
)

// 優先度の範囲。優先度はワーカー内の模擬処理時間にのみ影響し、
// キューの取り出し順序には影響しない（厳密なFIFO）。
const (
	MinPriority = 1
	MaxPriority = 10
)

// Task は1つの作業単位を表す
type Task struct {
	ID             int
	Priority       int // MinPriority〜MaxPriority
	EnqueueTime    time.Time
	CompletionTime time.Time
}

// New は新しいTaskを作成する
// 範囲外の優先度は近い方の境界に丸められる
func New(id, priority int) *Task {
	if priority < MinPriority {
		priority = MinPriority
	}
	if priority > MaxPriority {
		priority = MaxPriority
	}
	return &Task{
		ID:          id,
		Priority:    priority,
		EnqueueTime: time.Now(),
	}
}

// RandomPriority はMinPriority〜MaxPriorityの一様乱数を返す
func RandomPriority(rng *rand.Rand) int {
	return rng.Intn(MaxPriority-MinPriority+1) + MinPriority
}
