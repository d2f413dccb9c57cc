package task

import (
	"math/rand"
	"testing"
)

func TestNewClampsPriority(t *testing.T) {
	tests := []struct {
		name     string
		priority int
		want     int
	}{
		{"in range", 5, 5},
		{"min", 1, 1},
		{"max", 10, 10},
		{"below min", 0, 1},
		{"above max", 15, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := New(42, tt.priority)
			if task.Priority != tt.want {
				t.Errorf("priority = %d, want %d", task.Priority, tt.want)
			}
			if task.ID != 42 {
				t.Errorf("id = %d, want 42", task.ID)
			}
			if task.EnqueueTime.IsZero() {
				t.Error("enqueue time should be set")
			}
		})
	}
}

func TestRandomPriorityRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	seen := make(map[int]bool)

	for range 1000 {
		p := RandomPriority(rng)
		if p < MinPriority || p > MaxPriority {
			t.Fatalf("priority %d out of range [%d, %d]", p, MinPriority, MaxPriority)
		}
		seen[p] = true
	}

	// Over 1000 draws every value should appear
	for p := MinPriority; p <= MaxPriority; p++ {
		if !seen[p] {
			t.Errorf("priority %d never drawn", p)
		}
	}
}
