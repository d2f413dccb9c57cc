package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileYAML(t *testing.T) {
	content := `
bench:
  name: test-bench
  description: Test run
  duration: 10s
  workers: 4
  task_count: 5000
  queue:
    capacity: 500
  stress:
    enabled: true
    interval: 2s
    level: 3
  workload:
    failure_rate: 0.1
  monitor:
    interval: 500ms
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	cfg, err := LoadFile(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bench.Name != "test-bench" {
		t.Errorf("expected name 'test-bench', got '%s'", cfg.Bench.Name)
	}
	if cfg.Bench.TaskCount != 5000 {
		t.Errorf("expected task_count 5000, got %d", cfg.Bench.TaskCount)
	}
	if cfg.Bench.Queue.Capacity != 500 {
		t.Errorf("expected queue capacity 500, got %d", cfg.Bench.Queue.Capacity)
	}
	if !cfg.Bench.Stress.Enabled {
		t.Error("expected stress to be enabled")
	}
}

func TestLoadFileJSON(t *testing.T) {
	content := `{
  "bench": {
    "name": "json-test",
    "duration": "5s",
    "workers": 2,
    "task_count": 100,
    "stress": {
      "enabled": false
    }
  }
}`
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	cfg, err := LoadFile(tmpFile)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Bench.Name != "json-test" {
		t.Errorf("expected name 'json-test', got '%s'", cfg.Bench.Name)
	}
	if cfg.Bench.Stress.Enabled {
		t.Error("expected stress to be disabled")
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := LoadFile("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadFileUnsupportedFormat(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(tmpFile, []byte("test"), 0644); err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}

	_, err := LoadFile(tmpFile)
	if err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestToHarnessConfig(t *testing.T) {
	cfg := &FileConfig{
		Bench: BenchConfig{
			Name:      "test",
			Duration:  "10s",
			Workers:   16,
			TaskCount: 20000,
			Seed:      42,
			Queue: QueueConfig{
				Capacity: 200,
			},
			Stress: StressConfig{
				Enabled:  true,
				Interval: "2s",
				Level:    8,
			},
			Workload: WorkloadConfig{
				FailureRate: 0.25,
				RateLimit:   1000,
			},
			Monitor: MonitorConfig{
				Interval: "500ms",
			},
		},
	}

	hc, err := cfg.ToHarnessConfig()
	if err != nil {
		t.Fatalf("failed to convert config: %v", err)
	}

	if hc.Name != "test" {
		t.Errorf("expected name 'test', got '%s'", hc.Name)
	}
	if hc.MaxDuration != 10*time.Second {
		t.Errorf("expected duration 10s, got %v", hc.MaxDuration)
	}
	if hc.Workers != 16 {
		t.Errorf("expected workers 16, got %d", hc.Workers)
	}
	if hc.TaskCount != 20000 {
		t.Errorf("expected task count 20000, got %d", hc.TaskCount)
	}
	if hc.QueueCapacity != 200 {
		t.Errorf("expected queue capacity 200, got %d", hc.QueueCapacity)
	}
	if !hc.EnableStress {
		t.Error("expected stress to be enabled")
	}
	if hc.StressInterval != 2*time.Second {
		t.Errorf("expected stress interval 2s, got %v", hc.StressInterval)
	}
	if hc.StressLevel != 8 {
		t.Errorf("expected stress level 8, got %d", hc.StressLevel)
	}
	if hc.FailureRate != 0.25 {
		t.Errorf("expected failure rate 0.25, got %f", hc.FailureRate)
	}
	if hc.RateLimit != 1000 {
		t.Errorf("expected rate limit 1000, got %f", hc.RateLimit)
	}
	if hc.MonitorInterval != 500*time.Millisecond {
		t.Errorf("expected monitor interval 500ms, got %v", hc.MonitorInterval)
	}
}

func TestToHarnessConfigDefaults(t *testing.T) {
	cfg := &FileConfig{}

	hc, err := cfg.ToHarnessConfig()
	if err != nil {
		t.Fatalf("failed to convert config: %v", err)
	}

	if err := hc.Validate(); err != nil {
		t.Errorf("defaults should produce a valid config: %v", err)
	}
	if hc.Workers != 8 {
		t.Errorf("expected default workers 8, got %d", hc.Workers)
	}
	if hc.QueueCapacity != 1000 {
		t.Errorf("expected default capacity 1000, got %d", hc.QueueCapacity)
	}
	if hc.TaskCount != 10000 {
		t.Errorf("expected default task count 10000, got %d", hc.TaskCount)
	}
}

func TestToHarnessConfigInvalidDuration(t *testing.T) {
	cfg := &FileConfig{
		Bench: BenchConfig{
			Duration: "invalid",
		},
	}

	_, err := cfg.ToHarnessConfig()
	if err == nil {
		t.Error("expected error for invalid duration")
	}
}

func TestToHarnessConfigInvalidStressInterval(t *testing.T) {
	cfg := &FileConfig{
		Bench: BenchConfig{
			Stress: StressConfig{
				Enabled:  true,
				Interval: "soon",
			},
		},
	}

	_, err := cfg.ToHarnessConfig()
	if err == nil {
		t.Error("expected error for invalid stress interval")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   FileConfig
		hasError bool
	}{
		{
			name:     "valid config",
			config:   FileConfig{},
			hasError: false,
		},
		{
			name: "negative workers",
			config: FileConfig{
				Bench: BenchConfig{Workers: -1},
			},
			hasError: true,
		},
		{
			name: "negative task count",
			config: FileConfig{
				Bench: BenchConfig{TaskCount: -1},
			},
			hasError: true,
		},
		{
			name: "negative queue capacity",
			config: FileConfig{
				Bench: BenchConfig{Queue: QueueConfig{Capacity: -1}},
			},
			hasError: true,
		},
		{
			name: "invalid failure rate (too high)",
			config: FileConfig{
				Bench: BenchConfig{Workload: WorkloadConfig{FailureRate: 1.5}},
			},
			hasError: true,
		},
		{
			name: "invalid failure rate (negative)",
			config: FileConfig{
				Bench: BenchConfig{Workload: WorkloadConfig{FailureRate: -0.1}},
			},
			hasError: true,
		},
		{
			name: "negative rate limit",
			config: FileConfig{
				Bench: BenchConfig{Workload: WorkloadConfig{RateLimit: -1}},
			},
			hasError: true,
		},
		{
			name: "negative stress level",
			config: FileConfig{
				Bench: BenchConfig{Stress: StressConfig{Level: -1}},
			},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.hasError && err == nil {
				t.Error("expected validation error")
			}
			if !tt.hasError && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
