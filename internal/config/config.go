package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"taskbench/internal/harness"
)

// FileConfig は設定ファイルの構造
type FileConfig struct {
	Bench BenchConfig `yaml:"bench" json:"bench"`
}

// BenchConfig は負荷テスト設定
type BenchConfig struct {
	Name        string `yaml:"name" json:"name"`
	Description string `yaml:"description" json:"description"`
	Duration    string `yaml:"duration" json:"duration"`
	Workers     int    `yaml:"workers" json:"workers"`
	TaskCount   int    `yaml:"task_count" json:"task_count"`
	Seed        int64  `yaml:"seed" json:"seed"`

	Queue    QueueConfig    `yaml:"queue" json:"queue"`
	Stress   StressConfig   `yaml:"stress" json:"stress"`
	Workload WorkloadConfig `yaml:"workload" json:"workload"`
	Monitor  MonitorConfig  `yaml:"monitor" json:"monitor"`
}

// QueueConfig はキュー設定
type QueueConfig struct {
	Capacity int `yaml:"capacity" json:"capacity"`
}

// StressConfig はストレス注入設定
type StressConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Interval string `yaml:"interval" json:"interval"`
	Level    int    `yaml:"level" json:"level"`
}

// WorkloadConfig はワークロード設定
type WorkloadConfig struct {
	FailureRate float64 `yaml:"failure_rate" json:"failure_rate"`
	RateLimit   float64 `yaml:"rate_limit" json:"rate_limit"`
}

// MonitorConfig はモニタ設定
type MonitorConfig struct {
	Interval string `yaml:"interval" json:"interval"`
}

// LoadFile は設定ファイルを読み込む
func LoadFile(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config FileConfig
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}

	return &config, nil
}

// ToHarnessConfig はFileConfigをharness.Configに変換する
func (f *FileConfig) ToHarnessConfig() (harness.Config, error) {
	bc := f.Bench

	// デフォルト値の設定
	config := harness.DefaultConfig()

	if bc.Name != "" {
		config.Name = bc.Name
	}
	if bc.Duration != "" {
		d, err := time.ParseDuration(bc.Duration)
		if err != nil {
			return config, fmt.Errorf("invalid duration: %w", err)
		}
		config.MaxDuration = d
	}
	if bc.Workers > 0 {
		config.Workers = bc.Workers
	}
	if bc.TaskCount > 0 {
		config.TaskCount = bc.TaskCount
	}
	if bc.Seed != 0 {
		config.Seed = bc.Seed
	}

	// Queue設定
	if bc.Queue.Capacity > 0 {
		config.QueueCapacity = bc.Queue.Capacity
	}

	// Stress設定
	config.EnableStress = bc.Stress.Enabled
	if bc.Stress.Interval != "" {
		d, err := time.ParseDuration(bc.Stress.Interval)
		if err != nil {
			return config, fmt.Errorf("invalid stress interval: %w", err)
		}
		config.StressInterval = d
	}
	if bc.Stress.Level > 0 {
		config.StressLevel = bc.Stress.Level
	}

	// Workload設定
	if bc.Workload.FailureRate > 0 {
		config.FailureRate = bc.Workload.FailureRate
	}
	if bc.Workload.RateLimit > 0 {
		config.RateLimit = bc.Workload.RateLimit
	}

	// Monitor設定
	if bc.Monitor.Interval != "" {
		d, err := time.ParseDuration(bc.Monitor.Interval)
		if err != nil {
			return config, fmt.Errorf("invalid monitor interval: %w", err)
		}
		config.MonitorInterval = d
	}

	return config, nil
}

// Validate は設定を検証する
func (f *FileConfig) Validate() error {
	bc := f.Bench

	if bc.Workers < 0 {
		return fmt.Errorf("workers must be non-negative")
	}

	if bc.TaskCount < 0 {
		return fmt.Errorf("task_count must be non-negative")
	}

	if bc.Queue.Capacity < 0 {
		return fmt.Errorf("queue.capacity must be non-negative")
	}

	if bc.Stress.Level < 0 {
		return fmt.Errorf("stress.level must be non-negative")
	}

	if bc.Workload.FailureRate < 0 || bc.Workload.FailureRate > 1 {
		return fmt.Errorf("workload.failure_rate must be between 0 and 1")
	}

	if bc.Workload.RateLimit < 0 {
		return fmt.Errorf("workload.rate_limit must be non-negative")
	}

	return nil
}
