// Package main is the entry point for taskbench.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/automaxprocs/maxprocs"

	"taskbench/internal/config"
	"taskbench/internal/events"
	"taskbench/internal/harness"
	"taskbench/internal/logger"
	"taskbench/internal/observability"
)

var (
	version = "dev"
)

func init() {
	maxprocs.Set()
}

func main() {
	// フラグ定義
	var (
		configFile   = flag.String("config", "", "設定ファイルパス (YAML/JSON)")
		presetName   = flag.String("preset", "", "プリセット名 (quick, standard, stress, soak)")
		duration     = flag.Duration("duration", 0, "テスト実行時間 (例: 10s, 1m)")
		workers      = flag.Int("workers", 0, "ワーカー数 (最大32)")
		queueCap     = flag.Int("queue", 0, "キュー容量")
		taskCount    = flag.Int("tasks", 0, "生成タスク数")
		enableStress = flag.Bool("stress", true, "ストレス注入を有効化")
		failureRate  = flag.Float64("failure-rate", 0, "タスク失敗率 (0.0-1.0)")
		rateLimit    = flag.Float64("rate-limit", 0, "タスク生成レート上限 (tasks/sec, 0で無制限)")
		seed         = flag.Int64("seed", 0, "乱数シード (0で時刻から採番)")
		listPresets  = flag.Bool("list-presets", false, "利用可能なプリセットを表示")
		showVersion  = flag.Bool("version", false, "バージョンを表示")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `taskbench - Producer-Consumer Load Test Harness

Usage:
  taskbench [options]

Options:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # プリセットを実行
  taskbench --preset quick

  # 設定ファイルから実行
  taskbench --config bench.yaml

  # フラグでカスタマイズ
  taskbench --preset standard --duration 30s --workers 16

  # プリセット一覧を表示
  taskbench --list-presets
`)
	}

	flag.Parse()

	// バージョン表示
	if *showVersion {
		fmt.Printf("taskbench version %s\n", version)
		return
	}

	// プリセット一覧表示
	if *listPresets {
		printPresets()
		return
	}

	// 実行設定の決定
	benchConfig, err := buildConfig(
		*configFile, *presetName, *duration, *workers, *queueCap, *taskCount,
		*enableStress, *failureRate, *rateLimit, *seed,
	)
	if err != nil {
		logger.Error("", "設定エラー: %v", err)
		os.Exit(1)
	}

	// 負荷テスト実行
	if err := runBench(benchConfig); err != nil {
		logger.Error("", "実行エラー: %v", err)
		os.Exit(1)
	}
}

// buildConfig は実行設定を構築する
func buildConfig(
	configFile, presetName string,
	duration time.Duration, workers, queueCap, taskCount int,
	enableStress bool, failureRate, rateLimit float64, seed int64,
) (harness.Config, error) {
	var cfg harness.Config

	// 1. 設定ファイルから読み込み
	if configFile != "" {
		fileConfig, err := config.LoadFile(configFile)
		if err != nil {
			return cfg, fmt.Errorf("設定ファイル読み込みエラー: %w", err)
		}
		if err := fileConfig.Validate(); err != nil {
			return cfg, fmt.Errorf("設定検証エラー: %w", err)
		}
		cfg, err = fileConfig.ToHarnessConfig()
		if err != nil {
			return cfg, fmt.Errorf("設定変換エラー: %w", err)
		}
	} else if presetName != "" {
		// 2. プリセットから読み込み
		preset, ok := harness.GetPreset(presetName)
		if !ok {
			return cfg, fmt.Errorf("不明なプリセット: %s (利用可能: %v)", presetName, harness.ListPresets())
		}
		cfg = preset
	} else {
		// 3. デフォルト設定
		cfg = harness.DefaultConfig()
	}

	// フラグでオーバーライド
	if duration > 0 {
		cfg.MaxDuration = duration
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if queueCap > 0 {
		cfg.QueueCapacity = queueCap
	}
	if taskCount > 0 {
		cfg.TaskCount = taskCount
	}
	if failureRate > 0 {
		cfg.FailureRate = failureRate
	}
	if rateLimit > 0 {
		cfg.RateLimit = rateLimit
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	cfg.EnableStress = enableStress

	return cfg, nil
}

// runBench は負荷テストを実行する
func runBench(cfg harness.Config) error {
	fmt.Println("taskbench - Producer-Consumer Load Test Harness")
	fmt.Println("===============================================")
	fmt.Printf("Scenario: %s\n", cfg.Name)
	fmt.Printf("Duration: %v\n", cfg.MaxDuration)
	fmt.Printf("Workers: %d, Queue Capacity: %d\n", cfg.Workers, cfg.QueueCapacity)
	fmt.Printf("Tasks: %d, Stress: %v\n", cfg.TaskCount, cfg.EnableStress)
	fmt.Println("===============================================")
	fmt.Println()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// シグナルハンドリング
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n中断シグナルを受信、テストを終了中...")
		cancel()
	}()

	// 実行
	engine := harness.New(cfg)

	// 統計スナップショットをデフォルトレジストリのコレクタに反映する
	// （エンドポイントの公開は組み込み側の責務）
	exporter, err := observability.NewExporter("", prom.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("failed to register collectors: %w", err)
	}
	engine.SetObserver(exporter)

	// ライフサイクルイベントをログに流す
	bus := events.NewBus()
	defer bus.Close()
	eventCh := bus.Subscribe()
	go func() {
		for ev := range eventCh {
			logEvent(logger.Default, ev)
		}
	}()
	engine.SetEventBus(bus)

	result, err := engine.Run(ctx)
	if err != nil {
		return err
	}

	// レポート出力
	fmt.Println(result.Report())

	return nil
}

// logEvent はライフサイクルイベントを1行のログにする
func logEvent(l *logger.Logger, ev events.Event) {
	switch ev.Type {
	case events.EventRunStarted:
		l.Info("events", "Run started")
	case events.EventGeneratorDone:
		l.Info("events", "Generator done (generated: %d)", ev.Data.Generated)
	case events.EventShutdown:
		l.Info("events", "Shutdown triggered: %s", ev.Data.Reason)
	case events.EventRunFinished:
		l.Info("events", "Run finished (completed: %d, failed: %d)",
			ev.Data.Completed, ev.Data.Failed)
	default:
		l.Info("events", "Event: %s", ev.Type)
	}
}

// printPresets は利用可能なプリセットを表示する
func printPresets() {
	fmt.Println("利用可能なプリセット:")
	fmt.Println()

	presets := []struct {
		name string
		desc string
	}{
		{"quick", "短時間の動作確認"},
		{"standard", "標準負荷テスト（デフォルト）"},
		{"stress", "高負荷ストレステスト"},
		{"soak", "長時間ソークテスト"},
	}

	for _, p := range presets {
		fmt.Printf("  %-12s %s\n", p.name, p.desc)
	}

	fmt.Println()
	fmt.Println("使用例: taskbench --preset quick")
}
