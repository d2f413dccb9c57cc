package harness

import "time"

// QuickConfig は短時間での動作確認用設定を返す
func QuickConfig() Config {
	return Config{
		Name:            "quick",
		Description:     "Quick test for verification",
		Workers:         4,
		QueueCapacity:   100,
		TaskCount:       1000,
		MaxDuration:     5 * time.Second,
		MonitorInterval: time.Second,
		PollInterval:    100 * time.Millisecond,
		EnableStress:    false,
	}
}

// StandardConfig は既定の本番相当設定を返す
// 8ワーカー・容量1000・10000タスク・ストレス注入あり
func StandardConfig() Config {
	cfg := DefaultConfig()
	cfg.Name = "standard"
	cfg.Description = "Standard load test"
	return cfg
}

// StressConfig は高負荷設定を返す
// 小さいキューと頻繁なバーストでバックプレッシャを強くかける
func StressConfig() Config {
	return Config{
		Name:            "stress",
		Description:     "High load test with aggressive stress bursts",
		Workers:         16,
		QueueCapacity:   200,
		TaskCount:       50000,
		MaxDuration:     30 * time.Second,
		MonitorInterval: time.Second,
		PollInterval:    time.Second,
		EnableStress:    true,
		StressInterval:  2 * time.Second,
		StressLevel:     10,
	}
}

// SoakConfig は長時間実行の設定を返す
func SoakConfig() Config {
	return Config{
		Name:            "soak",
		Description:     "Long-running soak test",
		Workers:         8,
		QueueCapacity:   1000,
		TaskCount:       500000,
		MaxDuration:     5 * time.Minute,
		MonitorInterval: 5 * time.Second,
		PollInterval:    time.Second,
		EnableStress:    true,
		StressInterval:  10 * time.Second,
		StressLevel:     5,
	}
}

// GetPreset は名前からプリセット設定を取得する
func GetPreset(name string) (Config, bool) {
	presets := map[string]func() Config{
		"quick":    QuickConfig,
		"standard": StandardConfig,
		"stress":   StressConfig,
		"soak":     SoakConfig,
	}

	if fn, ok := presets[name]; ok {
		return fn(), true
	}
	return Config{}, false
}

// ListPresets は利用可能なプリセット名を返す
func ListPresets() []string {
	return []string{"quick", "standard", "stress", "soak"}
}
