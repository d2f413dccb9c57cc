// Package worker は境界付きキューを消費する固定サイズのワーカープールを提供する。
//
// 各ワーカーは生成時に渡された不変のIDで自分を識別する長命のgoroutineで、
// 次のループを回る: シャットダウントークンが未発火の間、キューから
// Dequeue → ドレイン合図なら終了 → ワークロードを実行して経過時間を
// 計測 → 自分の統計スロットを更新。全体で1000タスク完了するごとに
// 1回、スケジューラに実行権を譲る。
//
// # 使用例
//
//	pool := worker.NewPool(q, agg, workload.Simulate, token, 8)
//	pool.Start()
//	...
//	pool.Wait()
package worker
