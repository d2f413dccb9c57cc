// Package queue は容量固定・スレッドセーフなブロッキングFIFOキューを提供する。
//
// 内部はリングバッファで、1つのミューテックスと2つの条件変数
// （空きあり・アイテムあり）で保護される。待機は必ず述語の再チェック
// ループで行うため、偽の起床は無害である。
//
// シャットダウン時の動作:
//   - Shutdownは両方の条件変数をブロードキャストし、ブロック中の
//     全スレッドを速やかに起こす
//   - 以降のEnqueueはErrShuttingDownを返し、アイテムは呼び出し側に残る
//   - Dequeueはキューが空になった時点で (ゼロ値, false) を返す
//     （ドレイン完了の合図であり、エラーではない）
//
// 順序は厳密なFIFOであり、タスクの優先度は取り出し順序に影響しない。
package queue
