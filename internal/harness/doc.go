// Package harness は負荷生成ハーネス全体を組み立てて実行する。
//
// Engineが合成ルートであり、キュー・統計テーブル・シャットダウン
// トークン・開始時刻を保持する（これら自体は同期済みのため、Engineに
// 追加のロックはない）。Runはワーカープール・ジェネレータ・モニタ・
// ストレスインジェクタを起動し、オーケストレータのポーリングループで
// 次のいずれかを検出してシャットダウンを発火する:
//
//   - 外部からの停止要求（contextのキャンセル）
//   - 全体完了数が目標に達し、かつキューが空
//   - 経過時間が最大実行時間に到達
//
// 発火後は全goroutineの終了を待ち、最終統計を収集してResultを返す。
// キューに触れるのは全員のjoinが済んだ後のみである。
package harness
