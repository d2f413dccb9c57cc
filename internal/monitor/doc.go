// Package monitor は定期的な統計レポートと完了検出を提供する。
//
// 一定間隔ごとに集約ロックの下で一貫したスナップショットを取り、
// 経過時間・スループット・平均処理時間・キュー占有率・稼働ワーカー数
// を含むレポートを出力する。全体完了数が目標に達したら自身の完了を
// 通知して停止するが、シャットダウントークンを発火させるのは
// オーケストレータの役割であり、モニタ自身は発火しない。
package monitor
