// Package generator はキューにタスクを供給する有限個数の生産者を提供する。
//
// 固定個数のタスクを一様乱数の優先度で生成して投入し、個数到達・
// 投入キャンセル・シャットダウンのいずれかで停止する。100タスクごとに
// 短い休止を挟んでキューへのバースト流量を抑える（キュー占有率から
// 導出したフロー制御ではなく、単純な協調ポリシー）。加えて任意で
// rate.Limiterによる持続レートの上限を設定できる。
package generator
