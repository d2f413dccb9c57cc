// Package workload はワーカーが実行する模擬ワークロードを提供する。
//
// ワークロードは注入可能な関数として扱う: 本番デフォルトは優先度に
// 応じたCPUバウンドのフィラーだが、テストでは決定的なFixedに
// 差し替えられる。タスクの実体はこのハーネスの対象外であり、
// 任意の決定的な所要時間関数で置き換えてよい。
package workload
