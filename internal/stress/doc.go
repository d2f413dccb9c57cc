// Package stress はキューに周期的なバースト負荷を注入する補助生産者を提供する。
//
// 一定間隔ごとに最低優先度のタスクをまとめて投入し、キューの
// バックプレッシャ（満杯時のブロッキング）を実際に発生させる。
// 自身の完了条件は持たず、シャットダウンまで動き続ける。バースト中に
// 投入がキャンセルされた場合はそのバーストを即座に打ち切る。
package stress
