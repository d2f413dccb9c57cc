// Package shutdown は全コンポーネントで共有される協調キャンセルトークンを提供する。
//
// Tokenは一度だけ発火するフラグで、各コンストラクタに明示的に渡される。
// Triggerは冪等であり、最初の呼び出しでのみ登録済みコールバックを実行する
// （キューは両方の条件変数をブロードキャストするコールバックを登録する）。
// シグナルハンドラ相当の文脈から呼んでもよいのはTriggerのみである。
//
// # 使用例
//
//	token := shutdown.NewToken()
//	token.OnTrigger(queue.Shutdown)
//
//	// どこかのループで
//	for !token.Triggered() {
//	    ...
//	}
package shutdown
