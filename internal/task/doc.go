// Package task はワーカープールが処理する作業単位を定義する。
//
// Taskは生成者（ジェネレータまたはストレスインジェクタ）が作成し、
// キューへの投入で所有権がキューに移り、取り出した1つのワーカーに移る。
// 処理完了後は参照されない（共有されることはない）。
package task
