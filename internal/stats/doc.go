// Package stats はワーカーごとの処理統計を集約する。
//
// Aggregatorは全ワーカースロットと全体カウンタを1つのロックで保護する。
// 更新は模擬処理に比べて十分軽いため、ワーカーごとのロック分割は
// 行っていない。モニタとレポートはSnapshotで取得した一貫したコピー
// だけを読む。
package stats
