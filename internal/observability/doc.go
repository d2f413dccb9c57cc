// Package observability は統計スナップショットをPrometheusコレクタに反映する。
//
// Exporterはモニタからスナップショットごとに呼ばれ、ゲージ類を更新する。
// HTTPでの公開は行わない: コレクタは注入されたRegistererに登録される
// だけであり、エンドポイントの提供は組み込み側の責務とする。
package observability
