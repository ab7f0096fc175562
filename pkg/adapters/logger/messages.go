package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Starting decode pipeline":      "デコードパイプラインを開始します",
		"Decode completed successfully": "デコードが正常に完了しました",
		"Interrupted, shutting down...": "中断されました。シャットダウン中...",
		"Decoding %s (%s input)...":     "%s をデコード中 (%s 入力)...",
		"Detected %s input":             "%s 入力を検出しました",
		"Output saved to %s":            "出力を %s に保存しました",

		// Decode stage
		"Started %d engine worker threads":     "%d 個のエンジンワーカースレッドを開始しました",
		"Output format changed to %dx%d":       "出力フォーマットが %dx%d に変わりました",
		"Decoded %d frames in %d ms":           "%d フレームを %d ms でデコードしました",
		"Flushing decoder":                     "デコーダをフラッシュ中",
		"Sampling every %d frames for preview": "プレビュー用に %d フレームごとにサンプリング中",

		// Preview stage
		"Rendering contact sheet with %d frames": "%d フレームでコンタクトシートをレンダリング中",
		"Preview sheet saved to %s":              "プレビューシートを %s に保存しました",

		// Warnings
		"Engine warning: %s (code=%d)":              "エンジン警告: %s (コード=%d)",
		"Failed to start engine worker threads: %s": "エンジンワーカースレッドの開始に失敗しました: %s",

		// Errors
		"Failed to write output: %s": "出力の書き込みに失敗しました: %s",
	})
}
