// Package main provides localization for the streamdec CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Decode HEVC bitstreams into raw YUV output": "HEVCビットストリームをYUV出力にデコード",

		// Decode command
		"Decode a bitstream file to raw YUV or Y4M": "ビットストリームファイルをYUVまたはY4Mにデコード",
		"Output file path (.y4m or raw .yuv)":       "出力ファイルパス（.y4mまたは.yuv）",
		"YAML configuration file":                   "YAML設定ファイル",
		"Input framing (auto, packetized, raw)":     "入力フレーミング（auto, packetized, raw）",
		"Frame rate override numerator":             "フレームレート上書きの分子",
		"Frame rate override denominator":           "フレームレート上書きの分母",
		"Engine worker threads (0 = core count)":    "エンジンワーカースレッド数（0 = コア数）",
		"Raw-mode read size in bytes":               "rawモードの読み込みサイズ（バイト）",

		// Preview flags
		"Write a PNG contact sheet to this path":       "PNGコンタクトシートをこのパスに書き出す",
		"Sample every Nth frame for the contact sheet": "コンタクトシート用にNフレームごとにサンプリング",
		"Contact sheet columns":                        "コンタクトシートのカラム数",

		// Summary flag
		"Output decode summary to file (Markdown format)": "デコードサマリーをファイルに出力（Markdown形式）",
		"Summary saved to %s":                             "サマリーを %s に保存しました",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Info command
		"Show bitstream information": "ビットストリーム情報を表示",
		"Container":                  "コンテナ",
		"Codec":                      "コーデック",
		"Track":                      "トラック",
		"Timescale":                  "タイムスケール",
		"Samples":                    "サンプル数",
		"Duration":                   "再生時間",
		"Parameter sets":             "パラメータセット数",

		// Version command
		"Show version information": "バージョン情報を表示",
		"streamdec version %s":     "streamdec バージョン %s",

		// Error messages
		"INPUT argument is required": "INPUT引数が必要です",
	})
}
