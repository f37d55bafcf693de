// Package main provides localization for the kinectlapse CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI output and the summary.
	l10n.Register("ja", l10n.LexiconMap{
		// Commands
		"Take time-lapse pictures with a Kinect RGB or IR camera.": "Kinect の RGB / IR カメラでタイムラプス写真を撮影します。",
		"kinectlapse version %s":                                   "kinectlapse バージョン %s",

		// Formats command
		"%s offers no pixel formats": "%s は利用可能なピクセル形式を提供していません",

		// Dump command
		"record %d logged=%s %s %dx%d timestamp=%d size=%d": "レコード %d 記録=%s %s %dx%d タイムスタンプ=%d サイズ=%d",
		"  skipped: %s":                                     "  スキップ: %s",
		"  skipped: no decoder for %s":                      "  スキップ: %s のデコーダがありません",

		// Summary
		"Run finished: %s":            "実行終了: %s",
		"Failed to write summary: %s": "サマリーの書き込みに失敗しました: %s",
		"Capture Summary":             "撮影サマリー",
		"Generated":                   "生成日時",
		"Settings":                    "設定",
		"Results":                     "実行結果",
		"Files":                       "ファイル",
		"Item":                        "項目",
		"Value":                       "値",
		"Source":                      "入力",
		"Device":                      "デバイス",
		"Camera":                      "カメラ",
		"Image Format":                "画像形式",
		"Pictures":                    "撮影枚数",
		"Continuous":                  "連続",
		"Delay":                       "間隔",
		"Output Directory":            "出力先",
		"State":                       "状態",
		"Attempts":                    "試行回数",
		"Saved":                       "保存",
		"Dropped":                     "破棄",
		"Failed":                      "失敗",
		"Duration":                    "所要時間",
		"Total Size":                  "合計サイズ",
		"and %d more":                 "他 %d 件",

		// States
		"done":      "完了",
		"aborted":   "中止",
		"cancelled": "キャンセル",
	})
}
