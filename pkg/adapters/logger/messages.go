package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Capture loop (info)
		"Taking %d picture(s)":                  "%d 枚撮影します",
		"Taking pictures continuously":          "連続撮影を開始します",
		"Taking snapshot (%d of %d)":            "スナップショット撮影中 (%d / %d)",
		"Taking snapshot (%d, continuous)":      "スナップショット撮影中 (%d 枚目, 連続)",
		"Saved %s":                              "%s を保存しました",
		"Sleeping for %s":                       "%s 待機します",
		"Execution complete":                    "撮影が完了しました",
		"Capture cancelled after %d snapshot(s)": "%d 枚撮影後に中断されました",
		"Source exhausted after %d snapshot(s)":  "%d 枚でソースが終端に達しました",
		"Interrupted, shutting down...":         "中断されました。シャットダウン中...",
		"Writing raw frames to %s":              "生フレームを %s に記録します",
		"Summary saved to %s":                   "サマリーを %s に保存しました",

		// Device (debug)
		"Opening device %s":                        "デバイス %s を開いています",
		"Negotiated %s %dx%d (requested %s)":       "%s %dx%d を設定しました (要求: %s)",
		"Starting stream":                          "ストリームを開始します",
		"Stopping stream":                          "ストリームを停止します",
		"Frame wait timed out, retrying":           "フレーム待機がタイムアウトしました。再試行します",
		"Dropping %s frame: no decoder for format": "%s フレームを破棄: 対応していない形式です",
		"Resizing %dx%d to %dx%d":                  "%dx%d を %dx%d に縮小します",
		"Replaying %s":                             "%s を再生します",

		// Warnings
		"Sleep interrupted":                  "待機が中断されました",
		"Dropping frame: %s":                 "フレームを破棄します: %s",
		"Failed to save %s: %s":              "%s の保存に失敗しました: %s",
		"Failed to record raw frame: %s":     "生フレームの記録に失敗しました: %s",
		"Failed to notify supervisor: %s":    "スーパーバイザへの通知に失敗しました: %s",
		"%s exists, saving as %s":            "%s は既に存在するため %s として保存します",
		"Cannot check %s: %s":                "%s を確認できません: %s",

		// Errors
		"Error: path [%s] is not a directory": "エラー: パス [%s] はディレクトリではありません",
		"Failed to take snapshot: %s":         "スナップショットの取得に失敗しました: %s",
		"Invalid configuration: %s":           "設定が不正です: %s",
	})
}
