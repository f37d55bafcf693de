package summarizer

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/kinectlapse/pkg/mocks"
)

func testSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2014, 3, 9, 18, 5, 7, 0, time.UTC),
		Settings: Settings{
			Device:      "/dev/video1",
			Source:      "webcam",
			Camera:      "IR",
			Format:      "jpeg",
			NumPictures: 3,
			Delay:       10 * time.Second,
			OutputPath:  "/data/lapse",
		},
		Results: Results{
			State:    "done",
			Attempts: 3,
			Saved:    2,
			Dropped:  1,
			Duration: 21500 * time.Millisecond,
			Bytes:    1024 * 1024,
		},
		Files: []string{
			"/data/lapse/2014-03-09_18-05-07.jpg",
			"/data/lapse/2014-03-09_18-05-27.jpg",
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(testSummary())

	checks := []string{
		"# Capture Summary",
		"2014-03-09 18:05:07",
		"| Device | /dev/video1 |",
		"| Camera | IR |",
		"| Pictures | 3 |",
		"| Delay | 10s |",
		"| State | done |",
		"| Saved | 2 |",
		"| Dropped | 1 |",
		"| Duration | 21.5s |",
		"1.00 MB",
		"`/data/lapse/2014-03-09_18-05-27.jpg`",
	}

	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}
}

func TestMarkdownFormatter_Continuous(t *testing.T) {
	s := testSummary()
	s.Settings.NumPictures = 0
	s.Results.Bytes = 0

	result := NewMarkdownFormatter().Format(s)

	if !strings.Contains(result, "| Pictures | Continuous |") {
		t.Error("expected continuous mode to be shown")
	}
	if strings.Contains(result, "Total Size") {
		t.Error("expected unknown size to be omitted")
	}
}

func TestMarkdownFormatter_TruncatesFileList(t *testing.T) {
	s := testSummary()
	s.Files = nil
	for i := 0; i < maxListedFiles+5; i++ {
		s.Files = append(s.Files, fmt.Sprintf("/data/%03d.jpg", i))
	}

	result := NewMarkdownFormatter().Format(s)

	if strings.Contains(result, fmt.Sprintf("/data/%03d.jpg", maxListedFiles)) {
		t.Error("expected the file list to be truncated")
	}
	if !strings.Contains(result, "and 5 more") {
		t.Error("expected a remainder line")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	translator := func(key string) string {
		translations := map[string]string{
			"Capture Summary": "撮影サマリー",
			"Camera":          "カメラ",
			"done":            "完了",
		}
		if v, ok := translations[key]; ok {
			return v
		}
		return key
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(testSummary())

	for _, want := range []string{"撮影サマリー", "| カメラ | IR |", "| State | 完了 |"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(testSummary())

	if !strings.Contains(result, "kinectlapse v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "summary" }), fs)

	path := filepath.Join("reports", "run.md")
	if err := w.Write(path, testSummary()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, ok := fs.GetFile(path)
	if !ok || string(data) != "summary" {
		t.Errorf("expected summary to be written, got %q", data)
	}
}
