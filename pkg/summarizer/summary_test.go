package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Error("GeneratedAt should be set to current time")
	}
}

func TestBuilder_FullChain(t *testing.T) {
	at := time.Date(2014, 3, 9, 18, 5, 7, 0, time.UTC)
	files := []string{"/data/2014-03-09_18-05-07.jpg"}

	summary := NewBuilder().
		WithGeneratedAt(at).
		WithSettings(Settings{Camera: "IR", NumPictures: 5, Delay: 10 * time.Second}).
		WithResults(Results{State: "done", Attempts: 5, Saved: 5}).
		WithFiles(files).
		Build()

	if !summary.GeneratedAt.Equal(at) {
		t.Errorf("expected %v, got %v", at, summary.GeneratedAt)
	}
	if summary.Settings.Camera != "IR" || summary.Settings.NumPictures != 5 {
		t.Errorf("unexpected settings %+v", summary.Settings)
	}
	if summary.Results.Saved != 5 {
		t.Errorf("unexpected results %+v", summary.Results)
	}

	files[0] = "changed"
	if summary.Files[0] == "changed" {
		t.Error("expected files to be copied")
	}
}

func TestStatusLine(t *testing.T) {
	s := NewBuilder().
		WithResults(Results{State: "done", Saved: 3, Dropped: 1, Duration: 2500 * time.Millisecond}).
		Build()

	got := StatusLine.Format(s)
	want := "done: 3 saved, 1 dropped, 0 failed in 2.5s"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
