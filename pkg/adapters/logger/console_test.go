package logger

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/user/kinectlapse/pkg/ports"
)

func newTestLogger(level ports.LogLevel) (*ConsoleLogger, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	l := NewWriter(level, &out, &errOut)
	l.now = func() time.Time { return time.Date(2014, 3, 9, 18, 5, 7, 0, time.UTC) }
	return l, &out, &errOut
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	l, out, errOut := newTestLogger(ports.LevelInfo)

	l.Debug("hidden %d", 1)
	l.Info("Taking snapshot (%d of %d)", 1, 3)
	l.Warn("Sleep interrupted")

	if strings.Contains(out.String(), "hidden") {
		t.Error("expected debug message to be filtered")
	}
	if !strings.Contains(out.String(), "Taking snapshot (1 of 3)") {
		t.Errorf("expected info message on stdout, got %q", out.String())
	}
	if !strings.Contains(errOut.String(), "Sleep interrupted") {
		t.Errorf("expected warning on stderr, got %q", errOut.String())
	}
	if strings.Contains(out.String(), "Sleep interrupted") {
		t.Error("expected warning not to be written to stdout")
	}
}

func TestConsoleLogger_Format(t *testing.T) {
	l, out, _ := newTestLogger(ports.LevelDebug)

	l.WithComponent("webcam").Debug("Starting stream")

	want := "2014-03-09 18:05:07 debug [webcam] Starting stream\n"
	if out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestConsoleLogger_WithComponentKeepsParent(t *testing.T) {
	l, out, _ := newTestLogger(ports.LevelInfo)

	_ = l.WithComponent("capture")
	l.Info("Execution complete")

	if strings.Contains(out.String(), "[capture]") {
		t.Error("expected parent logger to stay without component prefix")
	}
}

func TestConsoleLogger_Quiet(t *testing.T) {
	l, out, errOut := newTestLogger(ports.LevelQuiet)

	l.Error("Failed to take snapshot: %s", "boom")

	if out.Len() != 0 || errOut.Len() != 0 {
		t.Error("expected no output in quiet mode")
	}
}
