package transcript

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	start := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

	got := FileName("server01", start)
	want := "dirdrill-server01-20250314-092653.log"
	if got != want {
		t.Errorf("FileName = %q, want %q", got, want)
	}
}

func TestFileNameConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	start := time.Date(2025, 3, 14, 14, 26, 53, 0, loc)

	got := FileName("host", start)
	if !strings.Contains(got, "20250314-092653") {
		t.Errorf("FileName should use UTC time, got %q", got)
	}
}

func TestLoggerWritesLines(t *testing.T) {
	dir := t.TempDir()

	l, err := New(dir, "testhost", time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	l.Printf("scanning %s at depth %d", "/data", 2)
	l.Printf("done")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(l.Path())
	if err != nil {
		t.Fatalf("reading transcript: %v", err)
	}
	content := string(data)

	if !strings.Contains(content, "transcript started on testhost") {
		t.Error("missing start line")
	}
	if !strings.Contains(content, "scanning /data at depth 2") {
		t.Error("missing formatted line")
	}

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want 3", len(lines))
	}
	for _, line := range lines {
		// Each line starts with an RFC3339 timestamp.
		fields := strings.SplitN(line, " ", 2)
		if _, err := time.Parse(time.RFC3339, fields[0]); err != nil {
			t.Errorf("line %q has no valid timestamp prefix", line)
		}
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger

	l.Printf("ignored %d", 1)
	if got := l.Path(); got != "" {
		t.Errorf("nil Path = %q, want empty", got)
	}
	if err := l.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	l, err := New(t.TempDir(), "host", time.Now())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	l.Printf("after close") // must not panic
}

func TestNewFailsOnMissingDir(t *testing.T) {
	if _, err := New("/nonexistent/path/for/test", "host", time.Now()); err == nil {
		t.Error("expected error for missing directory")
	}
}
