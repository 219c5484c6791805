package progress

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestReporterPublishLatest(t *testing.T) {
	r := NewReporter()

	if r.Latest() != nil {
		t.Error("Latest should be nil before any publish")
	}

	u := &Update{Phase: PhaseScanning, Depth: 1, Completed: 3, Total: 10}
	r.Publish(u)

	got := r.Latest()
	if got == nil {
		t.Fatal("Latest returned nil after publish")
	}
	if got.Completed != 3 || got.Total != 10 {
		t.Errorf("Latest = %d/%d, want 3/10", got.Completed, got.Total)
	}
}

func TestReporterSubscribe(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()

	u := &Update{Phase: PhaseComplete, Depth: 2}
	r.Publish(u)

	select {
	case got := <-ch:
		if got.Phase != PhaseComplete || got.Depth != 2 {
			t.Errorf("received %v at depth %d, want complete at depth 2", got.Phase, got.Depth)
		}
	case <-time.After(time.Second):
		t.Fatal("no update received on subscribed channel")
	}
}

func TestReporterUnsubscribe(t *testing.T) {
	r := NewReporter()
	ch := r.Subscribe()
	r.Unsubscribe(ch)

	// The channel is closed once unsubscribed.
	if _, ok := <-ch; ok {
		t.Error("expected closed channel after unsubscribe")
	}

	// Publishing after unsubscribe must not panic.
	r.Publish(&Update{Phase: PhaseScanning})
}

func TestReporterSlowListenerDoesNotBlock(t *testing.T) {
	r := NewReporter()
	r.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			r.Publish(&Update{Phase: PhaseScanning, Completed: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publish blocked on a full listener channel")
	}
}

func TestFormat(t *testing.T) {
	start := time.Now()

	if got := Format(nil); got != "Initializing..." {
		t.Errorf("Format(nil) = %q", got)
	}

	scanning := Format(&Update{
		Phase:     PhaseScanning,
		Depth:     2,
		Completed: 5,
		Total:     8,
		TotalSize: 1024,
		StartTime: start,
	})
	if !strings.Contains(scanning, "Depth 2") || !strings.Contains(scanning, "5/8") {
		t.Errorf("scanning format missing progress counts: %q", scanning)
	}
	if !strings.Contains(scanning, "1.00 KB") {
		t.Errorf("scanning format missing size: %q", scanning)
	}

	stalled := Format(&Update{Phase: PhaseStalled, Message: "no completions for 30s"})
	if stalled != "no completions for 30s" {
		t.Errorf("stalled format = %q", stalled)
	}

	complete := Format(&Update{Phase: PhaseComplete, Depth: 1, Total: 4, StartTime: start})
	if !strings.Contains(complete, "complete") || !strings.Contains(complete, "4 folders") {
		t.Errorf("complete format = %q", complete)
	}

	errFmt := Format(&Update{Phase: PhaseError, Error: errors.New("boom")})
	if !strings.Contains(errFmt, "boom") {
		t.Errorf("error format = %q", errFmt)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d        time.Duration
		expected string
	}{
		{0, "0s"},
		{45 * time.Second, "45s"},
		{90 * time.Second, "1m30s"},
		{time.Hour + 5*time.Minute + 3*time.Second, "1h5m3s"},
		{2*time.Hour + 30*time.Second, "2h0m30s"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.d); got != tt.expected {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.d, got, tt.expected)
		}
	}
}
