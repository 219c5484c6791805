package ui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		max      int
		expected string
	}{
		{"short unchanged", "scan", 10, "scan"},
		{"exact fit", "scanning", 8, "scanning"},
		{"ascii cut", "scanning /data/videos", 10, "scannin..."},
		{"tiny max unchanged", "scanning", 3, "scanning"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.max); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.max, got, tt.expected)
			}
		})
	}
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	// Multibyte directory names must never be cut mid-rune
	path := "/данные/видео/архив/съёмки"
	for max := 4; max < utf8.RuneCountInString(path)+2; max++ {
		got := truncate(path, max)
		if !utf8.ValidString(got) {
			t.Fatalf("truncate(%q, %d) produced invalid UTF-8: %q", path, max, got)
		}
		if utf8.RuneCountInString(got) > max {
			t.Errorf("truncate(%q, %d) kept %d runes", path, max, utf8.RuneCountInString(got))
		}
	}
}

func TestBanner(t *testing.T) {
	b := Banner("/srv/data", 10, 5, 8, true)
	for _, want := range []string{"/srv/data", "depth 10", "top 5", "8 workers", "physical sizes"} {
		if !strings.Contains(b, want) {
			t.Errorf("banner missing %q: %s", want, b)
		}
	}

	b = Banner("/srv/data", 10, 5, 8, false)
	if strings.Contains(b, "physical sizes") {
		t.Error("banner should omit the physical-sizes note when disabled")
	}
}
