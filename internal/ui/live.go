package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/dirdrill/dirdrill/internal/progress"
)

// LiveProgress rewrites a single status line in place while a scan batch
// runs. It stays quiet when stdout is not a terminal.
type LiveProgress struct {
	mu         sync.Mutex
	termWidth  int
	enabled    bool
	lastUpdate time.Time
}

// NewLiveProgress creates a live status line bound to stdout
func NewLiveProgress() *LiveProgress {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	enabled := err == nil && width > 0
	if width <= 0 {
		width = 80
	}

	return &LiveProgress{
		termWidth: width,
		enabled:   enabled,
	}
}

// Update redraws the status line for a progress update. Stalled warnings
// always print on their own line so they survive the redraw.
func (lp *LiveProgress) Update(u *progress.Update) {
	if !lp.enabled || u == nil {
		return
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()

	if u.Phase == progress.PhaseStalled {
		fmt.Printf("\r\033[K! %s\n", truncate(u.Message, lp.termWidth-2))
		return
	}

	// Throttle redraws to avoid flickering
	now := time.Now()
	if u.Phase != progress.PhaseComplete && now.Sub(lp.lastUpdate) < 100*time.Millisecond {
		return
	}
	lp.lastUpdate = now

	line := progress.Format(u)
	if len(u.Outstanding) > 0 && u.Phase == progress.PhaseScanning {
		line += " " + u.Outstanding[0]
	}
	fmt.Printf("\r\033[K%s", truncate(line, lp.termWidth-1))
}

// Finish clears the status line
func (lp *LiveProgress) Finish() {
	if !lp.enabled {
		return
	}
	lp.mu.Lock()
	defer lp.mu.Unlock()
	fmt.Print("\r\033[K")
}

// truncate shortens s to max runes. Paths can carry multibyte names, so
// slicing happens on runes rather than bytes.
func truncate(s string, max int) string {
	if max <= 3 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// Banner prints the run header the way operators expect to see it in the
// transcript too.
func Banner(startPath string, maxDepth, top, workers int, physicalOnly bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyzing %s (depth %d, top %d, %d workers", startPath, maxDepth, top, workers)
	if physicalOnly {
		b.WriteString(", physical sizes")
	}
	b.WriteString(")")
	return b.String()
}
