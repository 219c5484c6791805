package progress

import (
	"fmt"
	"sync"
	"time"

	"github.com/dirdrill/dirdrill/pkg/utils"
)

// Phase represents the current phase of operation
type Phase string

const (
	PhaseScanning Phase = "scanning"
	PhaseStalled  Phase = "stalled"
	PhaseComplete Phase = "complete"
	PhaseError    Phase = "error"
)

// Update represents progress during a scheduled scan batch
type Update struct {
	Phase       Phase
	Depth       int
	Parent      string
	Completed   int
	Total       int
	TotalSize   uint64
	Outstanding []string // Paths still being worked on (sampled)
	Message     string   // Set for stuck-task warnings
	StartTime   time.Time
	Error       error
}

// Reporter provides thread-safe progress reporting
type Reporter struct {
	latest    *Update
	mu        sync.RWMutex
	listeners []chan *Update
}

// NewReporter creates a new progress reporter
func NewReporter() *Reporter {
	return &Reporter{
		listeners: make([]chan *Update, 0),
	}
}

// Subscribe returns a channel that receives progress updates
func (r *Reporter) Subscribe() <-chan *Update {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan *Update, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel
func (r *Reporter) Unsubscribe(ch <-chan *Update) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish records an update and notifies listeners (non-blocking)
func (r *Reporter) Publish(update *Update) {
	r.mu.Lock()
	r.latest = update
	listeners := make([]chan *Update, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- update:
		default:
			// Skip if channel is full
		}
	}
}

// Latest returns the most recent update
func (r *Reporter) Latest() *Update {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.latest
}

// Format returns a human-readable progress string
func Format(u *Update) string {
	if u == nil {
		return "Initializing..."
	}

	elapsed := time.Since(u.StartTime)

	switch u.Phase {
	case PhaseScanning:
		return fmt.Sprintf("Depth %d: %d/%d folders (%s) [%s]",
			u.Depth,
			u.Completed,
			u.Total,
			utils.FormatBytes(u.TotalSize),
			FormatDuration(elapsed))
	case PhaseStalled:
		return u.Message
	case PhaseComplete:
		return fmt.Sprintf("Depth %d complete: %d folders (%s) in %s",
			u.Depth,
			u.Total,
			utils.FormatBytes(u.TotalSize),
			FormatDuration(elapsed))
	case PhaseError:
		return fmt.Sprintf("Scan error: %v", u.Error)
	default:
		return "Scanning..."
	}
}

// FormatDuration formats duration in human-readable format
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)

	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%dm%ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
