// Package transcript writes the human-readable run log that each invocation
// leaves behind. The file name is deterministic from hostname and UTC start
// time; the content is a convenience for operators, not a machine format.
package transcript

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger appends timestamped lines to the transcript file. A nil Logger is
// valid and discards everything, so callers never need to guard.
type Logger struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// FileName builds the deterministic transcript name for one run.
func FileName(hostname string, start time.Time) string {
	return fmt.Sprintf("dirdrill-%s-%s.log", hostname, start.UTC().Format("20060102-150405"))
}

// New opens a transcript in dir (current directory when empty).
func New(dir, hostname string, start time.Time) (*Logger, error) {
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, FileName(hostname, start))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open transcript %s: %w", path, err)
	}

	l := &Logger{f: f, path: path}
	l.Printf("transcript started on %s", hostname)
	return l, nil
}

// Path returns the transcript file location.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Printf writes one timestamped line.
func (l *Logger) Printf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return
	}
	fmt.Fprintf(l.f, "%s %s\n", time.Now().UTC().Format(time.RFC3339), fmt.Sprintf(format, args...))
}

// Close flushes and closes the transcript.
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}
