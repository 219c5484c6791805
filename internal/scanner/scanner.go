package scanner

import (
	"context"

	"github.com/dirdrill/dirdrill/internal/config"
	"github.com/dirdrill/dirdrill/internal/platform"
	"github.com/dirdrill/dirdrill/internal/progress"
)

// Scanner coordinates probing, accumulation, scheduling and drill-down for
// one invocation. It holds only configuration and observers; all per-task
// state lives in the task that owns it.
type Scanner struct {
	config           *config.Config
	platformInfo     *platform.Info
	progressReporter *progress.Reporter
	placeholder      PlaceholderFunc

	// accumulate is replaceable so scheduling behavior can be exercised
	// without touching the filesystem.
	accumulate func(ctx context.Context, task ScanTask) FolderStat
}

// New creates a new Scanner
func New(cfg *config.Config, platformInfo *platform.Info) *Scanner {
	s := &Scanner{
		config:           cfg,
		platformInfo:     platformInfo,
		progressReporter: progress.NewReporter(),
		placeholder:      detectPlaceholder,
	}
	s.accumulate = s.AccumulateTask
	return s
}

// SetProgressReporter sets a custom progress reporter
func (s *Scanner) SetProgressReporter(r *progress.Reporter) {
	s.progressReporter = r
}

// GetProgressReporter returns the scanner's progress reporter
func (s *Scanner) GetProgressReporter() *progress.Reporter {
	return s.progressReporter
}

// SetPlaceholderFunc overrides placeholder detection. Passing nil disables
// it, so every file counts at full size.
func (s *Scanner) SetPlaceholderFunc(fn PlaceholderFunc) {
	s.placeholder = fn
}

// excludedNames returns the configured shallow-scan entry names, falling back
// to the platform defaults.
func (s *Scanner) excludedNames() []string {
	if len(s.config.ExcludeNames) > 0 {
		return s.config.ExcludeNames
	}
	if s.platformInfo != nil {
		return s.platformInfo.ExcludeNames
	}
	return platform.SystemExcludedNames()
}
