package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dirdrill/dirdrill/internal/progress"
)

// maxOutstandingListed caps how many stalled paths a warning names before
// collapsing to a count.
const maxOutstandingListed = 8

// BatchResult is what one scheduled batch produces: a stat per input path
// plus the paths abandoned at the hard deadline.
type BatchResult struct {
	Stats       map[string]FolderStat
	Unprocessed []string
}

// ScheduleAll fans Accumulate out over paths with a bounded worker pool and
// collects completions. Every input path gets exactly one entry in the
// result: a real measurement, an inaccessible marker, or an abandoned marker
// if it was still outstanding when the hard timeout fired. Workers tied to
// abandoned paths are cancelled best-effort but never waited for.
func (s *Scanner) ScheduleAll(ctx context.Context, depth int, parent string, paths []string) *BatchResult {
	result := &BatchResult{Stats: make(map[string]FolderStat, len(paths))}
	if len(paths) == 0 {
		return result
	}

	ctx, cancel := context.WithTimeout(ctx, s.config.HardTimeout())
	defer cancel()

	// Buffered to the task count so a worker finishing after abandonment
	// never blocks on a collector that has moved on.
	completions := make(chan FolderStat, len(paths))

	g := &errgroup.Group{}
	g.SetLimit(s.config.MaxWorkers)
	for _, p := range paths {
		task := ScanTask{Path: p, OnlyPhysical: s.config.OnlyPhysicalFiles}
		g.Go(func() error {
			completions <- s.accumulate(ctx, task)
			return nil
		})
	}
	go g.Wait()

	startTime := time.Now()
	lastCompletion := startTime
	ticker := time.NewTicker(s.config.PollInterval())
	defer ticker.Stop()

	var totalSize uint64
	publish := func(phase progress.Phase, message string) {
		s.progressReporter.Publish(&progress.Update{
			Phase:       phase,
			Depth:       depth,
			Parent:      parent,
			Completed:   len(result.Stats),
			Total:       len(paths),
			TotalSize:   totalSize,
			Outstanding: outstanding(paths, result.Stats, maxOutstandingListed),
			Message:     message,
			StartTime:   startTime,
		})
	}

	for len(result.Stats) < len(paths) {
		select {
		case stat := <-completions:
			result.Stats[stat.Path] = stat
			totalSize += stat.SizeBytes
			lastCompletion = time.Now()
			publish(progress.PhaseScanning, "")

		case <-ticker.C:
			if time.Since(lastCompletion) >= s.config.QuietWindow() {
				publish(progress.PhaseStalled, stalledMessage(paths, result.Stats, time.Since(lastCompletion)))
				// Re-arm so the warning repeats once per quiet window,
				// not once per tick
				lastCompletion = time.Now()
				continue
			}
			publish(progress.PhaseScanning, "")

		case <-ctx.Done():
			// Hard deadline or caller cancellation: abandon stragglers and
			// stop waiting
			detail := fmt.Sprintf("abandoned after %s: %v",
				progress.FormatDuration(time.Since(startTime)), ctx.Err())
			for _, p := range paths {
				if _, ok := result.Stats[p]; ok {
					continue
				}
				result.Unprocessed = append(result.Unprocessed, p)
				result.Stats[p] = FolderStat{
					Path:      p,
					Abandoned: true,
					Err:       detail,
				}
			}
			publish(progress.PhaseComplete, "")
			return result
		}
	}

	publish(progress.PhaseComplete, "")
	return result
}

// outstanding returns up to limit input paths that have no result yet.
func outstanding(paths []string, done map[string]FolderStat, limit int) []string {
	var out []string
	for _, p := range paths {
		if _, ok := done[p]; ok {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	return out
}

// stalledMessage describes which tasks look stuck, naming paths when few
// enough to list.
func stalledMessage(paths []string, done map[string]FolderStat, quiet time.Duration) string {
	remaining := len(paths) - len(done)
	sample := outstanding(paths, done, maxOutstandingListed)
	if remaining > maxOutstandingListed {
		return fmt.Sprintf("no completions for %s; %d folders still outstanding",
			progress.FormatDuration(quiet), remaining)
	}
	return fmt.Sprintf("no completions for %s; still working on: %s",
		progress.FormatDuration(quiet), strings.Join(sample, ", "))
}
