package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dirdrill/dirdrill/internal/platform"
)

// Rank sorts stats by size descending and returns the first topK. Equal
// sizes order by path ascending so a finished result set always ranks the
// same way.
func Rank(stats []FolderStat, topK int) []FolderStat {
	ranked := make([]FolderStat, len(stats))
	copy(ranked, stats)

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].SizeBytes != ranked[j].SizeBytes {
			return ranked[i].SizeBytes > ranked[j].SizeBytes
		}
		return ranked[i].Path < ranked[j].Path
	})

	if topK > 0 && topK < len(ranked) {
		ranked = ranked[:topK]
	}
	return ranked
}

// Drill runs the full analysis: measure the start path itself, then at each
// level scan its immediate subdirectories in parallel, rank them, and
// descend into the single largest one until MaxDepth is reached or no
// candidate remains. Only the winner is descended into; the rest of the
// top-K is display-only, which bounds total work to depth times breadth.
func (s *Scanner) Drill(ctx context.Context) (*DrillResult, error) {
	start := time.Now()

	startPath, err := filepath.Abs(s.config.StartPath)
	if err != nil {
		return nil, fmt.Errorf("invalid start path %q: %w", s.config.StartPath, err)
	}
	info, err := os.Stat(startPath)
	if err != nil {
		return nil, fmt.Errorf("start path %q: %w", startPath, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("start path %q is not a directory", startPath)
	}

	result := &DrillResult{StartPath: startPath}
	excluded := s.excludedNames()

	// A denied path deep under the drill chain is folded into an ancestor's
	// failures at one level and surfaces as its own inaccessible stat at the
	// next; record each path once.
	seenFailures := make(map[string]bool)
	recordFailure := func(f Failure) {
		if seenFailures[f.Path] {
			return
		}
		seenFailures[f.Path] = true
		result.Failures = append(result.Failures, f)
	}

	// Depth 0 ranks the start path's own children; each further level is
	// one descent into the previous winner, up to MaxDepth descents.
	current := startPath
	for depth := 0; depth <= s.config.MaxDepth; depth++ {
		normal, shallow, err := s.listChildren(current, excluded)
		if err != nil {
			if depth == 0 {
				return nil, fmt.Errorf("cannot enumerate start path %q: %w", current, err)
			}
			// Deeper levels degrade instead of aborting the whole run
			recordFailure(Categorize(current, err))
			break
		}

		level := LevelResult{
			Depth:  depth,
			Parent: current,
			Self:   s.AccumulateSelf(ctx, current),
		}

		batch := s.ScheduleAll(ctx, depth, current, normal)
		stats := make([]FolderStat, 0, len(batch.Stats)+len(shallow))
		for _, st := range batch.Stats {
			stats = append(stats, st)
		}
		for _, p := range shallow {
			stats = append(stats, s.AccumulateShallow(ctx, p))
		}

		rankedAll := Rank(stats, 0)
		level.Ranked = Rank(rankedAll, s.config.Top)
		result.Levels = append(result.Levels, level)
		result.Unprocessed = append(result.Unprocessed, batch.Unprocessed...)
		for _, st := range stats {
			for _, f := range st.Failures {
				recordFailure(f)
			}
			if !st.Accessible && !st.Abandoned {
				recordFailure(Failure{
					Path:   st.Path,
					Reason: ReasonFromMessage(st.Err),
					Detail: st.Err,
				})
			}
		}

		if depth == 0 {
			result.TotalSize = level.Self.SizeBytes
			result.TotalFiles = level.Self.FileCount
			for _, st := range stats {
				result.TotalSize += st.SizeBytes
				result.TotalFiles += st.FileCount
			}
			if len(normal)+len(shallow) == 0 && level.Self.FileCount == 0 {
				return nil, fmt.Errorf("no enumerable entries under %q", startPath)
			}
		}

		winner := pickWinner(rankedAll)
		if winner == nil {
			break
		}
		current = winner.Path

		if err := ctx.Err(); err != nil {
			break
		}
	}

	result.ElapsedMs = time.Since(start).Milliseconds()
	return result, nil
}

// pickWinner returns the largest entry worth descending into, or nil when
// the drill should stop. Shallow system entries are not drill candidates at
// all, so they are skipped; an inaccessible, abandoned or empty winner ends
// the drill.
func pickWinner(ranked []FolderStat) *FolderStat {
	for _, w := range ranked {
		if w.Shallow {
			continue
		}
		if !w.Accessible || w.Abandoned {
			return nil
		}
		if w.SizeBytes == 0 && w.SubfolderCount == 0 {
			return nil
		}
		return &w
	}
	return nil
}

// listChildren splits the immediate subdirectories of path into the normal
// parallel batch and the shallow-scan set of known-problematic system
// entries. Problematic file entries (pagefile and friends) also land in the
// shallow set so they show up in rankings without being enumerated.
func (s *Scanner) listChildren(path string, excluded []string) (normal, shallow []string, err error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, nil, err
	}

	for _, ent := range entries {
		childPath := filepath.Join(path, ent.Name())
		if platform.IsExcludedName(ent.Name(), excluded) {
			shallow = append(shallow, childPath)
			continue
		}
		if !ent.IsDir() {
			continue
		}
		normal = append(normal, childPath)
	}
	return normal, shallow, nil
}
