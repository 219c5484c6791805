package scanner

import (
	"context"
	"os"
	"path/filepath"
)

// Accumulate computes the recursive size, file count and subfolder count of
// one directory subtree. It never returns an error: a directory whose
// enumeration fails comes back with Accessible=false and whatever totals
// were gathered before the failure. Individual unreadable files are skipped
// without marking the directory inaccessible.
//
// Reparse points are counted as one subfolder but not descended into unless
// FollowReparsePoints is set, so junction cycles cannot recurse forever.
// Largest-file ties resolve to the lexicographically smaller path; the raw
// enumeration order is filesystem-dependent and not part of the contract.
func (s *Scanner) Accumulate(ctx context.Context, path string) FolderStat {
	return s.walk(ctx, path, s.config.OnlyPhysicalFiles)
}

// AccumulateTask measures one scheduled task with the sizing policy the task
// was created under.
func (s *Scanner) AccumulateTask(ctx context.Context, task ScanTask) FolderStat {
	return s.walk(ctx, task.Path, task.OnlyPhysical)
}

func (s *Scanner) walk(ctx context.Context, path string, onlyPhysical bool) FolderStat {
	stat := FolderStat{Path: path, Accessible: true}

	if err := ctx.Err(); err != nil {
		stat.Accessible = false
		stat.Err = err.Error()
		return stat
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		stat.Accessible = false
		stat.Err = err.Error()
		return stat
	}

	for _, ent := range entries {
		childPath := filepath.Join(path, ent.Name())

		switch e := s.classify(childPath, ent); e.Kind {
		case KindFile:
			info, err := ent.Info()
			if err != nil {
				// Vanished or unreadable mid-enumeration; zero contribution
				continue
			}
			size, placeholder := s.physicalSize(childPath, info, onlyPhysical)
			stat.noteFile(childPath, size, placeholder)

		case KindReparsePoint:
			targetInfo, err := os.Stat(childPath)
			if err != nil || !targetInfo.IsDir() {
				// Broken links and file links contribute nothing; counting
				// the target would double-charge it
				continue
			}
			if s.config.FollowReparsePoints {
				child := s.walk(ctx, childPath, onlyPhysical)
				stat.fold(&child)
				continue
			}
			stat.SubfolderCount++

		case KindDir, KindCloudDir:
			if err := ctx.Err(); err != nil {
				stat.Accessible = false
				stat.Err = err.Error()
				return stat
			}
			child := s.walk(ctx, childPath, onlyPhysical)
			stat.fold(&child)
		}
	}

	return stat
}

// AccumulateShallow measures only the files directly inside path. Subfolders
// are counted but never entered. Used for system paths whose deep
// enumeration is known to hang filesystem drivers.
func (s *Scanner) AccumulateShallow(ctx context.Context, path string) FolderStat {
	stat := FolderStat{Path: path, Accessible: true, Shallow: true}

	if err := ctx.Err(); err != nil {
		stat.Accessible = false
		stat.Err = err.Error()
		return stat
	}

	info, err := os.Lstat(path)
	if err != nil {
		stat.Accessible = false
		stat.Err = err.Error()
		return stat
	}
	if !info.IsDir() {
		// Entries like pagefile.sys are single files
		size, placeholder := s.physicalSize(path, info, s.config.OnlyPhysicalFiles)
		stat.noteFile(path, size, placeholder)
		return stat
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		stat.Accessible = false
		stat.Err = err.Error()
		return stat
	}

	for _, ent := range entries {
		if ent.IsDir() {
			stat.SubfolderCount++
			continue
		}
		info, err := ent.Info()
		if err != nil {
			continue
		}
		childPath := filepath.Join(path, ent.Name())
		size, placeholder := s.physicalSize(childPath, info, s.config.OnlyPhysicalFiles)
		stat.noteFile(childPath, size, placeholder)
	}

	return stat
}

// AccumulateSelf measures only the files directly inside path, ignoring
// subdirectories entirely. This is the depth-zero measurement of the start
// path itself.
func (s *Scanner) AccumulateSelf(ctx context.Context, path string) FolderStat {
	stat := s.AccumulateShallow(ctx, path)
	stat.Shallow = false
	stat.SubfolderCount = 0
	return stat
}
