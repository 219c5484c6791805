//go:build !windows

package scanner

import "os"

// reparseDirKind on non-Windows platforms has nothing beyond symlinks to
// detect; those are already caught from the entry mode before lstat.
func reparseDirKind(path string) ReparseKind {
	return ReparseNone
}

// allocatedSize falls back to the logical length; there is no separate
// on-disk figure worth a second syscall here.
func allocatedSize(path string, info os.FileInfo) int64 {
	return info.Size()
}

// detectPlaceholder is the platform default placeholder check. No cloud-sync
// attribute bit exists off Windows, so nothing is ever treated as remote.
func detectPlaceholder(path string, info os.FileInfo) bool {
	return false
}
