// Package testutil provides tree-building helpers for scanner tests. All
// file operations use t.TempDir() for safe, isolated testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Tree holds the root of a synthetic directory tree
type Tree struct {
	T       *testing.T
	RootDir string
}

// NewTree creates an empty synthetic tree rooted in a temp directory
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{T: t, RootDir: t.TempDir()}
}

// Path returns the full path for a relative path within the tree
func (tr *Tree) Path(relPath string) string {
	return filepath.Join(tr.RootDir, relPath)
}

// CreateDir creates a directory and returns its path
func (tr *Tree) CreateDir(relPath string) string {
	tr.T.Helper()

	fullPath := tr.Path(relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		tr.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFile creates a file of size zero-filled bytes and returns its path
func (tr *Tree) CreateFile(relPath string, size int) string {
	tr.T.Helper()

	fullPath := tr.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		tr.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, make([]byte, size), 0644); err != nil {
		tr.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateSparseFile creates a file whose reported length is size without
// writing that many bytes. Used to fake large cloud-placeholder files.
func (tr *Tree) CreateSparseFile(relPath string, size int64) string {
	tr.T.Helper()

	fullPath := tr.Path(relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		tr.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	f, err := os.Create(fullPath)
	if err != nil {
		tr.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		tr.T.Fatalf("failed to truncate %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateSymlink creates a symbolic link and returns its path. The test is
// skipped when the platform refuses symlink creation.
func (tr *Tree) CreateSymlink(target, linkRelPath string) string {
	tr.T.Helper()

	fullLinkPath := tr.Path(linkRelPath)
	if err := os.MkdirAll(filepath.Dir(fullLinkPath), 0755); err != nil {
		tr.T.Fatalf("failed to create directory for %s: %v", fullLinkPath, err)
	}
	if err := os.Symlink(target, fullLinkPath); err != nil {
		tr.T.Skipf("symlinks not supported here: %v", err)
	}
	return fullLinkPath
}

// CreateDeniedDir creates a directory with a file inside, then revokes read
// permission so enumeration fails. Permissions are restored on cleanup.
func (tr *Tree) CreateDeniedDir(relPath string) string {
	tr.T.Helper()

	dirPath := tr.CreateDir(relPath)
	tr.CreateFile(filepath.Join(relPath, "trapped.dat"), 128)

	if err := os.Chmod(dirPath, 0000); err != nil {
		tr.T.Fatalf("failed to chmod directory %s: %v", dirPath, err)
	}
	tr.T.Cleanup(func() {
		os.Chmod(dirPath, 0755)
	})
	return dirPath
}

// Touch sets a file's modification time
func (tr *Tree) Touch(relPath string, mtime time.Time) {
	tr.T.Helper()
	if err := os.Chtimes(tr.Path(relPath), mtime, mtime); err != nil {
		tr.T.Fatalf("failed to set times for %s: %v", relPath, err)
	}
}

// SkipIfRoot skips the test if running as root, where permission fixtures
// are meaningless.
func SkipIfRoot(t *testing.T) {
	t.Helper()
	if os.Geteuid() == 0 {
		t.Skip("skipping test when running as root")
	}
}
