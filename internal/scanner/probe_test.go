package scanner

import (
	"os"
	"testing"

	"github.com/dirdrill/dirdrill/internal/testutil"
)

func readEntry(t *testing.T, dir, name string) os.DirEntry {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	for _, ent := range entries {
		if ent.Name() == name {
			return ent
		}
	}
	t.Fatalf("entry %s not found in %s", name, dir)
	return nil
}

func TestClassifyKinds(t *testing.T) {
	tree := testutil.NewTree(t)
	tree.CreateFile("plain.txt", 10)
	tree.CreateDir("folder")
	tree.CreateSymlink(tree.Path("folder"), "link")

	s := newTestScanner(t, testConfig(tree.RootDir))

	if e := s.classify(tree.Path("plain.txt"), readEntry(t, tree.RootDir, "plain.txt")); e.Kind != KindFile {
		t.Errorf("plain.txt classified as %v, want file", e.Kind)
	}
	if e := s.classify(tree.Path("folder"), readEntry(t, tree.RootDir, "folder")); e.Kind != KindDir {
		t.Errorf("folder classified as %v, want dir", e.Kind)
	}
	e := s.classify(tree.Path("link"), readEntry(t, tree.RootDir, "link"))
	if e.Kind != KindReparsePoint || e.Reparse != ReparseSymlink {
		t.Errorf("link classified as %v/%v, want reparse/symlink", e.Kind, e.Reparse)
	}
}

func TestPhysicalSizeFailsOpen(t *testing.T) {
	tree := testutil.NewTree(t)
	path := tree.CreateFile("file.bin", 2048)
	info, err := os.Lstat(path)
	if err != nil {
		t.Fatal(err)
	}

	cfg := testConfig(tree.RootDir)
	cfg.OnlyPhysicalFiles = true
	s := newTestScanner(t, cfg)

	// With detection disabled entirely, files count at full size
	s.SetPlaceholderFunc(nil)
	size, placeholder := s.physicalSize(path, info, true)
	if placeholder {
		t.Error("no detector, nothing should register as a placeholder")
	}
	if size != 2048 {
		t.Errorf("size = %d, want 2048", size)
	}

	// A detector that cannot decide must say "present", never "remote"
	s.SetPlaceholderFunc(func(p string, i os.FileInfo) bool { return false })
	size, _ = s.physicalSize(path, info, true)
	if size != 2048 {
		t.Errorf("size = %d, want 2048", size)
	}
}

func TestPhysicalSizePlaceholderNominal(t *testing.T) {
	tree := testutil.NewTree(t)
	path := tree.CreateFile("remote.bin", 4096)
	info, err := os.Lstat(path)
	if err != nil {
		t.Fatal(err)
	}

	s := newTestScanner(t, testConfig(tree.RootDir))
	s.SetPlaceholderFunc(func(p string, i os.FileInfo) bool { return true })

	size, placeholder := s.physicalSize(path, info, true)
	if !placeholder {
		t.Error("expected placeholder verdict")
	}
	if size != PlaceholderNominalSize {
		t.Errorf("size = %d, want %d", size, PlaceholderNominalSize)
	}

	// Without the physical-only policy the nominal length is kept
	size, placeholder = s.physicalSize(path, info, false)
	if !placeholder || size != 4096 {
		t.Errorf("size = %d placeholder = %v, want 4096/true", size, placeholder)
	}
}
