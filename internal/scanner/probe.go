package scanner

import (
	"io/fs"
	"os"
)

// EntryKind classifies a directory entry for traversal policy
type EntryKind int

const (
	KindFile EntryKind = iota
	KindDir
	KindReparsePoint
	KindCloudDir
)

// ReparseKind distinguishes reparse-point sub-kinds. Cloud-placeholder
// directories are walked like ordinary directories; everything else is a
// cycle risk and is not descended into by default.
type ReparseKind int

const (
	ReparseNone ReparseKind = iota
	ReparseSymlink
	ReparseJunction
	ReparseMountPoint
	ReparseCloud
)

// Entry is the probe's verdict for a single directory entry
type Entry struct {
	Kind    EntryKind
	Reparse ReparseKind
}

// PlaceholderFunc reports whether a file is a cloud placeholder whose content
// is not fully resident locally. Detection is provider-specific, so the
// check is injectable; implementations must return false when attributes
// cannot be read (over-counting beats silently under-reporting).
type PlaceholderFunc func(path string, info os.FileInfo) bool

// PlaceholderNominalSize is charged for a non-resident placeholder when only
// physically present bytes are wanted.
const PlaceholderNominalSize = 1024

// classify determines the traversal policy for one directory entry.
func (s *Scanner) classify(path string, ent fs.DirEntry) Entry {
	if ent.Type()&fs.ModeSymlink != 0 {
		return Entry{Kind: KindReparsePoint, Reparse: ReparseSymlink}
	}
	if ent.IsDir() {
		switch k := reparseDirKind(path); k {
		case ReparseCloud:
			return Entry{Kind: KindCloudDir, Reparse: k}
		case ReparseNone:
			return Entry{Kind: KindDir}
		default:
			return Entry{Kind: KindReparsePoint, Reparse: k}
		}
	}
	if ent.Type()&fs.ModeIrregular != 0 {
		// Mount points and other reparse entries surface as irregular
		// on some platforms
		return Entry{Kind: KindReparsePoint, Reparse: ReparseMountPoint}
	}
	return Entry{Kind: KindFile}
}

// physicalSize returns the bytes to charge for a file and whether it was a
// placeholder. With onlyPhysical set, non-resident placeholders are charged
// a nominal constant instead of their cloud-reported length.
func (s *Scanner) physicalSize(path string, info os.FileInfo, onlyPhysical bool) (uint64, bool) {
	placeholder := false
	if s.placeholder != nil {
		placeholder = s.placeholder(path, info)
	}

	if placeholder && onlyPhysical {
		return PlaceholderNominalSize, true
	}

	size := allocatedSize(path, info)
	if size < 0 {
		size = 0
	}
	return uint64(size), placeholder
}
