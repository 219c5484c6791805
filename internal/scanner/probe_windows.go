//go:build windows

package scanner

import (
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procGetCompressedFileSize = kernel32.NewProc("GetCompressedFileSizeW")
)

// Cloud provider reparse tags share the 0x9000xxxx family.
const cloudReparseTagMask = 0xFFFF0000
const cloudReparseTagBase = 0x90000000

const invalidFileSize = 0xFFFFFFFF

// reparseDirKind inspects the directory's reparse tag to tell junctions,
// mount points and cloud-sync roots apart.
func reparseDirKind(path string) ReparseKind {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return ReparseNone
	}

	var fd windows.Win32finddata
	h, err := windows.FindFirstFile(p, &fd)
	if err != nil {
		return ReparseNone
	}
	windows.FindClose(h)

	if fd.FileAttributes&windows.FILE_ATTRIBUTE_REPARSE_POINT == 0 {
		return ReparseNone
	}

	switch {
	case fd.Reserved0 == windows.IO_REPARSE_TAG_SYMLINK:
		return ReparseSymlink
	case fd.Reserved0 == windows.IO_REPARSE_TAG_MOUNT_POINT:
		// Junctions and volume mount points share this tag
		return ReparseJunction
	case fd.Reserved0&cloudReparseTagMask == cloudReparseTagBase:
		return ReparseCloud
	default:
		return ReparseMountPoint
	}
}

// allocatedSize asks for the size actually occupied on disk, which differs
// from the logical length for compressed and sparse files.
func allocatedSize(path string, info os.FileInfo) int64 {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return info.Size()
	}

	var hi uint32
	lo, _, callErr := procGetCompressedFileSize.Call(
		uintptr(unsafe.Pointer(p)), uintptr(unsafe.Pointer(&hi)))
	if uint32(lo) == invalidFileSize && callErr != windows.ERROR_SUCCESS {
		return info.Size()
	}
	return int64(hi)<<32 | int64(uint32(lo))
}

// detectPlaceholder checks the attribute bits cloud-sync clients set on
// files whose content must be recalled on access. Unreadable attributes
// count as physically present.
func detectPlaceholder(path string, info os.FileInfo) bool {
	sys, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok {
		return false
	}

	const recallBits = windows.FILE_ATTRIBUTE_RECALL_ON_DATA_ACCESS |
		windows.FILE_ATTRIBUTE_RECALL_ON_OPEN |
		windows.FILE_ATTRIBUTE_OFFLINE
	return sys.FileAttributes&recallBits != 0
}
