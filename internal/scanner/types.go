package scanner

// FileRef points at a single file and its measured size.
type FileRef struct {
	Path      string `json:"path"`
	SizeBytes uint64 `json:"size_bytes"`
}

// FolderStat is the aggregate measurement of one directory subtree. Instances
// are produced by Accumulate and are not modified afterwards.
type FolderStat struct {
	Path                 string    `json:"path"`
	SizeBytes            uint64    `json:"size_bytes"`
	FileCount            uint64    `json:"file_count"`
	SubfolderCount       uint64    `json:"subfolder_count"`
	LargestFile          *FileRef  `json:"largest_file,omitempty"`
	Accessible           bool      `json:"accessible"`
	HasCloudPlaceholders bool      `json:"has_cloud_placeholders,omitempty"`
	Err                  string    `json:"error,omitempty"`
	Abandoned            bool      `json:"abandoned,omitempty"`
	Shallow              bool      `json:"shallow,omitempty"` // Measured single-level only, never drilled
	Failures             []Failure `json:"failures,omitempty"`
}

// noteFile folds a single file measurement into the stat.
func (fs *FolderStat) noteFile(path string, size uint64, placeholder bool) {
	fs.SizeBytes += size
	fs.FileCount++
	if placeholder {
		fs.HasCloudPlaceholders = true
	}
	fs.considerLargest(&FileRef{Path: path, SizeBytes: size})
}

// fold merges a fully accumulated child directory into the stat. Child
// failures, including the child's own enumeration failure, propagate upward
// so the top-level result carries every inaccessible subpath.
func (fs *FolderStat) fold(child *FolderStat) {
	fs.SizeBytes += child.SizeBytes
	fs.FileCount += child.FileCount
	fs.SubfolderCount += 1 + child.SubfolderCount
	if child.HasCloudPlaceholders {
		fs.HasCloudPlaceholders = true
	}
	fs.considerLargest(child.LargestFile)
	fs.Failures = append(fs.Failures, child.Failures...)
	if !child.Accessible {
		fs.Failures = append(fs.Failures, Failure{
			Path:   child.Path,
			Reason: ReasonFromMessage(child.Err),
			Detail: child.Err,
		})
	}
}

// considerLargest keeps the larger file; equal sizes resolve to the
// lexicographically smaller path so repeated runs agree regardless of
// enumeration order.
func (fs *FolderStat) considerLargest(ref *FileRef) {
	if ref == nil {
		return
	}
	cur := fs.LargestFile
	if cur == nil || ref.SizeBytes > cur.SizeBytes ||
		(ref.SizeBytes == cur.SizeBytes && ref.Path < cur.Path) {
		fs.LargestFile = ref
	}
}

// ScanTask is one unit of work handed to the scheduler worker pool.
type ScanTask struct {
	Path         string
	OnlyPhysical bool
}

// LevelResult captures one drill level: the ranked subdirectories of Parent
// plus the bytes held directly in Parent itself.
type LevelResult struct {
	Depth  int          `json:"depth"`
	Parent string       `json:"parent"`
	Self   FolderStat   `json:"self"`
	Ranked []FolderStat `json:"ranked"`
}

// DrillResult is the full outcome of one invocation.
type DrillResult struct {
	StartPath   string        `json:"start_path"`
	Levels      []LevelResult `json:"levels"`
	TotalSize   uint64        `json:"total_size"`
	TotalFiles  uint64        `json:"total_files"`
	Failures    []Failure     `json:"failures,omitempty"`
	Unprocessed []string      `json:"unprocessed,omitempty"`
	ElapsedMs   int64         `json:"elapsed_ms"`
}
