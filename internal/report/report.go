package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dirdrill/dirdrill/internal/scanner"
	"github.com/dirdrill/dirdrill/pkg/utils"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatSummary OutputFormat = "summary"
	FormatJSON    OutputFormat = "json"
)

// Size thresholds for row coloring
const (
	hotThreshold  = 10 * utils.GB
	warmThreshold = 1 * utils.GB
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#A78BFA"))
	hotStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	warmStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// Renderer formats drill results. It only produces text; the filesystem is
// never touched here.
type Renderer struct {
	writer   io.Writer
	format   OutputFormat
	minSize  uint64
	elevated bool
}

// New creates a new Renderer
func New(writer io.Writer, format OutputFormat) *Renderer {
	return &Renderer{writer: writer, format: format}
}

// SetMinSize hides rows smaller than min bytes in the summary format.
func (r *Renderer) SetMinSize(min uint64) {
	r.minSize = min
}

// SetElevated records whether the process runs elevated; it only changes the
// wording of the access-denied hint.
func (r *Renderer) SetElevated(elevated bool) {
	r.elevated = elevated
}

// Render writes the report in the configured format
func (r *Renderer) Render(result *scanner.DrillResult) error {
	switch r.format {
	case FormatJSON:
		return r.renderJSON(result)
	case FormatSummary:
		return r.renderSummary(result)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// renderJSON emits the whole result as indented JSON.
func (r *Renderer) renderJSON(result *scanner.DrillResult) error {
	report := struct {
		Timestamp string `json:"timestamp"`
		*scanner.DrillResult
	}{
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		DrillResult: result,
	}

	enc := json.NewEncoder(r.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// renderSummary writes per-level aligned tables, totals and the error
// summary.
func (r *Renderer) renderSummary(result *scanner.DrillResult) error {
	fmt.Fprintf(r.writer, "%s\n", headerStyle.Render(fmt.Sprintf("Folder usage under %s", result.StartPath)))

	for _, level := range result.Levels {
		r.renderLevel(&level)
	}

	fmt.Fprintf(r.writer, "\nTotal: %s in %d files (scanned in %s)\n",
		utils.FormatBytes(result.TotalSize),
		result.TotalFiles,
		(time.Duration(result.ElapsedMs) * time.Millisecond).Round(time.Millisecond))

	r.renderErrorSummary(result)
	return nil
}

func (r *Renderer) renderLevel(level *scanner.LevelResult) {
	fmt.Fprintf(r.writer, "\n%s\n", headerStyle.Render(
		fmt.Sprintf("Depth %d: %s", level.Depth, level.Parent)))

	if level.Self.FileCount > 0 {
		fmt.Fprintf(r.writer, "%s\n", dimStyle.Render(
			fmt.Sprintf("  (files directly here: %s in %d files)",
				utils.FormatBytes(level.Self.SizeBytes), level.Self.FileCount)))
	}

	rows := make([]scanner.FolderStat, 0, len(level.Ranked))
	for _, st := range level.Ranked {
		if st.SizeBytes < r.minSize && st.Accessible && !st.Abandoned {
			continue
		}
		rows = append(rows, st)
	}
	if len(rows) == 0 {
		fmt.Fprintf(r.writer, "  %s\n", dimStyle.Render("(no subdirectories)"))
		return
	}

	// Column widths follow the widest value in this result set
	pathW, sizeW := len("Path"), len("Size")
	for _, st := range rows {
		if n := len(st.Path); n > pathW {
			pathW = n
		}
		if n := len(utils.FormatBytes(st.SizeBytes)); n > sizeW {
			sizeW = n
		}
	}

	fmt.Fprintf(r.writer, "  %-*s  %*s  %10s  %10s  %s\n", pathW, "Path", sizeW, "Size", "Files", "Subdirs", "Largest file")
	fmt.Fprintf(r.writer, "  %s\n", strings.Repeat("-", pathW+sizeW+40))

	for _, st := range rows {
		size := fmt.Sprintf("%*s", sizeW, utils.FormatBytes(st.SizeBytes))
		switch {
		case st.SizeBytes >= hotThreshold:
			size = hotStyle.Render(size)
		case st.SizeBytes >= warmThreshold:
			size = warmStyle.Render(size)
		}

		note := ""
		switch {
		case st.Abandoned:
			note = errStyle.Render("  [unprocessed]")
		case !st.Accessible:
			note = errStyle.Render("  [inaccessible]")
		case st.Shallow:
			note = dimStyle.Render("  [shallow]")
		case st.HasCloudPlaceholders:
			note = dimStyle.Render("  [cloud]")
		}

		largest := ""
		if st.LargestFile != nil {
			largest = fmt.Sprintf("%s (%s)", st.LargestFile.Path, utils.FormatBytes(st.LargestFile.SizeBytes))
		}

		fmt.Fprintf(r.writer, "  %-*s  %s  %10d  %10d  %s%s\n",
			pathW, st.Path, size, st.FileCount, st.SubfolderCount, largest, note)
	}
}

// renderErrorSummary lists every path that could not be fully measured,
// grouped by reason, with timed-out paths kept apart from access failures.
func (r *Renderer) renderErrorSummary(result *scanner.DrillResult) {
	if len(result.Failures) == 0 && len(result.Unprocessed) == 0 {
		return
	}

	fmt.Fprintf(r.writer, "\n%s\n", errStyle.Render("Issues encountered:"))

	grouped := scanner.GroupFailures(result.Failures)
	deniedSeen := false
	for _, reason := range []scanner.Reason{
		scanner.ReasonAccessDenied,
		scanner.ReasonNotFound,
		scanner.ReasonIO,
		scanner.ReasonTimeout,
		scanner.ReasonUnknown,
	} {
		failures := grouped[reason]
		if len(failures) == 0 {
			continue
		}
		if reason == scanner.ReasonAccessDenied {
			deniedSeen = true
		}
		fmt.Fprintf(r.writer, "  %s (%d):\n", reason, len(failures))
		for _, f := range failures {
			fmt.Fprintf(r.writer, "    %s\n", f.Path)
		}
	}

	if len(result.Unprocessed) > 0 {
		fmt.Fprintf(r.writer, "  Unprocessed before deadline (%d):\n", len(result.Unprocessed))
		for _, p := range result.Unprocessed {
			fmt.Fprintf(r.writer, "    %s\n", p)
		}
	}

	if deniedSeen && !r.elevated {
		fmt.Fprintf(r.writer, "\n%s\n", dimStyle.Render(
			"Some paths were denied; re-running with elevated privileges may cover them."))
	}
}
