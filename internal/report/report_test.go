package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dirdrill/dirdrill/internal/scanner"
)

func sampleResult() *scanner.DrillResult {
	return &scanner.DrillResult{
		StartPath: "/data",
		Levels: []scanner.LevelResult{
			{
				Depth:  0,
				Parent: "/data",
				Self:   scanner.FolderStat{Path: "/data", SizeBytes: 512, FileCount: 2, Accessible: true},
				Ranked: []scanner.FolderStat{
					{Path: "/data/videos", SizeBytes: 12 * 1024 * 1024 * 1024, FileCount: 40, SubfolderCount: 3, Accessible: true,
						LargestFile: &scanner.FileRef{Path: "/data/videos/raw.mkv", SizeBytes: 8 * 1024 * 1024 * 1024}},
					{Path: "/data/music", SizeBytes: 2 * 1024 * 1024 * 1024, FileCount: 300, SubfolderCount: 12, Accessible: true},
					{Path: "/data/tmp", SizeBytes: 64, FileCount: 1, Accessible: true},
				},
			},
		},
		TotalSize:  14 * 1024 * 1024 * 1024,
		TotalFiles: 343,
		ElapsedMs:  1200,
	}
}

func TestRenderSummaryContainsRankedPaths(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	if err := r.Render(sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"/data/videos", "/data/music", "Depth 0", "Total:", "12.00 GB", "raw.mkv"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderSummaryMinSizeFilter(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatSummary)
	r.SetMinSize(1024)

	if err := r.Render(sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(buf.String(), "/data/tmp") {
		t.Error("rows below min size should be hidden")
	}
}

func TestRenderErrorSummaryAndElevationHint(t *testing.T) {
	result := sampleResult()
	result.Failures = []scanner.Failure{
		{Path: "/data/locked", Reason: scanner.ReasonAccessDenied, Detail: "permission denied"},
	}
	result.Unprocessed = []string{"/data/slowmount"}

	var buf bytes.Buffer
	r := New(&buf, FormatSummary)
	r.SetElevated(false)

	if err := r.Render(result); err != nil {
		t.Fatalf("Render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Issues encountered", "/data/locked", "Unprocessed before deadline", "/data/slowmount", "elevated privileges"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderNoElevationHintWhenElevated(t *testing.T) {
	result := sampleResult()
	result.Failures = []scanner.Failure{
		{Path: "/data/locked", Reason: scanner.ReasonAccessDenied},
	}

	var buf bytes.Buffer
	r := New(&buf, FormatSummary)
	r.SetElevated(true)

	if err := r.Render(result); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if strings.Contains(buf.String(), "elevated privileges") {
		t.Error("hint should be absent when already elevated")
	}
}

func TestRenderAbandonedMarker(t *testing.T) {
	result := sampleResult()
	result.Levels[0].Ranked = append(result.Levels[0].Ranked, scanner.FolderStat{
		Path: "/data/hung", Abandoned: true, Err: "abandoned after 10m0s",
	})

	var buf bytes.Buffer
	r := New(&buf, FormatSummary)

	if err := r.Render(result); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if !strings.Contains(buf.String(), "unprocessed") {
		t.Error("abandoned rows should carry the unprocessed marker")
	}
}

func TestRenderJSONRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, FormatJSON)

	if err := r.Render(sampleResult()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded struct {
		Timestamp string                `json:"timestamp"`
		StartPath string                `json:"start_path"`
		Levels    []scanner.LevelResult `json:"levels"`
		TotalSize uint64                `json:"total_size"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if decoded.StartPath != "/data" {
		t.Errorf("StartPath = %s", decoded.StartPath)
	}
	if len(decoded.Levels) != 1 || len(decoded.Levels[0].Ranked) != 3 {
		t.Errorf("levels decoded wrong: %+v", decoded.Levels)
	}
	if decoded.TotalSize != 14*1024*1024*1024 {
		t.Errorf("TotalSize = %d", decoded.TotalSize)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf, OutputFormat("xml"))
	if err := r.Render(sampleResult()); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}
