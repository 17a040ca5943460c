package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

func sampleReport() *Report {
	rows := []dataset.Row{
		{Year: 2024, Rank: 1, Category: "Senior Jazz", StudioName: "Rhythm", TeamName: "Blaze", Country: "Canada", DanceType: "Jazz"},
		{Year: 2024, Rank: 2, Category: "Senior Jazz", StudioName: "Nordic", TeamName: "Aurora", Country: "NOR", DanceType: "Jazz"},
		{Year: 2025, Rank: 1, Category: "Open Pom", StudioName: "Pom Co", TeamName: "Sparkle", Country: "Japan", DanceType: "Pom"},
	}
	return &Report{
		RunID:       "run-1",
		GeneratedAt: time.Date(2025, 4, 27, 0, 0, 0, 0, time.UTC),
		OutputFile:  "/tmp/dance_worlds_data_20250427_000000.csv",
		Pages: []PageReport{
			{URL: "https://a.example.com/", Records: 2},
			{URL: "https://b.example.com/", Error: "unexpected status code: 500"},
		},
		Merge:   record.MergeStats{Input: 3, Duplicates: 1, Kept: 2},
		Sources: map[record.Source]int{record.SourceTable: 2},
		Summary: dataset.Summarize(rows),
	}
}

func TestWriteOutput_Text(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleReport(), FormatText); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"unexpected status code: 500",
		"kept after dedup: 2",
		"Years: 2024-2025",
		"Top countries:",
		"Unmapped country codes: NOR",
		"2025 champions:",
		"Sparkle",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q:\n%s", want, out)
		}
	}
}

func TestWriteOutput_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOutput(&buf, sampleReport(), FormatJSON); err != nil {
		t.Fatalf("WriteOutput() error: %v", err)
	}
	if !strings.Contains(buf.String(), `"run_id": "run-1"`) {
		t.Errorf("JSON output = %s", buf.String())
	}
}

func TestWriteOutput_UnknownFormat(t *testing.T) {
	if err := WriteOutput(&bytes.Buffer{}, sampleReport(), "yaml"); err == nil {
		t.Error("expected an error for an unknown format")
	}
}
