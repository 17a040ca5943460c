package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
	"github.com/rodaine/table"
)

// OutputFormat specifies the summary format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// PageReport is the outcome of one URL
type PageReport struct {
	URL      string `json:"url"`
	Rankings bool   `json:"rankings,omitempty"`
	Bytes    int    `json:"bytes"`
	Records  int    `json:"records"`
	Skipped  int    `json:"skipped"`
	Error    string `json:"error,omitempty"`
}

// Report contains everything printed at the end of a run
type Report struct {
	RunID       string                 `json:"run_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	OutputFile  string                 `json:"output_file"`
	Pages       []PageReport           `json:"pages"`
	Merge       record.MergeStats      `json:"merge"`
	Manual      bool                   `json:"manual,omitempty"`
	NonFinal    int                    `json:"non_final_dropped"`
	Champions   int                    `json:"champions"`
	Podiums     int                    `json:"podiums"`
	Sources     map[record.Source]int  `json:"sources"`
	Summary     dataset.Summary        `json:"summary"`
	Metrics     map[string]interface{} `json:"metrics,omitempty"`
}

// WriteOutput writes the report in the specified format
func WriteOutput(w io.Writer, report *Report, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	case FormatText:
		return writeText(w, report)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the report as JSON
func writeJSON(w io.Writer, report *Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func dashes(n int) string {
	return strings.Repeat("-", n)
}

// writeText outputs the report as human-readable tables
func writeText(w io.Writer, report *Report) error {
	s := report.Summary

	fmt.Fprintln(w)
	pages := table.New("URL", "Status", "Records", "Skipped").WithWriter(w)
	for _, p := range report.Pages {
		status := "ok"
		if p.Error != "" {
			status = p.Error
		}
		pages.AddRow(p.URL, status, p.Records, p.Skipped)
	}
	pages.Print()

	fmt.Fprintf(w, "\nCandidates: %d, kept after dedup: %d (invalid %d, duplicates %d)\n",
		report.Merge.Input, report.Merge.Kept, report.Merge.Invalid, report.Merge.Duplicates)
	if report.Manual {
		fmt.Fprintln(w, "Records came from manual input")
	}
	if report.NonFinal > 0 {
		fmt.Fprintf(w, "Dropped %d non-final rows\n", report.NonFinal)
	}
	fmt.Fprintf(w, "Saved %d rows to %s\n", s.Records, report.OutputFile)

	fmt.Fprintf(w, "\nDATASET SUMMARY\n%s\n", dashes(40))
	fmt.Fprintf(w, "Total records: %d\n", s.Records)
	if s.FirstYear == s.LastYear {
		fmt.Fprintf(w, "Year: %d\n", s.FirstYear)
	} else {
		fmt.Fprintf(w, "Years: %d-%d\n", s.FirstYear, s.LastYear)
	}
	fmt.Fprintf(w, "Countries: %d\n", s.Countries)
	if len(s.UnmappedCodes) > 0 {
		fmt.Fprintf(w, "Unmapped country codes: %s\n", strings.Join(s.UnmappedCodes, ", "))
	}
	fmt.Fprintf(w, "Dance types: %d\n", s.DanceTypes)
	fmt.Fprintf(w, "Studios: %d\n", s.Studios)
	fmt.Fprintf(w, "Champions: %d, podium finishes: %d\n", report.Champions, report.Podiums)

	fmt.Fprintln(w, "\nRecords by year:")
	writeCounts(w, "Year", s.ByYear)

	fmt.Fprintln(w, "\nDance types:")
	writeCounts(w, "Dance_Type", s.ByDanceType)

	fmt.Fprintln(w, "\nTop countries:")
	writeCounts(w, "Country", s.TopCountries)

	fmt.Fprintln(w, "\nSample data:")
	sample := table.New("Year", "Rank", "Category", "Studio_Name", "Country").WithWriter(w)
	for _, r := range s.Sample {
		sample.AddRow(r.Year, r.Rank, r.Category, r.StudioName, r.Country)
	}
	sample.Print()

	if len(s.Champions) > 0 {
		fmt.Fprintf(w, "\n%d champions:\n", s.LastYear)
		champs := table.New("Category", "Studio_Name", "Team_Name", "Country").WithWriter(w)
		for _, r := range s.Champions {
			champs.AddRow(r.Category, r.StudioName, r.TeamName, r.Country)
		}
		champs.Print()
	}

	return nil
}

func writeCounts(w io.Writer, label string, counts []dataset.Count) {
	tbl := table.New(label, "Count").WithWriter(w)
	for _, c := range counts {
		tbl.AddRow(c.Key, c.Count)
	}
	tbl.Print()
}
