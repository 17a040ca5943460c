package export

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
	"github.com/xuri/excelize/v2"
)

var testRows = []dataset.Row{
	{Year: 2024, Rank: 1, Category: "Senior Jazz", StudioName: "Rhythm, Inc", TeamName: "Blaze", Country: "Canada", DanceType: "Jazz"},
	{Year: 2024, Rank: 2, Category: "Senior Jazz", StudioName: "Starlight", TeamName: "Starlight", Country: "Unknown", DanceType: "Jazz"},
}

func fixedClock() time.Time {
	return time.Date(2025, 4, 27, 9, 5, 3, 0, time.Local)
}

func newTestExporter(t *testing.T, format Format) *Exporter {
	t.Helper()
	e, err := New(filepath.Join(t.TempDir(), "out"), format)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	e.now = fixedClock
	return e
}

func TestFilename(t *testing.T) {
	got := Filename(fixedClock(), "csv")
	if got != "dance_worlds_data_20250427_090503.csv" {
		t.Errorf("Filename() = %q", got)
	}
}

func TestNewWriter(t *testing.T) {
	tests := []struct {
		format  Format
		ext     string
		wantErr bool
	}{
		{FormatCSV, "csv", false},
		{"", "csv", false},
		{"XLSX", "xlsx", false},
		{FormatSQLite, "db", false},
		{"parquet", "", true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			w, err := NewWriter(tt.format)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewWriter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && w.Ext() != tt.ext {
				t.Errorf("Ext() = %q, want %q", w.Ext(), tt.ext)
			}
		})
	}
}

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	e, err := New(dir, FormatCSV)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if info, err := os.Stat(e.Dir()); err != nil || !info.IsDir() {
		t.Errorf("output directory %s was not created", e.Dir())
	}
}

func TestNew_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	e, err := New("~/results", FormatCSV)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if e.Dir() != filepath.Join(home, "results") {
		t.Errorf("Dir() = %q, want under %q", e.Dir(), home)
	}
}

func TestExport_CSV(t *testing.T) {
	e := newTestExporter(t, FormatCSV)

	path, err := e.Export(testRows)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if !strings.HasSuffix(path, "dance_worlds_data_20250427_090503.csv") {
		t.Errorf("path = %q", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	defer f.Close()

	lines, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	if strings.Join(lines[0], ",") != "Year,Rank,Category,Studio_Name,Team_Name,Country,Dance_Type" {
		t.Errorf("header = %v", lines[0])
	}
	if lines[1][3] != "Rhythm, Inc" {
		t.Errorf("quoted studio = %q", lines[1][3])
	}
}

func TestExport_CSVEmpty(t *testing.T) {
	e := newTestExporter(t, FormatCSV)

	path, err := e.Export(nil)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if strings.Count(string(data), "\n") != 1 {
		t.Errorf("empty export = %q, want header only", data)
	}
}

func TestExport_XLSX(t *testing.T) {
	e := newTestExporter(t, FormatXLSX)

	path, err := e.Export(testRows)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheetName)
	if err != nil {
		t.Fatalf("GetRows() error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Year" || rows[1][0] != "2024" || rows[2][3] != "Starlight" {
		t.Errorf("rows = %v", rows)
	}
}

func TestExport_SQLite(t *testing.T) {
	e := newTestExporter(t, FormatSQLite)

	path, err := e.Export(testRows)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("sql.Open() error: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM rankings WHERE year = 2024`).Scan(&n); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if n != 2 {
		t.Errorf("rows = %d, want 2", n)
	}

	var studio string
	if err := db.QueryRow(`SELECT studio_name FROM rankings WHERE rank = 1`).Scan(&studio); err != nil {
		t.Fatalf("query error: %v", err)
	}
	if studio != "Rhythm, Inc" {
		t.Errorf("studio_name = %q", studio)
	}
}
