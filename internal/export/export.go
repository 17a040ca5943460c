package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
)

// Format names an output file format
type Format string

const (
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

// Formats lists the supported output formats
var Formats = []Format{FormatCSV, FormatXLSX, FormatSQLite}

// filePrefix starts every output file name
const filePrefix = "dance_worlds_data_"

// Writer writes rows to a single file
type Writer interface {
	// Ext is the file extension, without the dot
	Ext() string
	// Write creates path and writes the header and rows to it
	Write(path string, rows []dataset.Row) error
}

// NewWriter returns the writer for format
func NewWriter(format Format) (Writer, error) {
	switch Format(strings.ToLower(string(format))) {
	case FormatCSV, "":
		return CSVWriter{}, nil
	case FormatXLSX:
		return XLSXWriter{}, nil
	case FormatSQLite:
		return SQLiteWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// Exporter writes datasets into an output directory
type Exporter struct {
	dir    string
	writer Writer
	now    func() time.Time
}

// New creates an Exporter for dir, creating the directory if needed
func New(dir string, format Format) (*Exporter, error) {
	writer, err := NewWriter(format)
	if err != nil {
		return nil, err
	}

	if dir == "" {
		dir = "."
	}
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Exporter{
		dir:    dir,
		writer: writer,
		now:    time.Now,
	}, nil
}

// Dir returns the resolved output directory
func (e *Exporter) Dir() string {
	return e.dir
}

// Export writes rows to a new timestamped file and returns its path
func (e *Exporter) Export(rows []dataset.Row) (string, error) {
	path := filepath.Join(e.dir, Filename(e.now(), e.writer.Ext()))
	if err := e.writer.Write(path, rows); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Filename returns the output file name for a run started at t
func Filename(t time.Time, ext string) string {
	return filePrefix + t.Format("20060102_150405") + "." + ext
}
