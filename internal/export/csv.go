package export

import (
	"encoding/csv"
	"os"

	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
)

// CSVWriter writes comma-separated values with a header row
type CSVWriter struct{}

func (CSVWriter) Ext() string { return "csv" }

func (CSVWriter) Write(path string, rows []dataset.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(dataset.Columns); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.Values()); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}
