package export

import (
	"github.com/pfrederiksen/danceworlds-scrape/internal/dataset"
	"github.com/xuri/excelize/v2"
)

const sheetName = "Sheet1"

// XLSXWriter writes a workbook with one sheet
type XLSXWriter struct{}

func (XLSXWriter) Ext() string { return "xlsx" }

func (XLSXWriter) Write(path string, rows []dataset.Row) error {
	f := excelize.NewFile()
	defer f.Close()

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		return err
	}

	header := make([]interface{}, 0, len(dataset.Columns))
	for _, c := range dataset.Columns {
		header = append(header, c)
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.Year, r.Rank, r.Category, r.StudioName, r.TeamName, r.Country, r.DanceType}
		if err := sw.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := sw.Flush(); err != nil {
		return err
	}
	return f.SaveAs(path)
}
