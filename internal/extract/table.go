package extract

import (
	"strconv"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// TableExtractor reads rows shaped year | rank | category | studio [| team]
type TableExtractor struct{}

func (TableExtractor) Name() string { return string(record.SourceTable) }

func (t TableExtractor) Extract(p *Page) *Batch {
	b := newBatch(t.Name())
	p.Doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		table.Find("tr").Each(func(_ int, row *goquery.Selection) {
			b.add(parseResultRow(cellTexts(row)))
		})
	})
	return b
}

func parseResultRow(cells []string) (record.Record, SkipReason) {
	if len(cells) < 4 {
		return record.Record{}, SkipShortRow
	}
	if len(cells[0]) != 4 || !isDigits(cells[0]) {
		return record.Record{}, SkipYearFormat
	}
	year, err := strconv.Atoi(cells[0])
	if err != nil {
		return record.Record{}, SkipBadNumber
	}
	if year < MinYear || year > MaxYear {
		return record.Record{}, SkipYearRange
	}

	rank, reason := parseFirstNumber(cells[1])
	if reason != SkipNone {
		return record.Record{}, reason
	}
	if rank < MinRank || rank > MaxRank {
		return record.Record{}, SkipRankRange
	}

	rec := record.Record{
		Year:       year,
		Rank:       rank,
		Category:   cells[2],
		StudioName: cells[3],
		Country:    country.Resolve(cells[3]),
		Source:     record.SourceTable,
	}
	if len(cells) > 4 {
		rec.TeamName = cells[4]
	}
	return rec, SkipNone
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
