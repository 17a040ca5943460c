package extract

import (
	"sort"

	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// SkipReason explains why a candidate did not become a record
type SkipReason string

const (
	SkipNone            SkipReason = ""
	SkipShortRow        SkipReason = "short_row"
	SkipYearFormat      SkipReason = "year_format"
	SkipYearRange       SkipReason = "year_out_of_range"
	SkipRankMissing     SkipReason = "rank_missing"
	SkipRankRange       SkipReason = "rank_out_of_range"
	SkipBadNumber       SkipReason = "bad_number"
	SkipNoMatch         SkipReason = "no_match"
	SkipMalformedJSON   SkipReason = "malformed_json"
	SkipRepairableJSON  SkipReason = "repairable_json"
	SkipNotObject       SkipReason = "not_object"
	SkipNoYearKey       SkipReason = "no_year_key"
	SkipNoSignal        SkipReason = "no_year_or_rank"
	SkipNoFields        SkipReason = "no_category_or_studio"
	SkipNotRankingTable SkipReason = "not_ranking_table"
	SkipEmptyTable      SkipReason = "empty_table"
	SkipPanic           SkipReason = "extractor_panic"
)

// Batch holds the outcome of one extractor over one page
type Batch struct {
	Extractor string
	Records   []record.Record
	Skipped   map[SkipReason]int
	// Repaired counts embedded fragments accepted only after JSON repair.
	Repaired int
}

func newBatch(name string) *Batch {
	return &Batch{
		Extractor: name,
		Records:   make([]record.Record, 0),
		Skipped:   make(map[SkipReason]int),
	}
}

// add keeps rec when reason is SkipNone, otherwise counts the skip.
func (b *Batch) add(rec record.Record, reason SkipReason) {
	if reason != SkipNone {
		b.skip(reason)
		return
	}
	b.Records = append(b.Records, rec)
}

func (b *Batch) skip(reason SkipReason) {
	b.Skipped[reason]++
}

// SkipCount returns the total number of skipped candidates
func (b *Batch) SkipCount() int {
	n := 0
	for _, c := range b.Skipped {
		n += c
	}
	return n
}

// SkipReasons returns the reasons present in the batch, sorted
func (b *Batch) SkipReasons() []SkipReason {
	reasons := make([]SkipReason, 0, len(b.Skipped))
	for r := range b.Skipped {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
