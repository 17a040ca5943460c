package extract

import (
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// Extractor is one strategy for finding records on a page
type Extractor interface {
	Name() string
	Extract(p *Page) *Batch
}

// Options tune the standard extractors
type Options struct {
	// RepairJSON accepts embedded fragments that only decode after JSON repair.
	RepairJSON bool
}

// Standard returns the general-purpose extractors in merge order. Earlier
// extractors win when two of them produce the same record.
func Standard(opts Options) []Extractor {
	return []Extractor{
		TableExtractor{},
		ListExtractor{Rules: ListRules},
		EmbeddedExtractor{Repair: opts.RepairJSON},
		TextExtractor{Rules: AdvancedRules},
		SelectorExtractor{Selectors: DanceSelectors},
	}
}

// Run applies each extractor to p. A panicking extractor yields an empty batch
// and leaves the others untouched.
func Run(p *Page, extractors []Extractor) []*Batch {
	batches := make([]*Batch, 0, len(extractors))
	for _, ex := range extractors {
		batches = append(batches, runOne(p, ex))
	}
	return batches
}

func runOne(p *Page, ex Extractor) (b *Batch) {
	defer func() {
		if r := recover(); r != nil {
			b = newBatch(ex.Name())
			b.skip(SkipPanic)
		}
	}()
	return ex.Extract(p)
}

// Records concatenates the records of all batches in order
func Records(batches []*Batch) []record.Record {
	n := 0
	for _, b := range batches {
		n += len(b.Records)
	}
	out := make([]record.Record, 0, n)
	for _, b := range batches {
		out = append(out, b.Records...)
	}
	return out
}
