package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/danceworlds-scrape/internal/extract"
	"github.com/pfrederiksen/danceworlds-scrape/internal/logger"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// DefaultDelay is the pause between two page requests
const DefaultDelay = 2 * time.Second

// PageResult is the outcome of scraping one URL
type PageResult struct {
	URL      string
	Rankings bool
	Bytes    int
	Err      error
	Batches  []*extract.Batch
	Records  []record.Record
	// Diagnosis is set when the page was fetched but yielded no records.
	Diagnosis *Diagnosis
}

// Result collects the pages of one run in URL order
type Result struct {
	Pages []PageResult
}

// Records returns the candidate records of all pages in URL order
func (r *Result) Records() []record.Record {
	out := make([]record.Record, 0)
	for _, p := range r.Pages {
		out = append(out, p.Records...)
	}
	return out
}

// Failed returns the number of pages that could not be fetched or parsed
func (r *Result) Failed() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Scraper fetches a list of pages sequentially and extracts records from them
type Scraper struct {
	fetcher PageFetcher
	delay   time.Duration

	// RankingsYear is the season assigned to rows of the rankings page.
	RankingsYear int
	// RepairJSON accepts embedded fragments that only decode after repair.
	RepairJSON bool
	Log        *logger.Logger
	Metrics    *logger.Metrics

	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Scraper that waits delay between requests
func New(fetcher PageFetcher, delay time.Duration) *Scraper {
	return &Scraper{
		fetcher:      fetcher,
		delay:        delay,
		RankingsYear: extract.DefaultRankingsYear,
		sleep:        sleepContext,
	}
}

// IsRankingsPage reports whether url is the designated rankings page
func IsRankingsPage(url string) bool {
	return strings.Contains(url, "rankings")
}

func (s *Scraper) log() *logger.Logger {
	if s.Log != nil {
		return s.Log
	}
	return logger.Default()
}

func (s *Scraper) metrics() *logger.Metrics {
	if s.Metrics != nil {
		return s.Metrics
	}
	return logger.DefaultMetrics()
}

// Run scrapes urls in order. Fetch and parse failures are recorded on the page
// result and never stop the loop; the returned error is non-nil only when ctx
// is cancelled, in which case the pages scraped so far are still returned.
func (s *Scraper) Run(ctx context.Context, urls []string) (*Result, error) {
	res := &Result{Pages: make([]PageResult, 0, len(urls))}

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		page := s.scrapePage(ctx, i, len(urls), url)
		if page.Err != nil && ctx.Err() != nil {
			return res, ctx.Err()
		}
		res.Pages = append(res.Pages, page)

		if i < len(urls)-1 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return res, err
			}
		}
	}

	return res, nil
}

func (s *Scraper) scrapePage(ctx context.Context, index, total int, url string) PageResult {
	log := s.log().With(logger.Fields{"url": url})
	m := s.metrics()

	page := PageResult{URL: url, Rankings: IsRankingsPage(url)}
	log.Info("Fetching page", logger.Fields{"index": index + 1, "total": total})

	start := time.Now()
	body, err := s.fetcher.Fetch(ctx, url)
	m.RecordTiming("fetch", time.Since(start))
	if err != nil {
		m.IncrCounter("fetch.failed")
		log.Error("Fetch failed", nil, err)
		page.Err = err
		return page
	}
	m.IncrCounter("fetch.ok")
	page.Bytes = len(body)
	log.Info("Fetched page", logger.Fields{"bytes": len(body)})

	p, err := extract.NewPage(url, body)
	if err != nil {
		log.Error("Parse failed", nil, err)
		page.Err = fmt.Errorf("parsing %s: %w", url, err)
		return page
	}

	page.Batches = extract.Run(p, s.extractors(page.Rankings))
	page.Records = extract.Records(page.Batches)

	for _, b := range page.Batches {
		s.recordBatch(log, b)
	}

	if len(page.Records) == 0 {
		d := Diagnose(p)
		page.Diagnosis = &d
		log.Warn("No structured data found", logger.Fields{
			"keywords":    d.Keywords,
			"years":       d.Years,
			"rank_tokens": d.RankTokens,
			"sample":      d.Sample,
			"data_lines":  d.DataLines,
		})
		return page
	}

	log.Info("Extracted records", logger.Fields{"records": len(page.Records)})
	return page
}

func (s *Scraper) extractors(rankings bool) []extract.Extractor {
	if rankings {
		return []extract.Extractor{extract.RankingsExtractor{Year: s.RankingsYear}}
	}
	return extract.Standard(extract.Options{RepairJSON: s.RepairJSON})
}

// recordBatch logs a batch and adds its record and skip counts to the metrics
func (s *Scraper) recordBatch(log *logger.Logger, b *extract.Batch) {
	m := s.metrics()
	prefix := "extract." + b.Extractor + "."

	m.AddCounter(prefix+"records", int64(len(b.Records)))
	if b.Repaired > 0 {
		m.AddCounter(prefix+"repaired", int64(b.Repaired))
	}

	skipped := make(logger.Fields)
	for _, reason := range b.SkipReasons() {
		n := b.Skipped[reason]
		m.AddCounter(prefix+"skip."+string(reason), int64(n))
		skipped[string(reason)] = n
	}

	log.Debug("Extractor finished", logger.Fields{
		"extractor": b.Extractor,
		"records":   len(b.Records),
		"skipped":   skipped,
		"repaired":  b.Repaired,
	})
}

// sleepContext waits for d or until ctx is done
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
