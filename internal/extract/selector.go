package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// DanceSelectors pick elements whose class or id suggests competition results
var DanceSelectors = []string{
	`[class*="result"]`, `[class*="ranking"]`, `[class*="competition"]`,
	`[class*="dance"]`, `[class*="team"]`, `[class*="studio"]`,
	`[id*="result"]`, `[id*="ranking"]`, `[id*="competition"]`,
	`.results`, `.rankings`, `.teams`, `.studios`,
}

var (
	yearToken  = regexp.MustCompile(`20(1[5-9]|2[0-5])`)
	rankToken  = regexp.MustCompile(`\b([1-9]|[1-9][0-9]|100)\b`)
	partSplit  = regexp.MustCompile(`[|\-,\n\t]`)
	danceTerms = []string{"dance", "hip hop", "jazz", "pom", "contemporary"}
)

// SelectorExtractor scans elements matched by CSS selectors for a year and a rank
type SelectorExtractor struct {
	Selectors []string
}

func (SelectorExtractor) Name() string { return string(record.SourceSelector) }

func (s SelectorExtractor) Extract(p *Page) *Batch {
	b := newBatch(s.Name())
	for _, sel := range s.Selectors {
		p.Doc.Find(sel).Each(func(_ int, el *goquery.Selection) {
			b.add(parseElementText(strings.TrimSpace(normalizeText(el.Text()))))
		})
	}
	return b
}

func parseElementText(text string) (record.Record, SkipReason) {
	yearStr := yearToken.FindString(text)
	rankMatch := rankToken.FindStringSubmatch(text)
	if yearStr == "" || rankMatch == nil {
		return record.Record{}, SkipNoSignal
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		return record.Record{}, SkipBadNumber
	}
	rank, err := strconv.Atoi(rankMatch[1])
	if err != nil {
		return record.Record{}, SkipBadNumber
	}

	var category, studio string
	for _, part := range partSplit.Split(text, -1) {
		part = strings.TrimSpace(part)
		if utf8.RuneCountInString(part) <= 2 {
			continue
		}
		if hasDanceTerm(part) {
			if category == "" {
				category = part
			}
			continue
		}
		if studio == "" && utf8.RuneCountInString(part) > 3 && part != yearStr && part != rankMatch[1] {
			studio = part
		}
	}

	if category == "" && studio == "" {
		return record.Record{}, SkipNoFields
	}

	return record.Record{
		Year:       year,
		Rank:       rank,
		Category:   category,
		StudioName: studio,
		Country:    country.Resolve(studio),
		Source:     record.SourceSelector,
	}, SkipNone
}

func hasDanceTerm(s string) bool {
	lower := strings.ToLower(s)
	for _, term := range danceTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
