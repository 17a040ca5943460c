package extract

import (
	"regexp"

	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// AdvancedRules are matched against plain page text, case-insensitive and
// multiline. Every match of every rule is a candidate.
var AdvancedRules = []Rule{
	// "2024 1st Place Junior Dance WINGFLAP"
	{
		Expr:   regexp.MustCompile(`(?im)(\d{4})\s+(\d+)(?:st|nd|rd|th)?\s+Place\s+([^0-9\n]{5,50})\s+([A-Za-z][^\n]{5,50})`),
		Fields: YearRankCategoryStudio,
		Source: record.AdvancedPattern(1),
	},
	// "Year: 2024, Rank: 1, Category: Junior Dance, Studio: WINGFLAP"
	{
		Expr:   regexp.MustCompile(`(?im)Year:\s*(\d{4}).*?Rank:\s*(\d+).*?Category:\s*([^,\n]+).*?Studio:\s*([^,\n]+)`),
		Fields: YearRankCategoryStudio,
		Source: record.AdvancedPattern(2),
	},
	// "1. WINGFLAP - Junior Dance - 2024"
	{
		Expr:   regexp.MustCompile(`(?im)(\d+)\.\s+([A-Za-z][^-\n]{5,40})\s*-\s*([^-\n]{5,40})\s*-\s*(\d{4})`),
		Fields: FieldMap{Rank: 1, Studio: 2, Category: 3, Year: 4},
		Source: record.AdvancedPattern(3),
	},
	// columns separated by two or more spaces
	{
		Expr:   regexp.MustCompile(`(?im)(\d{4})\s{2,}(\d+)\s{2,}([^\t\n]{5,40})\s{2,}([^\t\n]{5,40})`),
		Fields: YearRankCategoryStudio,
		Source: record.AdvancedPattern(4),
	},
	// "2024 | 1 | Junior Dance | WINGFLAP (JPN)"
	{
		Expr:   regexp.MustCompile(`(?im)(\d{4})\s*[\|,]\s*(\d+)\s*[\|,]\s*([^|\n,]{5,50})\s*[\|,]\s*([^|\n,]{5,50})\s*\([A-Z]{2,4}\)`),
		Fields: YearRankCategoryStudio,
		Source: record.AdvancedPattern(5),
	},
	// any year followed by a small number and two runs of words
	{
		Expr:   regexp.MustCompile(`(?im)(\d{4})\D{1,20}(\d{1,2})\D{1,50}([A-Za-z][^0-9\n]{10,60}?)\s+([A-Za-z][^0-9\n]{5,50})`),
		Fields: YearRankCategoryStudio,
		Source: record.AdvancedPattern(6),
	},
}

// TextExtractor matches rules against the plain text of a page
type TextExtractor struct {
	Rules []Rule
}

func (TextExtractor) Name() string { return "Advanced_Pattern" }

func (t TextExtractor) Extract(p *Page) *Batch {
	return t.ExtractText(p.Text())
}

// ExtractText matches the rules against arbitrary text, e.g. pasted results.
func (t TextExtractor) ExtractText(text string) *Batch {
	b := newBatch(t.Name())
	text = normalizeText(text)
	for _, rule := range t.Rules {
		for _, m := range rule.Expr.FindAllStringSubmatch(text, -1) {
			b.add(rule.apply(m))
		}
	}
	return b
}
