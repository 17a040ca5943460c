package extract

import (
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// ListRules match delimited list items such as "2024 | 5 | Senior Jazz | Starlight Dance"
// or "2024 5 Senior Jazz Starlight Dance". They are tried in order.
var ListRules = []Rule{
	{
		Expr:   regexp.MustCompile(`(\d{4})\s*[-|]\s*(\d+)\s*[-|]\s*([^-|]+)[-|]\s*([^-|]+)`),
		Fields: YearRankCategoryStudio,
		Source: record.SourceList,
	},
	{
		Expr:   regexp.MustCompile(`(\d{4})\s+(\d+)\s+([A-Za-z][^\d\n]{5,40})\s+([A-Za-z][^\d\n]{5,40})`),
		Fields: YearRankCategoryStudio,
		Source: record.SourceList,
	},
}

// ListExtractor reads ul/ol items, keeping the first rule that yields a valid record
type ListExtractor struct {
	Rules []Rule
}

func (ListExtractor) Name() string { return string(record.SourceList) }

func (l ListExtractor) Extract(p *Page) *Batch {
	b := newBatch(l.Name())
	p.Doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		list.Find("li").Each(func(_ int, item *goquery.Selection) {
			b.add(l.parseItem(cleanText(item.Text())))
		})
	})
	return b
}

func (l ListExtractor) parseItem(text string) (record.Record, SkipReason) {
	reason := SkipNoMatch
	for _, rule := range l.Rules {
		m := rule.Expr.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		rec, why := rule.apply(m)
		if why == SkipNone {
			return rec, SkipNone
		}
		reason = why
	}
	return record.Record{}, reason
}
