package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// DefaultRankingsYear is the season published on the rankings page.
const DefaultRankingsYear = 2025

// UnknownCategory is the category of tables that no heading has classified.
const UnknownCategory = "Unknown"

// categoryRule maps an uppercased heading to a category. A rule matches when
// the text contains at least one of Any (if set), all of All and none of None.
type categoryRule struct {
	Label string
	Any   []string
	All   []string
	None  []string
}

func (r categoryRule) matches(text string) bool {
	if len(r.Any) > 0 && !containsAny(text, r.Any) {
		return false
	}
	for _, s := range r.All {
		if !strings.Contains(text, s) {
			return false
		}
	}
	return !containsAny(text, r.None)
}

// categoryGate must appear in a heading before any category rule is tried.
var categoryGate = []string{"KICK", "CONTEMPORARY", "LYRICAL", "JAZZ", "POM", "HIP HOP", "COED"}

var categoryRules = []categoryRule{
	{Label: "Senior Kick", Any: []string{"SENIOR KICK"}},
	{Label: "Senior Small Contemporary/Lyrical", Any: []string{"SENIOR SMALL CONTEMPORARY", "SENIOR SMALL LYRICAL"}},
	{Label: "Senior Large Contemporary/Lyrical", Any: []string{"SENIOR LARGE CONTEMPORARY", "SENIOR LARGE LYRICAL"}},
	{Label: "Senior Small Jazz", Any: []string{"SENIOR SMALL JAZZ"}},
	{Label: "Senior Large Jazz", Any: []string{"SENIOR LARGE JAZZ"}},
	{Label: "Senior Small Pom", Any: []string{"SENIOR SMALL POM"}},
	{Label: "Senior Large Pom", Any: []string{"SENIOR LARGE POM"}},
	{Label: "Senior Small Hip Hop", Any: []string{"SENIOR SMALL HIP HOP"}},
	{Label: "Senior Large Hip Hop", Any: []string{"SENIOR LARGE HIP HOP"}},
	{Label: "Senior Small Coed Hip Hop", Any: []string{"SENIOR SMALL COED HIP HOP"}},
	{Label: "Senior Large Coed Hip Hop", Any: []string{"SENIOR LARGE COED HIP HOP"}},
	{Label: "Open Contemporary/Lyrical", All: []string{"OPEN", "LYRICAL"}},
	{Label: "Open Jazz", All: []string{"OPEN", "JAZZ"}, None: []string{"COED"}},
	{Label: "Open Coed Jazz", All: []string{"OPEN", "JAZZ", "COED"}},
	{Label: "Open Pom", All: []string{"OPEN", "POM"}, None: []string{"COED"}},
	{Label: "Open Coed Pom", All: []string{"OPEN", "POM", "COED"}},
	{Label: "Open Hip Hop", All: []string{"OPEN", "HIP HOP"}, None: []string{"COED"}},
	{Label: "Open Coed Hip Hop", All: []string{"OPEN", "HIP HOP", "COED"}},
	{Label: "Junior Dance", All: []string{"JUNIOR"}},
}

// rankingHeaders mark a table whose first row introduces rankings.
var rankingHeaders = []string{"RANKING", "RANK", "CLUB", "TEAM"}

var scoreCell = regexp.MustCompile(`^\d+\.?\d*$`)

// scanContext is the round and category in force at a point in the document
type scanContext struct {
	Round    record.Round
	Category string
}

func initialContext() scanContext {
	return scanContext{Round: record.RoundUnknown, Category: UnknownCategory}
}

// observe returns the context after reading a heading or paragraph.
func (c scanContext) observe(text string) scanContext {
	text = strings.ToUpper(text)

	switch {
	case strings.Contains(text, "FINALS") && !strings.Contains(text, "SEMI"):
		c.Round = record.RoundFinal
	case strings.Contains(text, "SEMI-FINALS"):
		c.Round = record.RoundSemiFinal
	case strings.Contains(text, "PRELIMS"):
		c.Round = record.RoundPrelims
	}

	if containsAny(text, categoryGate) {
		for _, rule := range categoryRules {
			if rule.matches(text) {
				c.Category = rule.Label
				break
			}
		}
	}

	return c
}

// RankingsExtractor reads the rankings page. Headings and paragraphs are folded
// in document order into a scanContext, and each ranking table is read with
// the context in force where it appears.
type RankingsExtractor struct {
	Year int
}

func (r RankingsExtractor) Name() string { return string(record.RankingsTable(r.year())) }

func (r RankingsExtractor) year() int {
	if r.Year == 0 {
		return DefaultRankingsYear
	}
	return r.Year
}

func (r RankingsExtractor) Extract(p *Page) *Batch {
	b := newBatch(r.Name())
	ctx := initialContext()

	p.Doc.Find("h1, h2, h3, h4, p, table").Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == "table" {
			r.readTable(sel, ctx, b)
			return
		}
		if sel.Closest("table").Length() > 0 {
			return
		}
		ctx = ctx.observe(cleanText(sel.Text()))
	})

	return b
}

func (r RankingsExtractor) readTable(table *goquery.Selection, ctx scanContext, b *Batch) {
	rows := table.Find("tr")
	if rows.Length() == 0 {
		b.skip(SkipEmptyTable)
		return
	}
	if !containsAny(strings.ToUpper(rows.First().Text()), rankingHeaders) {
		b.skip(SkipNotRankingTable)
		return
	}

	rows.Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		b.add(r.parseRow(cellTexts(row), ctx))
	})
}

func (r RankingsExtractor) parseRow(cells []string, ctx scanContext) (record.Record, SkipReason) {
	if len(cells) < 3 {
		return record.Record{}, SkipShortRow
	}

	rank, reason := parseFirstNumber(cells[0])
	if reason != SkipNone {
		return record.Record{}, reason
	}

	club, team := cells[1], cells[2]

	var raw, event string
	for _, cell := range cells[3:] {
		if !scoreCell.MatchString(cell) {
			continue
		}
		if raw == "" {
			raw = cell
		} else if event == "" {
			event = cell
		}
	}

	return record.Record{
		Year:       r.year(),
		Rank:       rank,
		Category:   ctx.Category,
		StudioName: club,
		TeamName:   team,
		Country:    country.Resolve(club + " " + team),
		Round:      ctx.Round,
		RawScore:   raw,
		EventScore: event,
		Source:     record.RankingsTable(r.year()),
	}, SkipNone
}

func containsAny(text string, subs []string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}
