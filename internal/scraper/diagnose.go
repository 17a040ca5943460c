package scraper

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/pfrederiksen/danceworlds-scrape/internal/extract"
)

const (
	maxKeywords   = 5
	sampleLength  = 500
	maxDataLines  = 3
	minLineLength = 20
	maxLineLength = 100
)

var (
	diagnosisKeywords = []string{"dance", "worlds", "competition", "hip hop", "jazz", "pom", "contemporary", "studio", "team"}
	yearPattern       = regexp.MustCompile(`20(1[5-9]|2[0-5])`)
	rankPattern       = regexp.MustCompile(`\b([1-9]|[1-4][0-9]|50)\b`)
	singleDigit       = regexp.MustCompile(`\b[1-9]\b`)
	whitespace        = regexp.MustCompile(`\s+`)
)

// Diagnosis summarizes a page that produced no records
type Diagnosis struct {
	Keywords   []string `json:"keywords"`
	Years      []string `json:"years"`
	RankTokens int      `json:"rank_tokens"`
	Sample     string   `json:"sample"`
	DataLines  []string `json:"data_lines"`
}

// Diagnose inspects a page for signs of results data the extractors missed
func Diagnose(p *extract.Page) Diagnosis {
	text := p.Text()
	lower := strings.ToLower(text)

	d := Diagnosis{
		Keywords:  make([]string, 0, maxKeywords),
		Years:     make([]string, 0),
		DataLines: make([]string, 0, maxDataLines),
	}

	for _, kw := range diagnosisKeywords {
		if len(d.Keywords) == maxKeywords {
			break
		}
		if n := strings.Count(lower, kw); n > 0 {
			d.Keywords = append(d.Keywords, fmt.Sprintf("%s: %d", kw, n))
		}
	}

	years := make(map[string]bool)
	for _, y := range yearPattern.FindAllString(text, -1) {
		years[y] = true
	}
	for y := range years {
		d.Years = append(d.Years, y)
	}
	sort.Strings(d.Years)

	ranks := make(map[string]bool)
	for _, m := range rankPattern.FindAllString(text, -1) {
		ranks[m] = true
	}
	d.RankTokens = len(ranks)

	d.Sample = truncate(strings.TrimSpace(whitespace.ReplaceAllString(pageMarkdown(p), " ")), sampleLength)

	for _, line := range strings.Split(text, "\n") {
		if len(d.DataLines) == maxDataLines {
			break
		}
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) <= minLineLength {
			continue
		}
		if yearPattern.MatchString(line) && singleDigit.MatchString(line) {
			d.DataLines = append(d.DataLines, truncate(line, maxLineLength))
		}
	}

	return d
}

// pageMarkdown renders the page as markdown, falling back to plain text
func pageMarkdown(p *extract.Page) string {
	md, err := htmltomarkdown.ConvertString(p.Raw)
	if err != nil || strings.TrimSpace(md) == "" {
		return p.Text()
	}
	return md
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
