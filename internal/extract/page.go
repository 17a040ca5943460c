package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/text/unicode/norm"
)

// Page is a fetched document shared by all extractors
type Page struct {
	URL string
	Raw string
	Doc *goquery.Document

	text string
}

// NewPage parses raw markup into a Page
func NewPage(url, raw string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return &Page{URL: url, Raw: raw, Doc: doc}, nil
}

// Text returns the normalized plain text of the whole document.
func (p *Page) Text() string {
	if p.text == "" {
		p.text = normalizeText(p.Doc.Text())
	}
	return p.text
}

var spaceRun = regexp.MustCompile(`\s+`)

// normalizeText folds compatibility characters so that non-breaking spaces
// and full-width digits match the ASCII classes used by the patterns.
func normalizeText(s string) string {
	return norm.NFKC.String(s)
}

// cleanText normalizes s and collapses all whitespace runs to one space.
func cleanText(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(normalizeText(s), " "))
}

// cellTexts returns the cleaned text of every td/th below row.
func cellTexts(row *goquery.Selection) []string {
	cells := row.Find("td, th")
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, cleanText(cell.Text()))
	})
	return texts
}
