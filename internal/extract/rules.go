package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

const (
	MinYear = 2015
	MaxYear = 2025
	MinRank = 1
	MaxRank = 100
)

// FieldMap assigns capture groups to record fields
type FieldMap struct {
	Year     int
	Rank     int
	Category int
	Studio   int
}

// YearRankCategoryStudio is the group order most patterns use
var YearRankCategoryStudio = FieldMap{Year: 1, Rank: 2, Category: 3, Studio: 4}

// Rule is a regular expression whose capture groups describe one record
type Rule struct {
	Expr   *regexp.Regexp
	Fields FieldMap
	Source record.Source
	// Check validates the parsed year and rank; nil means CheckRanges.
	Check func(year, rank int) SkipReason
}

// CheckRanges accepts years in [MinYear, MaxYear] and ranks in [MinRank, MaxRank].
func CheckRanges(year, rank int) SkipReason {
	if year < MinYear || year > MaxYear {
		return SkipYearRange
	}
	if rank < MinRank || rank > MaxRank {
		return SkipRankRange
	}
	return SkipNone
}

// apply builds a record from the submatches of r.Expr
func (r Rule) apply(m []string) (record.Record, SkipReason) {
	group := func(i int) string {
		if i <= 0 || i >= len(m) {
			return ""
		}
		return m[i]
	}

	year, err := strconv.Atoi(group(r.Fields.Year))
	if err != nil {
		return record.Record{}, SkipBadNumber
	}
	rank, err := strconv.Atoi(group(r.Fields.Rank))
	if err != nil {
		return record.Record{}, SkipBadNumber
	}

	check := r.Check
	if check == nil {
		check = CheckRanges
	}
	if reason := check(year, rank); reason != SkipNone {
		return record.Record{}, reason
	}

	studio := strings.TrimSpace(group(r.Fields.Studio))
	return record.Record{
		Year:       year,
		Rank:       rank,
		Category:   strings.TrimSpace(group(r.Fields.Category)),
		StudioName: studio,
		Country:    country.Resolve(studio),
		Source:     r.Source,
	}, SkipNone
}

var firstNumber = regexp.MustCompile(`(\d+)`)

// parseFirstNumber returns the first run of digits in s.
func parseFirstNumber(s string) (int, SkipReason) {
	m := firstNumber.FindStringSubmatch(s)
	if m == nil {
		return 0, SkipRankMissing
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, SkipBadNumber
	}
	return n, SkipNone
}
