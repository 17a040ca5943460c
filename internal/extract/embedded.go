package extract

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// missingRank is used when a fragment has neither "rank" nor "position".
const missingRank = 999

// scriptRegions locate markup likely to hold result data.
var scriptRegions = []*regexp.Regexp{
	regexp.MustCompile(`(?s)<script[^>]*>(.*?)</script>`),
	regexp.MustCompile(`(?s)var\s+data\s*=\s*(\{.*?\});`),
	regexp.MustCompile(`(?s)window\.\w+\s*=\s*(\[.*?\]);`),
	regexp.MustCompile(`(?s)"results"\s*:\s*(\[.*?\])`),
}

// fragmentPatterns find flat brace-delimited fragments. Nested objects are
// not followed; the scan is a heuristic, not a JSON parser.
var fragmentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\{[^{}]*"year"[^{}]*\}`),
	regexp.MustCompile(`\{[^{}]*"rank"[^{}]*\}`),
	regexp.MustCompile(`\{[^{}]*\d{4}[^{}]*\}`),
}

// EmbeddedExtractor decodes JSON-like fragments found in scripts. A fragment
// that only decodes after JSON repair is skipped as SkipRepairableJSON unless
// Repair is set.
type EmbeddedExtractor struct {
	Repair bool
}

func (EmbeddedExtractor) Name() string { return string(record.SourceEmbedded) }

func (e EmbeddedExtractor) Extract(p *Page) *Batch {
	b := newBatch(e.Name())
	for _, region := range scriptRegions {
		for _, m := range region.FindAllStringSubmatch(p.Raw, -1) {
			for _, frag := range fragments(m[1]) {
				obj, repaired, reason := decodeFragment(frag, e.Repair)
				if reason != SkipNone {
					b.skip(reason)
					continue
				}
				if repaired {
					b.Repaired++
				}
				b.add(recordFromObject(obj))
			}
		}
	}
	return b
}

func fragments(s string) []string {
	var out []string
	for _, re := range fragmentPatterns {
		out = append(out, re.FindAllString(s, -1)...)
	}
	return out
}

// decodeFragment parses frag strictly. When strict parsing fails the fragment
// is run through JSON repair; the result is returned only if repair is true.
func decodeFragment(frag string, repair bool) (map[string]interface{}, bool, SkipReason) {
	var v interface{}
	repaired := false
	if err := json.Unmarshal([]byte(frag), &v); err != nil {
		fixed, repairErr := jsonrepair.JSONRepair(frag)
		if repairErr != nil {
			return nil, false, SkipMalformedJSON
		}
		if err := json.Unmarshal([]byte(fixed), &v); err != nil {
			return nil, false, SkipMalformedJSON
		}
		repaired = true
	}

	obj, ok := v.(map[string]interface{})
	if !ok {
		return nil, false, SkipNotObject
	}
	if _, ok := obj["year"]; !ok {
		return nil, false, SkipNoYearKey
	}
	if repaired && !repair {
		return nil, false, SkipRepairableJSON
	}
	return obj, repaired, SkipNone
}

func recordFromObject(obj map[string]interface{}) (record.Record, SkipReason) {
	year, ok := toInt(obj["year"])
	if !ok {
		return record.Record{}, SkipBadNumber
	}

	rank := missingRank
	if v, present := lookup(obj, "rank", "position"); present {
		if rank, ok = toInt(v); !ok {
			return record.Record{}, SkipBadNumber
		}
	}

	category, _ := lookup(obj, "category", "division")
	studio, _ := lookup(obj, "studio", "team")
	studioName := toString(studio)

	return record.Record{
		Year:       year,
		Rank:       rank,
		Category:   toString(category),
		StudioName: studioName,
		TeamName:   toString(obj["name"]),
		Country:    country.Resolve(studioName),
		Source:     record.SourceEmbedded,
	}, SkipNone
}

// lookup returns the value of the first key present in obj.
func lookup(obj map[string]interface{}, keys ...string) (interface{}, bool) {
	for _, k := range keys {
		if v, ok := obj[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// toInt accepts JSON numbers and numeric strings; null is zero.
func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case nil:
		return 0, true
	case float64:
		return int(n), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func toString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}
