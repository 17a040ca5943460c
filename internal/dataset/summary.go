package dataset

import (
	"sort"
	"strconv"

	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
)

const (
	topCountries = 10
	sampleRows   = 10
)

// Count is a label with the number of rows carrying it
type Count struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// Summary describes a finalized dataset for the console report
type Summary struct {
	Records      int     `json:"records"`
	FirstYear    int     `json:"first_year,omitempty"`
	LastYear     int     `json:"last_year,omitempty"`
	Countries    int     `json:"countries"`
	DanceTypes   int     `json:"dance_types"`
	Studios      int     `json:"studios"`
	ByYear       []Count `json:"by_year"`
	ByDanceType  []Count `json:"by_dance_type"`
	TopCountries []Count `json:"top_countries"`
	Sample       []Row   `json:"sample"`
	// Champions are the rank-1 rows of LastYear.
	Champions []Row `json:"champions"`
	// UnmappedCodes are parenthesized country codes missing from the lookup table.
	UnmappedCodes []string `json:"unmapped_codes,omitempty"`
}

// Summarize computes the report figures for rows.
func Summarize(rows []Row) Summary {
	s := Summary{
		Records:      len(rows),
		ByYear:       make([]Count, 0),
		ByDanceType:  make([]Count, 0),
		TopCountries: make([]Count, 0),
		Sample:       make([]Row, 0),
		Champions:    make([]Row, 0),
	}
	if len(rows) == 0 {
		return s
	}

	years := make(map[int]int)
	countries := make(map[string]int)
	danceTypes := make(map[string]int)
	studios := make(map[string]bool)

	s.FirstYear, s.LastYear = rows[0].Year, rows[0].Year
	for _, r := range rows {
		years[r.Year]++
		countries[r.Country]++
		danceTypes[r.DanceType]++
		studios[r.StudioName] = true
		if r.Year < s.FirstYear {
			s.FirstYear = r.Year
		}
		if r.Year > s.LastYear {
			s.LastYear = r.Year
		}
	}

	for c := range countries {
		if c != country.Unknown && !country.Known(c) {
			s.UnmappedCodes = append(s.UnmappedCodes, c)
		}
	}
	sort.Strings(s.UnmappedCodes)

	s.Countries = len(countries)
	s.DanceTypes = len(danceTypes)
	s.Studios = len(studios)

	yearKeys := make([]int, 0, len(years))
	for y := range years {
		yearKeys = append(yearKeys, y)
	}
	sort.Ints(yearKeys)
	for _, y := range yearKeys {
		s.ByYear = append(s.ByYear, Count{Key: strconv.Itoa(y), Count: years[y]})
	}

	s.ByDanceType = byCount(danceTypes)
	s.TopCountries = byCount(countries)
	if len(s.TopCountries) > topCountries {
		s.TopCountries = s.TopCountries[:topCountries]
	}

	n := len(rows)
	if n > sampleRows {
		n = sampleRows
	}
	s.Sample = append(s.Sample, rows[:n]...)

	for _, r := range rows {
		if r.Year == s.LastYear && r.Rank == 1 {
			s.Champions = append(s.Champions, r)
		}
	}

	return s
}

// byCount orders counts descending, ties by key
func byCount(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{Key: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}
