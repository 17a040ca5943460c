package record

import (
	"fmt"
	"strings"
)

// Source identifies which extractor produced a record
type Source string

const (
	SourceTable    Source = "HTML_Table"
	SourceList     Source = "HTML_List"
	SourceEmbedded Source = "Embedded_JSON"
	SourceSelector Source = "Dance_Specific_Elements"
	SourceManual   Source = "Manual_Input"
)

// AdvancedPattern returns the source tag for the n-th (1-based) text pattern.
func AdvancedPattern(n int) Source {
	return Source(fmt.Sprintf("Advanced_Pattern_%d", n))
}

// RankingsTable returns the source tag for the rankings page of a season.
func RankingsTable(year int) Source {
	return Source(fmt.Sprintf("%d_Rankings_Table", year))
}

// Round is the competition phase a ranking belongs to
type Round string

// Round values. RoundFinal is both the round the dataset keeps and the label
// the rankings extractor gives to finals tables.
const (
	RoundNone      Round = ""
	RoundFinal     Round = "Final"
	RoundSemiFinal Round = "Semi-Finals"
	RoundPrelims   Round = "Prelims"
	RoundUnknown   Round = "Unknown"
)

// Record is an unvalidated extraction result from one strategy
type Record struct {
	Year       int    `json:"year"`
	Rank       int    `json:"rank"`
	Category   string `json:"category"`
	StudioName string `json:"studio_name"`
	TeamName   string `json:"team_name,omitempty"`
	Country    string `json:"country"`
	Round      Round  `json:"round,omitempty"`
	RawScore   string `json:"raw_score,omitempty"`
	EventScore string `json:"event_score,omitempty"`
	Source     Source `json:"source"`
}

// EffectiveRound returns the record's round, defaulting to RoundFinal when unset.
func (r Record) EffectiveRound() Round {
	if r.Round == RoundNone {
		return RoundFinal
	}
	return r.Round
}

// Valid reports whether the record carries both a year and a non-zero rank.
// Rank zero cannot be told apart from a missing rank and is rejected.
func (r Record) Valid() bool {
	return r.Year != 0 && r.Rank != 0
}

// Key is the composite identity used to collapse duplicate candidates
type Key struct {
	Year     int
	Rank     int
	Category string
	Studio   string
}

// Key returns the dedup key for r
func (r Record) Key() Key {
	return Key{
		Year:     r.Year,
		Rank:     r.Rank,
		Category: strings.ToLower(r.Category),
		Studio:   strings.ToLower(r.StudioName),
	}
}

// String renders the key for logs
func (k Key) String() string {
	return fmt.Sprintf("%d|%d|%s|%s", k.Year, k.Rank, k.Category, k.Studio)
}
