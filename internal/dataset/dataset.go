// Package dataset turns merged candidate records into the final output table.
package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pfrederiksen/danceworlds-scrape/internal/country"
	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

// Columns is the header of the emitted table, in order.
var Columns = []string{"Year", "Rank", "Category", "Studio_Name", "Team_Name", "Country", "Dance_Type"}

// Row is one line of the final dataset
type Row struct {
	Year       int    `json:"Year"`
	Rank       int    `json:"Rank"`
	Category   string `json:"Category"`
	StudioName string `json:"Studio_Name"`
	TeamName   string `json:"Team_Name"`
	Country    string `json:"Country"`
	DanceType  string `json:"Dance_Type"`
}

// Values returns the row as strings in Columns order.
func (r Row) Values() []string {
	return []string{
		strconv.Itoa(r.Year),
		strconv.Itoa(r.Rank),
		r.Category,
		r.StudioName,
		r.TeamName,
		r.Country,
		r.DanceType,
	}
}

// entry is a row with the bookkeeping that is dropped before output
type entry struct {
	Row
	Round      record.Round
	RawScore   string
	EventScore string
	IsChampion bool
	IsPodium   bool
	DataSource record.Source
}

// Result is the finalized table plus what was filtered on the way
type Result struct {
	Rows []Row `json:"rows"`
	// NonFinal counts rows removed because their round was not the final.
	NonFinal  int                   `json:"non_final"`
	Champions int                   `json:"champions"`
	Podiums   int                   `json:"podiums"`
	Sources   map[record.Source]int `json:"sources"`
}

var parenthetical = regexp.MustCompile(`\([^)]+\)`)

// Finalize builds the output table from deduplicated records. Country is
// re-resolved when unknown, the team falls back to the studio and loses any
// parenthetical code, and only final-round rows are kept, ordered by year,
// category and rank.
func Finalize(records []record.Record) Result {
	entries := make([]entry, 0, len(records))
	for _, rec := range records {
		entries = append(entries, newEntry(rec))
	}

	sortEntries(entries)

	res := Result{
		Rows:    make([]Row, 0, len(entries)),
		Sources: make(map[record.Source]int),
	}
	for _, e := range entries {
		if e.Round != record.RoundFinal {
			res.NonFinal++
			continue
		}
		if e.IsChampion {
			res.Champions++
		}
		if e.IsPodium {
			res.Podiums++
		}
		res.Sources[e.DataSource]++
		res.Rows = append(res.Rows, e.Row)
	}
	return res
}

func newEntry(rec record.Record) entry {
	c := rec.Country
	if c == "" || c == country.Unknown {
		c = country.Resolve(rec.TeamName + " " + rec.StudioName)
	}

	team := rec.TeamName
	if strings.TrimSpace(team) == "" {
		team = rec.StudioName
	}
	team = strings.TrimSpace(parenthetical.ReplaceAllString(team, ""))

	return entry{
		Row: Row{
			Year:       rec.Year,
			Rank:       rec.Rank,
			Category:   rec.Category,
			StudioName: rec.StudioName,
			TeamName:   team,
			Country:    c,
			DanceType:  ClassifyDanceType(rec.Category),
		},
		Round:      rec.EffectiveRound(),
		RawScore:   rec.RawScore,
		EventScore: rec.EventScore,
		IsChampion: rec.Rank == 1,
		IsPodium:   rec.Rank <= 3,
		DataSource: rec.Source,
	}
}
