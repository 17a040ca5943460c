package dataset

import (
	"sort"
)

// sortEntries orders entries by year, then category, then rank. Entries that
// compare equal keep their merge order.
func sortEntries(entries []entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return compareRows(entries[i].Row, entries[j].Row)
	})
}

// compareRows reports whether row i should come before row j
func compareRows(i, j Row) bool {
	if i.Year != j.Year {
		return i.Year < j.Year
	}
	if i.Category != j.Category {
		return i.Category < j.Category
	}
	return i.Rank < j.Rank
}
