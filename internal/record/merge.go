package record

// MergeStats summarizes a merge
type MergeStats struct {
	Input      int `json:"input"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
	Kept       int `json:"kept"`
}

// Merge deduplicates records in first-seen order. Records without a year or
// with a zero rank are dropped before they can claim a key.
func Merge(records []Record) ([]Record, MergeStats) {
	stats := MergeStats{Input: len(records)}

	seen := make(map[Key]bool)
	unique := make([]Record, 0, len(records))
	for _, rec := range records {
		if !rec.Valid() {
			stats.Invalid++
			continue
		}
		key := rec.Key()
		if seen[key] {
			stats.Duplicates++
			continue
		}
		seen[key] = true
		unique = append(unique, rec)
	}

	stats.Kept = len(unique)
	return unique, stats
}

// Dedupe is Merge without the stats
func Dedupe(records []Record) []Record {
	unique, _ := Merge(records)
	return unique
}
