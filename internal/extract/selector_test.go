package extract

import (
	"testing"
)

func TestSelectorExtractor(t *testing.T) {
	html := `<html><body>
		<div class="result-card">2024 | 3 | Senior Hip Hop | Urban Crew (CAN)</div>
		<div id="ranking-note">Updated 2024</div>
		<span class="team">No numbers here</span>
	</body></html>`

	b := SelectorExtractor{Selectors: DanceSelectors}.Extract(mustPage(t, html))

	if len(b.Records) != 1 {
		t.Fatalf("Extract() returned %d records, want 1: %+v", len(b.Records), b.Records)
	}

	rec := b.Records[0]
	if rec.Year != 2024 || rec.Rank != 3 {
		t.Errorf("year/rank = %d/%d, want 2024/3", rec.Year, rec.Rank)
	}
	if rec.Category != "Senior Hip Hop" {
		t.Errorf("Category = %q", rec.Category)
	}
	if rec.StudioName != "Urban Crew (CAN)" || rec.Country != "Canada" {
		t.Errorf("studio/country = %q/%q", rec.StudioName, rec.Country)
	}
	if b.Skipped[SkipNoSignal] != 2 {
		t.Errorf("Skipped[no_year_or_rank] = %d, want 2", b.Skipped[SkipNoSignal])
	}
}

func TestParseElementText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		reason   SkipReason
		category string
		studio   string
	}{
		{"dance term picks category", "2019 - 7 - Junior Dance - Starz", SkipNone, "Junior Dance", "Starz"},
		{"no category still keeps studio", "2019, 7, Moonlight Academy", SkipNone, "", "Moonlight Academy"},
		{"only short parts", "2019 | 7", SkipNoFields, "", ""},
		{"no year", "Rank 7 Senior Jazz", SkipNoSignal, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reason := parseElementText(tt.text)
			if reason != tt.reason {
				t.Fatalf("reason = %q, want %q", reason, tt.reason)
			}
			if rec.Category != tt.category || rec.StudioName != tt.studio {
				t.Errorf("category/studio = %q/%q, want %q/%q", rec.Category, rec.StudioName, tt.category, tt.studio)
			}
		})
	}
}
