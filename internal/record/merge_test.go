package record

import (
	"testing"
)

func TestMerge_DropsMissingYearOrRank(t *testing.T) {
	records := []Record{
		{Year: 2024, Rank: 1, Category: "Senior Jazz", StudioName: "A"},
		{Year: 0, Rank: 2, Category: "Senior Jazz", StudioName: "B"},
		{Year: 2024, Rank: 0, Category: "Senior Jazz", StudioName: "C"},
		{Category: "Senior Jazz", StudioName: "D"},
	}

	got, stats := Merge(records)

	if len(got) != 1 {
		t.Fatalf("Merge() kept %d records, want 1", len(got))
	}
	if got[0].StudioName != "A" {
		t.Errorf("kept studio = %q, want A", got[0].StudioName)
	}
	if stats.Invalid != 3 {
		t.Errorf("stats.Invalid = %d, want 3", stats.Invalid)
	}
	if stats.Input != 4 || stats.Kept != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestMerge_FirstWriterWins(t *testing.T) {
	records := []Record{
		{Year: 2024, Rank: 3, Category: "Senior Pom", StudioName: "Acme", TeamName: "First", Country: "USA", Source: SourceTable},
		{Year: 2024, Rank: 3, Category: "SENIOR POM", StudioName: "ACME", TeamName: "Second", Country: "Japan", Source: SourceList},
		{Year: 2024, Rank: 3, Category: "Senior Pom", StudioName: "Other", Source: SourceList},
	}

	got, stats := Merge(records)

	if len(got) != 2 {
		t.Fatalf("Merge() kept %d records, want 2", len(got))
	}
	if got[0].TeamName != "First" || got[0].Source != SourceTable || got[0].Country != "USA" {
		t.Errorf("first record = %+v, want the first-seen instance", got[0])
	}
	if got[1].StudioName != "Other" {
		t.Errorf("second record studio = %q, want Other", got[1].StudioName)
	}
	if stats.Duplicates != 1 {
		t.Errorf("stats.Duplicates = %d, want 1", stats.Duplicates)
	}
}

func TestMerge_PreservesOrder(t *testing.T) {
	records := []Record{
		{Year: 2023, Rank: 5, StudioName: "E"},
		{Year: 2021, Rank: 1, StudioName: "A"},
		{Year: 2023, Rank: 5, StudioName: "e"},
		{Year: 2022, Rank: 2, StudioName: "B"},
	}

	got := Dedupe(records)

	want := []string{"E", "A", "B"}
	if len(got) != len(want) {
		t.Fatalf("Dedupe() returned %d records, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].StudioName != w {
			t.Errorf("record %d studio = %q, want %q", i, got[i].StudioName, w)
		}
	}
}

func TestMerge_Empty(t *testing.T) {
	got, stats := Merge(nil)
	if len(got) != 0 {
		t.Errorf("Merge(nil) returned %d records", len(got))
	}
	if stats != (MergeStats{}) {
		t.Errorf("stats = %+v, want zero", stats)
	}
}

func TestRecord_EffectiveRound(t *testing.T) {
	tests := []struct {
		round Round
		want  Round
	}{
		{RoundNone, RoundFinal},
		{RoundFinal, RoundFinal},
		{RoundSemiFinal, RoundSemiFinal},
		{RoundUnknown, RoundUnknown},
	}

	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			if got := (Record{Round: tt.round}).EffectiveRound(); got != tt.want {
				t.Errorf("EffectiveRound() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSourceTags(t *testing.T) {
	if got := AdvancedPattern(3); got != "Advanced_Pattern_3" {
		t.Errorf("AdvancedPattern(3) = %q", got)
	}
	if got := RankingsTable(2025); got != "2025_Rankings_Table" {
		t.Errorf("RankingsTable(2025) = %q", got)
	}
}

func TestKey_String(t *testing.T) {
	k := Record{Year: 2024, Rank: 1, Category: "Senior Jazz", StudioName: "Acme"}.Key()
	if got := k.String(); got != "2024|1|senior jazz|acme" {
		t.Errorf("Key.String() = %q", got)
	}
}
