package extract

import (
	"testing"

	"github.com/pfrederiksen/danceworlds-scrape/internal/record"
)

func mustPage(t *testing.T, html string) *Page {
	t.Helper()
	p, err := NewPage("https://test.example.com", html)
	if err != nil {
		t.Fatalf("NewPage() error: %v", err)
	}
	return p
}

func findBySource(records []record.Record, source record.Source) *record.Record {
	for i := range records {
		if records[i].Source == source {
			return &records[i]
		}
	}
	return nil
}

type panicky struct{}

func (panicky) Name() string           { return "panicky" }
func (panicky) Extract(p *Page) *Batch { panic("boom") }

func TestRun_IsolatesExtractors(t *testing.T) {
	p := mustPage(t, `<ul><li>2024 | 5 | Senior Jazz | Starlight Dance</li></ul>`)

	batches := Run(p, []Extractor{panicky{}, ListExtractor{Rules: ListRules}})

	if len(batches) != 2 {
		t.Fatalf("Run() returned %d batches, want 2", len(batches))
	}
	if batches[0].Extractor != "panicky" || batches[0].Skipped[SkipPanic] != 1 {
		t.Errorf("panicking batch = %+v", batches[0])
	}
	if len(batches[1].Records) != 1 {
		t.Errorf("list batch has %d records, want 1", len(batches[1].Records))
	}
	if got := Records(batches); len(got) != 1 {
		t.Errorf("Records() returned %d, want 1", len(got))
	}
}

func TestStandard_Order(t *testing.T) {
	want := []string{"HTML_Table", "HTML_List", "Embedded_JSON", "Advanced_Pattern", "Dance_Specific_Elements"}
	got := Standard(Options{})
	if len(got) != len(want) {
		t.Fatalf("Standard() has %d extractors, want %d", len(got), len(want))
	}
	for i, ex := range got {
		if ex.Name() != want[i] {
			t.Errorf("extractor %d = %q, want %q", i, ex.Name(), want[i])
		}
	}

	if e := got[2].(EmbeddedExtractor); e.Repair {
		t.Error("JSON repair is on by default")
	}
	if e := Standard(Options{RepairJSON: true})[2].(EmbeddedExtractor); !e.Repair {
		t.Error("RepairJSON did not reach the embedded extractor")
	}
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"２０２４", "2024"},
		{"2024 Jazz", "2024 Jazz"},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := normalizeText(tt.in); got != tt.want {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	if got := cleanText("  Senior \n\t Small  Jazz "); got != "Senior Small Jazz" {
		t.Errorf("cleanText() = %q", got)
	}
}

func TestBatch_SkipAccounting(t *testing.T) {
	b := newBatch("x")
	b.add(record.Record{Year: 2024, Rank: 1}, SkipNone)
	b.add(record.Record{}, SkipShortRow)
	b.add(record.Record{}, SkipShortRow)
	b.add(record.Record{}, SkipBadNumber)

	if len(b.Records) != 1 {
		t.Errorf("Records = %d, want 1", len(b.Records))
	}
	if b.SkipCount() != 3 {
		t.Errorf("SkipCount() = %d, want 3", b.SkipCount())
	}
	reasons := b.SkipReasons()
	if len(reasons) != 2 || reasons[0] != SkipBadNumber || reasons[1] != SkipShortRow {
		t.Errorf("SkipReasons() = %v", reasons)
	}
}
