package country

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"known parenthesized code", "Dance Dynamics (JPN)", "Japan"},
		{"lowercase code is uppercased", "dance dynamics (aus)", "Australia"},
		{"unknown code surfaces raw", "Team Nordic (NOR)", "NOR"},
		{"parenthesized code wins over names", "Canada Elite (MEX)", "Mexico"},
		{"country name in text", "Studio One Netherlands", "Netherlands"},
		{"code substring", "FRA Dance Academy", "France"},
		{"table order breaks ties", "Japan and Canada", "Japan"},
		{"US substring matches first", "House of Dance", "USA"},
		{"nothing matches", "Starlight Academy", "Unknown"},
		{"empty text", "", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.text); got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolve_NeverBlank(t *testing.T) {
	inputs := []string{"", " ", "()", "(X)", "(ABCDE)", "12345", "\n\t", "(ZZ)"}
	for _, in := range inputs {
		got := Resolve(in)
		if got == "" {
			t.Errorf("Resolve(%q) returned blank", in)
		}
		if got != Unknown && !Known(got) && len(got) > 4 {
			t.Errorf("Resolve(%q) = %q, not a table country, raw code, or Unknown", in, got)
		}
	}
}

func TestKnown(t *testing.T) {
	if !Known("Taiwan") {
		t.Error("Known(Taiwan) = false")
	}
	if Known("TPE") {
		t.Error("Known(TPE) = true, codes are not countries")
	}
}
