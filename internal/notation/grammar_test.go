package notation

import (
	"testing"
)

func TestGrammarAll(t *testing.T) {
	text := "Buy [2ft|in] of pipe and [1-1/2in|mm] of tape, cut at [7-0-1/2ft|m]."
	tokens := Default.All(text)

	want := []Token{
		{Text: "[2ft|in]", RawValue: "2", FromUnit: "ft", ToUnit: "in"},
		{Text: "[1-1/2in|mm]", RawValue: "1-1/2", FromUnit: "in", ToUnit: "mm"},
		{Text: "[7-0-1/2ft|m]", RawValue: "7-0-1/2", FromUnit: "ft", ToUnit: "m"},
	}
	if len(tokens) != len(want) {
		t.Fatalf("All() returned %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, w := range want {
		got := tokens[i]
		if got.Text != w.Text || got.RawValue != w.RawValue || got.FromUnit != w.FromUnit || got.ToUnit != w.ToUnit {
			t.Errorf("token %d = %+v, want %+v", i, got, w)
		}
		if text[got.Start:got.End] != got.Text {
			t.Errorf("token %d offsets [%d,%d) select %q, want %q", i, got.Start, got.End, text[got.Start:got.End], got.Text)
		}
		if got.Len() != len(got.Text) {
			t.Errorf("token %d Len() = %d, want %d", i, got.Len(), len(got.Text))
		}
	}
	for i := 1; i < len(tokens); i++ {
		if tokens[i].Start < tokens[i-1].End {
			t.Errorf("tokens %d and %d overlap", i-1, i)
		}
	}
}

func TestGrammarRejects(t *testing.T) {
	for _, text := range []string{
		"no syntax here",
		"[2ft|in",
		"[2ft in]",
		"[ft|in]",
		"[-3ft|in]",
		"[1..2ft|in]",
		"[2ft|]",
		"[2|in]",
		"[2ft|in m]",
		"2ft|in]",
	} {
		if tokens := Default.All(text); len(tokens) != 0 {
			t.Errorf("All(%q) = %+v, want none", text, tokens)
		}
		if Default.Match(text) {
			t.Errorf("Match(%q) = true", text)
		}
	}
}

func TestGrammarUnitCharset(t *testing.T) {
	tokens := Default.All("[60km/h|m/h] [3fl-oz|ml] [10m2|ft2] [30in|ftf]")
	want := [][2]string{{"km/h", "m/h"}, {"fl-oz", "ml"}, {"m2", "ft2"}, {"in", "ftf"}}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, w := range want {
		if tokens[i].FromUnit != w[0] || tokens[i].ToUnit != w[1] {
			t.Errorf("token %d units = %q|%q, want %q|%q", i, tokens[i].FromUnit, tokens[i].ToUnit, w[0], w[1])
		}
	}
}

func TestGrammarDoesNotConsumeTrailingContext(t *testing.T) {
	tokens := Default.All("[1ft|in][2ft|in]]")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].End != tokens[1].Start {
		t.Errorf("adjacent tokens: first ends at %d, second starts at %d", tokens[0].End, tokens[1].Start)
	}
}

func TestIteratorRestartable(t *testing.T) {
	text := "a [1m|cm] b [2m|cm] c"
	it := Default.Scan(text)

	first, ok := it.Next()
	if !ok || first.RawValue != "1" {
		t.Fatalf("first Next() = %+v, %v", first, ok)
	}

	// An unrelated scan of the same grammar must not disturb this cursor.
	other := Default.Scan("[9kg|lb]")
	if tok, ok := other.Next(); !ok || tok.RawValue != "9" {
		t.Fatalf("other Next() = %+v, %v", tok, ok)
	}

	second, ok := it.Next()
	if !ok || second.RawValue != "2" {
		t.Fatalf("second Next() = %+v, %v", second, ok)
	}
	if _, ok := it.Next(); ok {
		t.Error("Next() after last token should return false")
	}
	if _, ok := it.Next(); ok {
		t.Error("Next() on exhausted iterator should keep returning false")
	}

	it.Reset()
	again := it.Collect()
	if len(again) != 2 || again[0] != first || again[1] != second {
		t.Errorf("Collect() after Reset = %+v", again)
	}
}

func TestScanAtShiftsOffsets(t *testing.T) {
	tokens := Default.ScanAt("x [1m|cm]", 100).Collect()
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens", len(tokens))
	}
	if tokens[0].Start != 102 || tokens[0].End != 109 {
		t.Errorf("offsets = [%d,%d), want [102,109)", tokens[0].Start, tokens[0].End)
	}
}

func TestMatchPrefix(t *testing.T) {
	tests := []struct {
		text        string
		ok          bool
		from        string
		partial     string
		partialFrom int
	}{
		{"Cut [2ft|", true, "ft", "", 9},
		{"Cut [2ft|me", true, "ft", "me", 9},
		{"[1-1/2in|m", true, "in", "m", 9},
		{"[60km/h|m/", true, "km/h", "m/", 8},
		{"[2ft|in] done", false, "", "", 0},
		{"[2ft|in]", false, "", "", 0},
		{"[2ft|in] then [3m|c", true, "m", "c", 18},
		{"plain text", false, "", "", 0},
		{"[2ft", false, "", "", 0},
	}

	for _, tt := range tests {
		p, ok := Default.MatchPrefix(tt.text)
		if ok != tt.ok {
			t.Errorf("MatchPrefix(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if p.FromUnit != tt.from || p.Partial != tt.partial || p.PartialStart != tt.partialFrom {
			t.Errorf("MatchPrefix(%q) = %+v", tt.text, p)
		}
		if tt.text[p.PartialStart:] != p.Partial {
			t.Errorf("PartialStart %d does not select %q", p.PartialStart, p.Partial)
		}
	}
}
