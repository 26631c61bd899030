package overlay

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/notation"
)

// fakeView is a minimal View over a string.
type fakeView struct {
	text   string
	caret  int
	mode   Mode
	ranges []TextRange
}

func newFakeView(text string) *fakeView {
	return &fakeView{
		text:   text,
		mode:   ModeLivePreview,
		ranges: []TextRange{{From: 0, To: len(text)}},
	}
}

func (v *fakeView) Caret() int                 { return v.caret }
func (v *fakeView) LineAt(offset int) int      { return strings.Count(v.text[:offset], "\n") }
func (v *fakeView) Slice(from, to int) string  { return v.text[from:to] }
func (v *fakeView) VisibleRanges() []TextRange { return v.ranges }
func (v *fakeView) Mode() Mode                 { return v.mode }

// caretOnLine moves the caret to the start of line n.
func (v *fakeView) caretOnLine(n int) {
	offset := 0
	for i := 0; i < n; i++ {
		offset += strings.IndexByte(v.text[offset:], '\n') + 1
	}
	v.caret = offset
}

func newTestEngine(opts ...Option) *Engine {
	engine, _ := conversion.NewDefaultEngine()
	return NewEngine(conversion.NewFormatter(engine), opts...)
}

// summary is a comparable view of a decision set.
type summary struct {
	Text     string
	Line     int
	Decision Decision
	Reason   Reason
	Widget   string
}

func summarize(d DecisionSet) []summary {
	var out []summary
	ri := 0
	for _, td := range d.Decisions {
		s := summary{Text: td.Token.Text, Line: td.Line, Decision: td.Decision, Reason: td.Reason}
		if td.Decision == Render {
			s.Widget = d.Replacements[ri].Widget.Text
			ri++
		}
		out = append(out, s)
	}
	return out
}

const threeLines = "Cut [2ft|in] here\nthen [1in|mm]\nand [5xx|yy]"

func TestRebuildCaretLineSuppressed(t *testing.T) {
	v := newFakeView(threeLines)
	e := newTestEngine()

	got := summarize(e.Rebuild(v))
	want := []summary{
		{Text: "[2ft|in]", Line: 0, Decision: Suppress, Reason: ReasonCaretLine},
		{Text: "[1in|mm]", Line: 1, Decision: Render, Widget: "25.40 mm"},
		{Text: "[5xx|yy]", Line: 2, Decision: Suppress, Reason: ReasonConversionFailed},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Rebuild mismatch (-want +got):\n%s", diff)
	}
	if e.State() != StateLivePreviewActive {
		t.Errorf("State() = %v, want %v", e.State(), StateLivePreviewActive)
	}
}

func TestCaretMoveFlipsDecisions(t *testing.T) {
	v := newFakeView(threeLines)
	e := newTestEngine()
	e.Rebuild(v)

	v.caretOnLine(1)
	if !e.SelectionChanged(v) {
		t.Fatal("SelectionChanged to another line should rebuild")
	}

	got := summarize(e.Decisions())
	want := []summary{
		{Text: "[2ft|in]", Line: 0, Decision: Render, Widget: "24.00 in"},
		{Text: "[1in|mm]", Line: 1, Decision: Suppress, Reason: ReasonCaretLine},
		{Text: "[5xx|yy]", Line: 2, Decision: Suppress, Reason: ReasonConversionFailed},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("after caret move (-want +got):\n%s", diff)
	}
}

func TestSelectionChangedSameLine(t *testing.T) {
	v := newFakeView(threeLines)
	e := newTestEngine()
	e.Rebuild(v)

	v.caret = 5
	if e.SelectionChanged(v) {
		t.Error("caret move within the line should not rebuild")
	}
	if e.Rebuilds() != 1 {
		t.Errorf("Rebuilds() = %d, want 1", e.Rebuilds())
	}
}

func TestNothingOnCaretLineRenders(t *testing.T) {
	text := "[1in|mm] [2in|mm]\n[3in|mm]\n[4in|mm] [5in|mm]\n\n[6in|mm]"
	v := newFakeView(text)
	e := newTestEngine()

	for caret := 0; caret <= len(text); caret++ {
		v.caret = caret
		set := e.Rebuild(v)
		caretLine := v.LineAt(caret)
		for _, r := range set.Replacements {
			if r.Line == caretLine {
				t.Fatalf("caret %d: replacement %q on caret line %d", caret, r.Widget.Token.Text, caretLine)
			}
		}
		if got, want := len(set.Decisions), 6; got != want {
			t.Fatalf("caret %d: %d decisions, want %d", caret, got, want)
		}
	}
}

func TestRebuildSourceModeEmpty(t *testing.T) {
	v := newFakeView(threeLines)
	v.mode = ModeSource
	e := newTestEngine()

	if set := e.Rebuild(v); !set.IsEmpty() || len(set.Decisions) != 0 {
		t.Errorf("source mode produced %+v", set)
	}
	if e.State() != StateSource {
		t.Errorf("State() = %v, want %v", e.State(), StateSource)
	}
}

func TestRebuildLivePreviewDisabled(t *testing.T) {
	v := newFakeView(threeLines)
	s := DefaultSettings()
	s.LivePreview = false
	e := newTestEngine(WithSettings(s))

	if set := e.Rebuild(v); !set.IsEmpty() {
		t.Errorf("disabled live preview produced %d replacements", set.Rendered())
	}
	if e.State() != StateLivePreviewDisabled {
		t.Errorf("State() = %v, want %v", e.State(), StateLivePreviewDisabled)
	}
}

func TestModeAndSettingsTransitions(t *testing.T) {
	v := newFakeView(threeLines)
	v.mode = ModeSource
	e := newTestEngine()

	if !e.DocumentChanged(v) {
		t.Error("first event should rebuild")
	}
	if e.DocumentChanged(v) {
		t.Error("edit in source mode should not rebuild an empty overlay")
	}
	if e.ModeChanged(v) {
		t.Error("unchanged mode should not rebuild")
	}

	v.mode = ModeLivePreview
	if !e.ModeChanged(v) {
		t.Fatal("switch to live preview should rebuild")
	}
	if e.Decisions().Rendered() != 1 {
		t.Errorf("Rendered() = %d, want 1", e.Decisions().Rendered())
	}

	s := e.Settings()
	s.LivePreview = false
	if !e.SettingsChanged(v, s) {
		t.Fatal("disabling live preview should rebuild")
	}
	if !e.Decisions().IsEmpty() || e.State() != StateLivePreviewDisabled {
		t.Errorf("after disabling: state %v, %d replacements", e.State(), e.Decisions().Rendered())
	}

	s.LivePreview = true
	s.Display.ShowOriginalUnits = true
	if !e.SettingsChanged(v, s) {
		t.Fatal("enabling live preview should rebuild")
	}
	if got := e.Decisions().Replacements[0].Widget.Text; got != "1 in (25.40 mm)" {
		t.Errorf("widget = %q, want %q", got, "1 in (25.40 mm)")
	}
}

func TestDocumentChangedRebuilds(t *testing.T) {
	v := newFakeView("[1in|mm]\n")
	v.caret = len(v.text)
	e := newTestEngine()
	e.Rebuild(v)

	v.text = "[1in|mm]\n[1ft|in]"
	v.ranges = []TextRange{{From: 0, To: len(v.text)}}
	v.caret = len(v.text)
	if !e.DocumentChanged(v) {
		t.Fatal("DocumentChanged should rebuild")
	}
	got := summarize(e.Decisions())
	want := []summary{
		{Text: "[1in|mm]", Line: 0, Decision: Render, Widget: "25.40 mm"},
		{Text: "[1ft|in]", Line: 1, Decision: Suppress, Reason: ReasonCaretLine},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("after edit (-want +got):\n%s", diff)
	}
}

func TestVisibleRangesScannedOnce(t *testing.T) {
	text := "x\n[1in|mm] [2in|mm]\n[3in|mm]"
	v := newFakeView(text)
	v.ranges = []TextRange{
		{From: 2, To: 20},
		{From: 0, To: 11},
		{From: 2, To: 20},
		{From: 20, To: len(text)},
		{From: 5, To: 5},
	}
	e := newTestEngine()
	set := e.Rebuild(v)

	if len(set.Decisions) != 3 {
		t.Fatalf("got %d decisions, want 3: %+v", len(set.Decisions), summarize(set))
	}
	for i := 1; i < len(set.Replacements); i++ {
		if set.Replacements[i].Start < set.Replacements[i-1].End {
			t.Errorf("replacements %d and %d overlap or are out of order", i-1, i)
		}
	}
}

func TestVisibleRangeOffsetsAbsolute(t *testing.T) {
	text := "first line\nsecond [1in|mm]\nthird [2in|mm]"
	v := newFakeView(text)
	v.ranges = []TextRange{{From: strings.Index(text, "third"), To: len(text)}}
	e := newTestEngine()
	set := e.Rebuild(v)

	if set.Rendered() != 1 {
		t.Fatalf("Rendered() = %d, want 1", set.Rendered())
	}
	r := set.Replacements[0]
	if text[r.Start:r.End] != "[2in|mm]" || r.Line != 2 {
		t.Errorf("replacement covers %q on line %d", text[r.Start:r.End], r.Line)
	}
}

func TestMergeRanges(t *testing.T) {
	tests := []struct {
		in   []TextRange
		want []TextRange
	}{
		{nil, nil},
		{[]TextRange{{0, 0}}, nil},
		{[]TextRange{{5, 10}, {0, 3}}, []TextRange{{0, 3}, {5, 10}}},
		{[]TextRange{{0, 5}, {5, 10}}, []TextRange{{0, 10}}},
		{[]TextRange{{0, 10}, {2, 4}, {8, 12}}, []TextRange{{0, 12}}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, mergeRanges(tt.in)); diff != "" {
			t.Errorf("mergeRanges(%v) (-want +got):\n%s", tt.in, diff)
		}
	}
}

type countingScanner struct {
	calls int
}

func (s *countingScanner) Scan(text string, base int) []notation.Token {
	s.calls++
	return notation.Default.ScanAt(text, base).Collect()
}

func TestWithScanner(t *testing.T) {
	sc := &countingScanner{}
	v := newFakeView(threeLines)
	v.ranges = []TextRange{{0, 10}, {12, 20}, {25, len(threeLines)}}
	e := newTestEngine(WithScanner(sc))
	e.Rebuild(v)
	if sc.calls != 3 {
		t.Errorf("scanner called %d times, want 3", sc.calls)
	}
}
