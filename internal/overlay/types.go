// Package overlay decides which conversion requests in an editable view are
// visually replaced by their conversion and which stay as raw text.
//
// The engine never edits the document. It derives a DecisionSet from the
// current view: every request outside the caret line that converts cleanly
// gets a Replacement, everything else is left alone so the user can edit it.
package overlay

import (
	"github.com/dshills/unitlens/internal/notation"
)

// Mode is the host's editing mode.
type Mode uint8

const (
	// ModeSource shows the raw document. No replacements are produced.
	ModeSource Mode = iota

	// ModeLivePreview shows rendered replacements outside the caret line.
	ModeLivePreview
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeSource:
		return "source"
	case ModeLivePreview:
		return "live-preview"
	default:
		return "unknown"
	}
}

// State is the state of the overlay engine.
type State uint8

const (
	StateSource State = iota
	StateLivePreviewDisabled
	StateLivePreviewActive
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateSource:
		return "source"
	case StateLivePreviewDisabled:
		return "live-preview-disabled"
	case StateLivePreviewActive:
		return "live-preview-active"
	default:
		return "unknown"
	}
}

// Active reports whether the state produces replacements.
func (s State) Active() bool {
	return s == StateLivePreviewActive
}

// Decision is the per-token outcome of a rebuild.
type Decision uint8

const (
	// Suppress leaves the raw text visible.
	Suppress Decision = iota

	// Render replaces the raw text with its conversion.
	Render
)

// String returns the string representation of the decision.
func (d Decision) String() string {
	if d == Render {
		return "render"
	}
	return "suppress"
}

// Reason explains a Suppress decision.
type Reason uint8

const (
	ReasonNone Reason = iota
	ReasonCaretLine
	ReasonConversionFailed
)

// String returns the string representation of the reason.
func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCaretLine:
		return "caret-line"
	case ReasonConversionFailed:
		return "conversion-failed"
	default:
		return "unknown"
	}
}

// TextRange is a half-open byte range [From, To) of the document.
type TextRange struct {
	From int
	To   int
}

// Len returns the length of the range in bytes.
func (r TextRange) Len() int {
	return r.To - r.From
}

// IsEmpty returns true if the range has zero length.
func (r TextRange) IsEmpty() bool {
	return r.To <= r.From
}

// Contains returns true if offset is within the range.
func (r TextRange) Contains(offset int) bool {
	return offset >= r.From && offset < r.To
}

// View is the host document and viewport as seen by the engine.
type View interface {
	// Caret returns the byte offset of the primary caret.
	Caret() int

	// LineAt returns the 0-indexed line containing offset.
	LineAt(offset int) int

	// Slice returns the document text in [from, to).
	Slice(from, to int) string

	// VisibleRanges returns the document ranges currently on screen.
	// Ranges may overlap and need not be sorted.
	VisibleRanges() []TextRange

	// Mode returns the current editing mode.
	Mode() Mode
}

// TextScanner finds conversion requests in a slice of text. base is the
// absolute offset of text within the document and is added to every token
// offset.
type TextScanner interface {
	Scan(text string, base int) []notation.Token
}

// GrammarScanner adapts a notation.Grammar to TextScanner.
type GrammarScanner struct {
	Grammar *notation.Grammar
}

// Scan returns every token in text with absolute offsets.
func (s GrammarScanner) Scan(text string, base int) []notation.Token {
	g := s.Grammar
	if g == nil {
		g = notation.Default
	}
	return g.ScanAt(text, base).Collect()
}

// OverlayProvider derives the overlay for a view.
type OverlayProvider interface {
	Rebuild(v View) DecisionSet
}

// Selection is a caret selection in document offsets.
type Selection struct {
	Anchor int
	Head   int
}

// Widget is the visual content that stands in for a request. It is never
// written to the document.
type Widget struct {
	Text  string
	Token notation.Token
}

// Activate returns the selection a host places when the widget is clicked:
// the raw request text, so the user can edit it.
func (w Widget) Activate() Selection {
	return Selection{Anchor: w.Token.Start, Head: w.Token.End}
}

// Replacement is one rendered request.
type Replacement struct {
	Start  int
	End    int
	Line   int
	Widget Widget
}

// Range returns the document range covered by the replacement.
func (r Replacement) Range() TextRange {
	return TextRange{From: r.Start, To: r.End}
}

// TokenDecision records the outcome for one token of a rebuild.
type TokenDecision struct {
	Token    notation.Token
	Line     int
	Decision Decision
	Reason   Reason
}
