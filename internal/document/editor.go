package document

import (
	"unicode/utf8"

	"github.com/dshills/unitlens/internal/overlay"
)

// Editor is an editable document: a buffer, a single caret with an optional
// selection, a viewport and an editing mode. It implements overlay.View and the line editing used by
// the autosuggest controller.
//
// Editor is not safe for concurrent use.
type Editor struct {
	buf      *Buffer
	caret    int
	anchor   int
	goalCol  int
	viewport *Viewport
	mode     overlay.Mode
}

// Option configures an Editor.
type Option func(*Editor)

// WithViewport sets the viewport. Defaults to 80x24.
func WithViewport(v *Viewport) Option {
	return func(e *Editor) {
		if v != nil {
			e.viewport = v
		}
	}
}

// WithMode sets the initial editing mode. Defaults to live preview.
func WithMode(m overlay.Mode) Option {
	return func(e *Editor) {
		e.mode = m
	}
}

// NewEditor creates an editor over text with the caret at the start.
func NewEditor(text string, opts ...Option) *Editor {
	e := &Editor{
		buf:      NewBuffer(text),
		viewport: NewViewport(80, 24),
		mode:     overlay.ModeLivePreview,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Buffer returns the underlying buffer.
func (e *Editor) Buffer() *Buffer {
	return e.buf
}

// Viewport returns the viewport.
func (e *Editor) Viewport() *Viewport {
	return e.viewport
}

// Text returns the document text.
func (e *Editor) Text() string {
	return e.buf.Text()
}

// View implementation.

// Caret returns the caret offset.
func (e *Editor) Caret() int {
	return e.caret
}

// LineAt returns the line containing offset.
func (e *Editor) LineAt(offset int) int {
	return e.buf.LineAt(offset)
}

// Slice returns the text in [from, to).
func (e *Editor) Slice(from, to int) string {
	return e.buf.Slice(from, to)
}

// VisibleRanges returns the ranges on screen.
func (e *Editor) VisibleRanges() []overlay.TextRange {
	return e.viewport.VisibleRanges(e.buf)
}

// Mode returns the editing mode.
func (e *Editor) Mode() overlay.Mode {
	return e.mode
}

// SetMode sets the editing mode and reports whether it changed.
func (e *Editor) SetMode(m overlay.Mode) bool {
	if m == e.mode {
		return false
	}
	e.mode = m
	return true
}

// ToggleMode switches between source and live preview.
func (e *Editor) ToggleMode() overlay.Mode {
	if e.mode == overlay.ModeLivePreview {
		e.mode = overlay.ModeSource
	} else {
		e.mode = overlay.ModeLivePreview
	}
	return e.mode
}

// Caret movement.

// CaretPoint returns the caret as line/column.
func (e *Editor) CaretPoint() Point {
	return e.buf.OffsetToPoint(e.caret)
}

// SetCaret moves the caret to offset, clamped to the buffer and snapped back
// to a rune boundary. Reports whether the caret moved.
func (e *Editor) SetCaret(offset int) bool {
	prev := e.caret
	e.moveTo(offset)
	return e.caret != prev
}

// Select selects the text between anchor and head and places the caret at
// head. Both ends are clamped and snapped like SetCaret.
func (e *Editor) Select(anchor, head int) {
	e.moveTo(head)
	e.anchor = e.snap(clamp(anchor, 0, e.buf.Len()))
}

// Selection returns the selected range in ascending order. It is empty when
// nothing is selected.
func (e *Editor) Selection() overlay.TextRange {
	if e.anchor <= e.caret {
		return overlay.TextRange{From: e.anchor, To: e.caret}
	}
	return overlay.TextRange{From: e.caret, To: e.anchor}
}

// HasSelection reports whether any text is selected.
func (e *Editor) HasSelection() bool {
	return e.anchor != e.caret
}

// moveTo places the caret, drops the selection and keeps the caret on screen.
func (e *Editor) moveTo(offset int) {
	e.caret = e.snap(clamp(offset, 0, e.buf.Len()))
	e.anchor = e.caret
	e.goalCol = e.caret - e.buf.LineStart(e.buf.LineAt(e.caret))
	e.viewport.EnsureVisible(e.buf.LineAt(e.caret), e.buf.LineCount())
}

// SetCursor moves the caret to a line and byte column.
func (e *Editor) SetCursor(line, col int) error {
	offset, err := e.buf.PointToOffset(Point{Line: line, Column: col})
	if err != nil {
		return err
	}
	e.SetCaret(offset)
	return nil
}

// MoveLeft moves the caret one rune left.
func (e *Editor) MoveLeft() bool {
	if e.caret == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(e.buf.Slice(0, e.caret))
	return e.SetCaret(e.caret - size)
}

// MoveRight moves the caret one rune right.
func (e *Editor) MoveRight() bool {
	if e.caret >= e.buf.Len() {
		return false
	}
	_, size := utf8.DecodeRuneInString(e.buf.Slice(e.caret, e.caret+utf8.UTFMax))
	return e.SetCaret(e.caret + size)
}

// MoveUp moves the caret one line up, keeping its column where possible.
func (e *Editor) MoveUp() bool {
	return e.moveLine(-1)
}

// MoveDown moves the caret one line down, keeping its column where possible.
func (e *Editor) MoveDown() bool {
	return e.moveLine(1)
}

func (e *Editor) moveLine(delta int) bool {
	line := e.buf.LineAt(e.caret) + delta
	if line < 0 || line >= e.buf.LineCount() {
		return false
	}
	goal := e.goalCol
	offset, _ := e.buf.PointToOffset(Point{Line: line, Column: goal})
	moved := e.SetCaret(offset)
	e.goalCol = goal
	return moved
}

// MoveLineStart moves the caret to the start of its line.
func (e *Editor) MoveLineStart() bool {
	return e.SetCaret(e.buf.LineStart(e.buf.LineAt(e.caret)))
}

// MoveLineEnd moves the caret to the end of its line.
func (e *Editor) MoveLineEnd() bool {
	return e.SetCaret(e.buf.LineEnd(e.buf.LineAt(e.caret)))
}

// snap moves offset back to the start of the rune it falls in.
func (e *Editor) snap(offset int) int {
	for offset > 0 && offset < e.buf.Len() {
		b := e.buf.Slice(offset, offset+1)
		if utf8.RuneStart(b[0]) {
			break
		}
		offset--
	}
	return offset
}

// Editing.

// InsertText inserts text at the caret, replacing the selection, and moves
// the caret after it.
func (e *Editor) InsertText(text string) error {
	sel := e.Selection()
	end, err := e.buf.Replace(sel.From, sel.To, text)
	if err != nil {
		return err
	}
	e.moveTo(end)
	return nil
}

// Backspace deletes the selection, or the rune before the caret. Reports
// whether anything was deleted.
func (e *Editor) Backspace() bool {
	if e.HasSelection() {
		return e.deleteSelection()
	}
	if e.caret == 0 {
		return false
	}
	_, size := utf8.DecodeLastRuneInString(e.buf.Slice(0, e.caret))
	start := e.caret - size
	if err := e.buf.Delete(start, e.caret); err != nil {
		return false
	}
	e.moveTo(start)
	return true
}

// DeleteForward deletes the selection, or the rune after the caret.
func (e *Editor) DeleteForward() bool {
	if e.HasSelection() {
		return e.deleteSelection()
	}
	if e.caret >= e.buf.Len() {
		return false
	}
	_, size := utf8.DecodeRuneInString(e.buf.Slice(e.caret, e.caret+utf8.UTFMax))
	return e.buf.Delete(e.caret, e.caret+size) == nil
}

func (e *Editor) deleteSelection() bool {
	sel := e.Selection()
	if err := e.buf.Delete(sel.From, sel.To); err != nil {
		return false
	}
	e.moveTo(sel.From)
	return true
}

// Line returns the text of line n.
func (e *Editor) Line(n int) string {
	return e.buf.LineText(n)
}

// ReplaceRange replaces the byte columns [startCol, endCol) of a line.
// The caret keeps its position relative to the surrounding text.
func (e *Editor) ReplaceRange(line, startCol, endCol int, text string) error {
	if line < 0 || line >= e.buf.LineCount() {
		return ErrLineOutOfRange
	}
	lineStart := e.buf.LineStart(line)
	lineLen := e.buf.LineEnd(line) - lineStart
	if startCol < 0 || endCol < startCol || endCol > lineLen {
		return ErrRangeInvalid
	}

	start, end := lineStart+startCol, lineStart+endCol
	newEnd, err := e.buf.Replace(start, end, text)
	if err != nil {
		return err
	}

	caret := e.caret
	switch {
	case caret >= end:
		caret += newEnd - end
	case caret > start:
		caret = newEnd
	}
	e.moveTo(caret)
	return nil
}
