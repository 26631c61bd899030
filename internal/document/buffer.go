package document

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Errors returned by buffer operations.
var (
	ErrOffsetOutOfRange = errors.New("offset out of range")
	ErrRangeInvalid     = errors.New("invalid range")
	ErrLineOutOfRange   = errors.New("line out of range")
)

// Point is a 0-indexed line and byte column.
type Point struct {
	Line   int
	Column int
}

// String returns a human-readable representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Column)
}

// Buffer holds document text with a line index. Line endings are
// normalized to LF. All methods are thread-safe.
type Buffer struct {
	mu         sync.RWMutex
	text       string
	lineStarts []int
	revision   uint64
}

// NewBuffer creates a buffer with initial content.
func NewBuffer(text string) *Buffer {
	b := &Buffer{}
	b.set(normalizeLineEndings(text))
	return b
}

// NewBufferFromReader creates a buffer from an io.Reader.
func NewBufferFromReader(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewBuffer(string(data)), nil
}

// normalizeLineEndings converts CRLF and CR to LF.
func normalizeLineEndings(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// set replaces the content and rebuilds the line index. Caller holds the
// write lock.
func (b *Buffer) set(text string) {
	b.text = text
	b.lineStarts = b.lineStarts[:0]
	b.lineStarts = append(b.lineStarts, 0)
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			b.lineStarts = append(b.lineStarts, i+1)
		}
	}
	b.revision++
}

// Text returns the full buffer content.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Len returns the byte length of the buffer.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.text)
}

// Revision returns a counter that changes on every edit.
func (b *Buffer) Revision() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.revision
}

// LineCount returns the number of lines. An empty buffer has one line.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lineStarts)
}

// LineStart returns the offset of the first byte of a line.
// Lines past the end clamp to the last line.
func (b *Buffer) LineStart(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineStart(line)
}

func (b *Buffer) lineStart(line int) int {
	if line < 0 {
		return 0
	}
	if line >= len(b.lineStarts) {
		return b.lineStarts[len(b.lineStarts)-1]
	}
	return b.lineStarts[line]
}

// LineEnd returns the offset of the end of a line, before its newline.
func (b *Buffer) LineEnd(line int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineEnd(line)
}

func (b *Buffer) lineEnd(line int) int {
	if line < 0 {
		line = 0
	}
	if line+1 < len(b.lineStarts) {
		return b.lineStarts[line+1] - 1
	}
	return len(b.text)
}

// LineText returns the text of a line without its newline. Lines out of
// range return "".
func (b *Buffer) LineText(line int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if line < 0 || line >= len(b.lineStarts) {
		return ""
	}
	return b.text[b.lineStart(line):b.lineEnd(line)]
}

// LineAt returns the line containing offset. Offsets are clamped to the
// buffer.
func (b *Buffer) LineAt(offset int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineAt(offset)
}

func (b *Buffer) lineAt(offset int) int {
	if offset < 0 {
		return 0
	}
	return sort.SearchInts(b.lineStarts, offset+1) - 1
}

// OffsetToPoint converts a byte offset to line/column.
func (b *Buffer) OffsetToPoint(offset int) Point {
	b.mu.RLock()
	defer b.mu.RUnlock()
	offset = clamp(offset, 0, len(b.text))
	line := b.lineAt(offset)
	return Point{Line: line, Column: offset - b.lineStarts[line]}
}

// PointToOffset converts line/column to a byte offset, clamping the column
// to the line.
func (b *Buffer) PointToOffset(p Point) (int, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if p.Line < 0 || p.Line >= len(b.lineStarts) {
		return 0, ErrLineOutOfRange
	}
	start := b.lineStart(p.Line)
	return start + clamp(p.Column, 0, b.lineEnd(p.Line)-start), nil
}

// Slice returns the text in [from, to), clamped to the buffer.
func (b *Buffer) Slice(from, to int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	from = clamp(from, 0, len(b.text))
	to = clamp(to, from, len(b.text))
	return b.text[from:to]
}

// Insert inserts text at offset and returns the end of the inserted text.
func (b *Buffer) Insert(offset int, text string) (int, error) {
	return b.Replace(offset, offset, text)
}

// Delete removes the text in [start, end).
func (b *Buffer) Delete(start, end int) error {
	_, err := b.Replace(start, end, "")
	return err
}

// Replace replaces [start, end) with text and returns the end of the
// replacement.
func (b *Buffer) Replace(start, end int, text string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || start > len(b.text) {
		return 0, ErrOffsetOutOfRange
	}
	if end < start || end > len(b.text) {
		return 0, ErrRangeInvalid
	}

	text = normalizeLineEndings(text)
	b.set(b.text[:start] + text + b.text[end:])
	return start + len(text), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
