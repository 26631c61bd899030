package document

import (
	"sync"

	"github.com/dshills/unitlens/internal/overlay"
)

// Viewport is the window of lines currently on screen.
type Viewport struct {
	mu sync.RWMutex

	topLine int
	width   int
	height  int

	// margin keeps the caret this many lines from the top and bottom edges.
	margin int
}

// NewViewport creates a viewport with the given size in cells.
// Width and height are clamped to a minimum of 1.
func NewViewport(width, height int) *Viewport {
	return &Viewport{
		width:  max(width, 1),
		height: max(height, 1),
		margin: 2,
	}
}

// Width returns the viewport width.
func (v *Viewport) Width() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.width
}

// Height returns the viewport height.
func (v *Viewport) Height() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.height
}

// TopLine returns the first visible line.
func (v *Viewport) TopLine() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.topLine
}

// SetMargin sets the scroll margin.
func (v *Viewport) SetMargin(lines int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.margin = max(lines, 0)
}

// Resize updates the viewport size and reports whether it changed.
func (v *Viewport) Resize(width, height int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	width, height = max(width, 1), max(height, 1)
	if width == v.width && height == v.height {
		return false
	}
	v.width, v.height = width, height
	return true
}

// ScrollTo makes line the first visible line, clamped to [0, lineCount).
// Reports whether the viewport moved.
func (v *Viewport) ScrollTo(line, lineCount int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTo(line, lineCount)
}

func (v *Viewport) scrollTo(line, lineCount int) bool {
	line = clamp(line, 0, max(lineCount-1, 0))
	if line == v.topLine {
		return false
	}
	v.topLine = line
	return true
}

// EnsureVisible scrolls the minimum amount needed to keep line inside the
// viewport, honouring the margin. Reports whether the viewport moved.
func (v *Viewport) EnsureVisible(line, lineCount int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	margin := min(v.margin, (v.height-1)/2)
	top := v.topLine
	if line-margin < top {
		top = line - margin
	}
	if bottom := top + v.height - 1; line+margin > bottom {
		top = line + margin - v.height + 1
	}
	return v.scrollTo(top, lineCount)
}

// VisibleLines returns the first and last visible line of a buffer.
func (v *Viewport) VisibleLines(b *Buffer) (first, last int) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	count := b.LineCount()
	first = min(v.topLine, count-1)
	last = min(v.topLine+v.height-1, count-1)
	return first, last
}

// VisibleRanges returns the byte range of b currently on screen.
func (v *Viewport) VisibleRanges(b *Buffer) []overlay.TextRange {
	first, last := v.VisibleLines(b)
	return []overlay.TextRange{{From: b.LineStart(first), To: b.LineEnd(last)}}
}
