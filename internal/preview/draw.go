package preview

import (
	"fmt"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/unitlens/internal/overlay"
)

// TabWidth is the number of columns a tab occupies.
const TabWidth = 4

// Styles is the preview color scheme.
type Styles struct {
	Text          tcell.Style
	Widget        tcell.Style
	Selection     tcell.Style
	Status        tcell.Style
	Popup         tcell.Style
	PopupSelected tcell.Style
}

// DefaultStyles returns the default color scheme.
func DefaultStyles() Styles {
	popup := tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	return Styles{
		Text:          tcell.StyleDefault,
		Widget:        tcell.StyleDefault.Foreground(tcell.ColorTeal).Underline(true),
		Selection:     tcell.StyleDefault.Reverse(true),
		Status:        tcell.StyleDefault.Reverse(true),
		Popup:         popup,
		PopupSelected: popup.Reverse(true),
	}
}

// cell records what a screen column shows.
type cell struct {
	offset int
	widget *overlay.Widget
}

// row is one drawn document line.
type row struct {
	cells []cell
	end   int
}

// draw repaints the whole screen.
func (a *App) draw() {
	a.screen.Clear()
	w, h := a.screen.Size()
	clear(a.rows)

	buf := a.editor.Buffer()
	caret := a.editor.Caret()
	sel := a.editor.Selection()
	decisions := a.overlay.Decisions()
	caretX, caretY := -1, -1

	first, last := a.editor.Viewport().VisibleLines(buf)
	for line := first; line <= last && line-first < h-1; line++ {
		y := line - first
		x, r := a.drawLine(y, w, buf.LineStart(line), buf.LineText(line), decisions.SpansForLine(line), caret, sel)
		a.rows[y] = r
		if x >= 0 {
			caretX, caretY = x, y
		}
	}

	if caretX >= 0 {
		a.screen.ShowCursor(min(caretX, w-1), caretY)
		if a.popupOpen() {
			a.drawPopup(caretX, caretY, w, h)
		}
	} else {
		a.screen.HideCursor()
	}

	a.drawStatus(w, h, decisions)
	a.screen.Show()
}

// drawLine draws one line, substituting rendered requests and highlighting
// selected raw text, and returns the caret column, or -1 when the caret is
// not on the line.
func (a *App) drawLine(y, w, start int, text string, spans []overlay.Replacement, caret int, sel overlay.TextRange) (int, row) {
	r := row{end: start + len(text)}
	caretX := -1
	x := 0

	put := func(ch rune, style tcell.Style, c cell) {
		width := runewidth.RuneWidth(ch)
		if width < 1 {
			width = 1
		}
		if x+width <= w {
			a.screen.SetContent(x, y, ch, nil, style)
		}
		for j := 0; j < width; j++ {
			r.cells = append(r.cells, c)
		}
		x += width
	}

	for i := 0; i < len(text); {
		off := start + i
		if off == caret {
			caretX = x
		}
		if len(spans) > 0 && spans[0].Start == off {
			widget := spans[0].Widget
			for _, ch := range widget.Text {
				put(ch, a.styles.Widget, cell{offset: off, widget: &widget})
			}
			i += spans[0].End - spans[0].Start
			spans = spans[1:]
			continue
		}

		style := a.styles.Text
		if sel.Contains(off) {
			style = a.styles.Selection
		}
		ch, size := utf8.DecodeRuneInString(text[i:])
		if ch == '\t' {
			for j := 0; j < TabWidth; j++ {
				put(' ', style, cell{offset: off})
			}
		} else {
			put(ch, style, cell{offset: off})
		}
		i += size
	}
	if caret == r.end {
		caretX = x
	}
	return caretX, r
}

// drawPopup draws the suggestion list below the caret, or above it when
// there is no room.
func (a *App) drawPopup(caretX, caretY, w, h int) {
	cands := a.suggest.Candidates()
	sel := a.suggest.SelectedIndex()

	from := 0
	if sel >= MaxPopupItems {
		from = sel - MaxPopupItems + 1
	}
	to := min(from+MaxPopupItems, len(cands))

	items := make([]string, 0, to-from)
	width := 0
	for _, c := range cands[from:to] {
		item := fmt.Sprintf(" %s (%s) ", c.Label, c.Value)
		items = append(items, item)
		width = max(width, runewidth.StringWidth(item))
	}

	x := caretX
	if x+width > w {
		x = max(0, w-width)
	}
	y := caretY + 1
	if y+len(items) > h-1 && caretY-len(items) >= 0 {
		y = caretY - len(items)
	}

	for i, item := range items {
		style := a.styles.Popup
		if from+i == sel {
			style = a.styles.PopupSelected
		}
		a.drawText(x, y+i, w, runewidth.FillRight(item, width), style)
	}
}

func (a *App) drawStatus(w, h int, decisions overlay.DecisionSet) {
	left := fmt.Sprintf(" %s | %s | %d rendered", a.editor.Mode(), a.overlay.State(), decisions.Rendered())
	if s := a.suggest.Session(); s != nil {
		left += fmt.Sprintf(" | %s to %q", s.FromUnit, s.Query)
	}
	line := left
	if a.status != "" {
		line = left + " | " + a.status
	}
	a.drawText(0, h-1, w, runewidth.FillRight(runewidth.Truncate(line, w, ""), w), a.styles.Status)
}

// drawText draws s from x, clipped to the screen width.
func (a *App) drawText(x, y, w int, s string, style tcell.Style) {
	for _, ch := range s {
		width := max(runewidth.RuneWidth(ch), 1)
		if x+width > w {
			return
		}
		a.screen.SetContent(x, y, ch, nil, style)
		x += width
	}
}
