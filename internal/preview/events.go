package preview

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/suggest"
)

// handle dispatches one terminal event.
func (a *App) handle(ev tcell.Event) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(e)

	case *tcell.EventMouse:
		if e.Buttons()&tcell.Button1 != 0 {
			x, y := e.Position()
			a.click(x, y)
		}

	case *tcell.EventResize:
		a.screen.Sync()
		if a.layout() {
			a.overlay.ViewportChanged(a.editor)
		}

	case *tcell.EventInterrupt:
		switch data := e.Data().(type) {
		case settingsChanged:
			a.applySettings(data.settings)
		case quitRequest:
			a.quit = true
		}
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	a.status = ""

	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		a.quit = true
		return
	case tcell.KeyCtrlS:
		a.save()
		return
	}

	if a.popupOpen() && a.handlePopupKey(ev) {
		return
	}

	top := a.editor.Viewport().TopLine()
	switch ev.Key() {
	case tcell.KeyEscape:
		a.suggest.Dismiss()
	case tcell.KeyTab:
		mode := a.editor.ToggleMode()
		a.overlay.ModeChanged(a.editor)
		a.status = mode.String()
	case tcell.KeyLeft:
		a.editor.MoveLeft()
		a.afterMove(top)
	case tcell.KeyRight:
		a.editor.MoveRight()
		a.afterMove(top)
	case tcell.KeyUp:
		a.editor.MoveUp()
		a.afterMove(top)
	case tcell.KeyDown:
		a.editor.MoveDown()
		a.afterMove(top)
	case tcell.KeyHome:
		a.editor.MoveLineStart()
		a.afterMove(top)
	case tcell.KeyEnd:
		a.editor.MoveLineEnd()
		a.afterMove(top)
	case tcell.KeyEnter:
		a.insert("\n")
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if a.editor.Backspace() {
			a.afterEdit()
		}
	case tcell.KeyDelete:
		if a.editor.DeleteForward() {
			a.afterEdit()
		}
	case tcell.KeyRune:
		a.insert(string(ev.Rune()))
	}
}

// handlePopupKey handles keys that act on the suggestion list and reports
// whether the key was consumed.
func (a *App) handlePopupKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyUp:
		a.suggest.Prev()
	case tcell.KeyDown:
		a.suggest.Next()
	case tcell.KeyEscape:
		a.suggest.Dismiss()
	case tcell.KeyEnter, tcell.KeyTab:
		if err := a.suggest.Accept(a.editor); err != nil {
			a.fail("accept", err)
			return true
		}
		a.overlay.DocumentChanged(a.editor)
	default:
		return false
	}
	return true
}

func (a *App) insert(text string) {
	if err := a.editor.InsertText(text); err != nil {
		a.fail("insert", err)
		return
	}
	a.afterEdit()
}

// click places the caret at a screen cell. Clicking a rendered conversion
// selects its request so it can be edited.
func (a *App) click(x, y int) {
	r, ok := a.rows[y]
	if !ok {
		return
	}
	top := a.editor.Viewport().TopLine()
	switch {
	case x >= len(r.cells):
		a.editor.SetCaret(r.end)
	case r.cells[x].widget != nil:
		sel := r.cells[x].widget.Activate()
		a.editor.Select(sel.Anchor, sel.Head)
	default:
		a.editor.SetCaret(r.cells[x].offset)
	}
	a.afterMove(top)
}

func (a *App) save() {
	if a.store == nil {
		a.status = "no settings file"
		return
	}
	if err := a.store.Save(); err != nil {
		a.fail("save", err)
		return
	}
	a.status = "settings saved"
}

func (a *App) fail(op string, err error) {
	if errors.Is(err, suggest.ErrNoCandidate) {
		a.status = "no matching unit"
		return
	}
	a.logger.Warn("preview operation failed", zap.String("op", op), zap.Error(err))
	a.status = op + ": " + err.Error()
}
