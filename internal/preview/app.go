// Package preview is a terminal editor that shows conversion requests the
// way a live-preview host would: every request off the caret line is drawn
// as its converted text, and typing an open request pops up unit
// suggestions.
package preview

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/config"
	"github.com/dshills/unitlens/internal/document"
	"github.com/dshills/unitlens/internal/overlay"
	"github.com/dshills/unitlens/internal/suggest"
)

// MaxPopupItems is the number of suggestions shown at once.
const MaxPopupItems = 8

// settingsChanged is posted to the event loop by the store observer.
type settingsChanged struct {
	settings config.Settings
}

// quitRequest is posted when the run context ends.
type quitRequest struct{}

// App is the preview editor.
type App struct {
	screen  tcell.Screen
	editor  *document.Editor
	overlay *overlay.Engine
	suggest *suggest.Controller
	store   *config.Store
	logger  *zap.Logger
	styles  Styles

	// rows maps each drawn text row to its cells, for mouse hits.
	rows   map[int]row
	status string
	quit   bool
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the app logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithStore follows settings changes from store and enables saving with
// Ctrl-S.
func WithStore(store *config.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

// WithStyles sets the color scheme.
func WithStyles(s Styles) Option {
	return func(a *App) {
		a.styles = s
	}
}

// New creates an app drawing ed on screen.
func New(screen tcell.Screen, ed *document.Editor, ov *overlay.Engine, sc *suggest.Controller, opts ...Option) *App {
	a := &App{
		screen:  screen,
		editor:  ed,
		overlay: ov,
		suggest: sc,
		logger:  zap.NewNop(),
		styles:  DefaultStyles(),
		rows:    make(map[int]row),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run initializes the screen and processes events until the user quits or
// ctx is done.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer a.screen.Fini()
	a.screen.EnableMouse()

	if a.store != nil {
		sub := a.store.Subscribe(func(c config.Change) {
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(settingsChanged{settings: c.New}))
		})
		defer sub.Unsubscribe()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = a.screen.PostEvent(tcell.NewEventInterrupt(quitRequest{}))
		case <-done:
		}
	}()

	a.layout()
	a.overlay.Rebuild(a.editor)
	a.draw()

	for !a.quit {
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		a.handle(ev)
		if !a.quit {
			a.draw()
		}
	}
	a.logger.Debug("preview closed")
	return nil
}

// layout sizes the viewport to the screen, leaving a status row.
func (a *App) layout() bool {
	w, h := a.screen.Size()
	return a.editor.Viewport().Resize(w, max(h-1, 1))
}

// applySettings pushes new settings to the engines.
func (a *App) applySettings(s config.Settings) {
	a.overlay.SettingsChanged(a.editor, s.OverlaySettings())
	a.suggest.SetEnabled(s.IsAutosuggestEnabled)
	a.status = "settings reloaded"
}

// afterEdit notifies the engines of a document change.
func (a *App) afterEdit() {
	a.overlay.DocumentChanged(a.editor)
	a.updateSuggest()
}

// afterMove notifies the engines of a caret move that may have scrolled.
func (a *App) afterMove(top int) {
	if a.editor.Viewport().TopLine() != top {
		a.overlay.ViewportChanged(a.editor)
	} else {
		a.overlay.SelectionChanged(a.editor)
	}
	a.updateSuggest()
}

func (a *App) updateSuggest() {
	p := a.editor.CaretPoint()
	a.suggest.Update(p.Line, a.editor.Line(p.Line), p.Column)
}

// popupOpen reports whether suggestions are on screen.
func (a *App) popupOpen() bool {
	return a.suggest.State() == suggest.StateAwaitingUnitQuery && len(a.suggest.Candidates()) > 0
}
