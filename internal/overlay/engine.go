package overlay

import (
	"sort"

	"go.uber.org/zap"

	"github.com/dshills/unitlens/internal/conversion"
	"github.com/dshills/unitlens/internal/notation"
)

// TokenFormatter renders a token or reports why it cannot.
// *conversion.Formatter implements it.
type TokenFormatter interface {
	TryFormatToken(tok notation.Token, opts conversion.DisplayOptions) (string, error)
}

// Settings are the settings the engine reacts to.
type Settings struct {
	// LivePreview enables replacements in live-preview mode.
	LivePreview bool

	Display conversion.DisplayOptions
}

// DefaultSettings returns the default overlay settings.
func DefaultSettings() Settings {
	return Settings{
		LivePreview: true,
		Display:     conversion.DefaultDisplayOptions(),
	}
}

// Engine derives the overlay of a view and keeps it current as the view
// changes. It is not safe for concurrent use; hosts deliver events from a
// single goroutine.
type Engine struct {
	scanner   TextScanner
	formatter TokenFormatter
	settings  Settings
	logger    *zap.Logger

	state     State
	current   DecisionSet
	caretLine int
	rebuilt   bool
	rebuilds  int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithScanner overrides the scanner. Defaults to the notation grammar.
func WithScanner(s TextScanner) Option {
	return func(e *Engine) {
		if s != nil {
			e.scanner = s
		}
	}
}

// WithSettings sets the initial settings.
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		e.settings = s
	}
}

// NewEngine creates an overlay engine.
func NewEngine(formatter TokenFormatter, opts ...Option) *Engine {
	e := &Engine{
		scanner:   GrammarScanner{Grammar: notation.Default},
		formatter: formatter,
		settings:  DefaultSettings(),
		logger:    zap.NewNop(),
		state:     StateSource,
		caretLine: -1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current state.
func (e *Engine) State() State {
	return e.state
}

// Settings returns the current settings.
func (e *Engine) Settings() Settings {
	return e.settings
}

// Decisions returns the result of the last rebuild.
func (e *Engine) Decisions() DecisionSet {
	return e.current
}

// Rebuilds returns how many rebuilds have run.
func (e *Engine) Rebuilds() int {
	return e.rebuilds
}

// stateFor computes the state for a mode under the current settings.
func (e *Engine) stateFor(mode Mode) State {
	switch {
	case mode != ModeLivePreview:
		return StateSource
	case !e.settings.LivePreview:
		return StateLivePreviewDisabled
	default:
		return StateLivePreviewActive
	}
}

// Rebuild derives a fresh decision set for v and makes it current.
func (e *Engine) Rebuild(v View) DecisionSet {
	e.state = e.stateFor(v.Mode())
	e.rebuilds++
	e.rebuilt = true

	if !e.state.Active() {
		e.caretLine = -1
		e.current = DecisionSet{}
		return e.current
	}

	e.caretLine = v.LineAt(v.Caret())

	var set DecisionSet
	for _, r := range mergeRanges(v.VisibleRanges()) {
		for _, tok := range e.scanner.Scan(v.Slice(r.From, r.To), r.From) {
			line := v.LineAt(tok.Start)
			d := TokenDecision{Token: tok, Line: line, Decision: Suppress}

			if line == e.caretLine {
				d.Reason = ReasonCaretLine
				set.Decisions = append(set.Decisions, d)
				continue
			}

			text, err := e.formatter.TryFormatToken(tok, e.settings.Display)
			if err != nil {
				e.logger.Debug("suppressing request",
					zap.String("token", tok.Text),
					zap.Int("offset", tok.Start),
					zap.Error(err))
				d.Reason = ReasonConversionFailed
				set.Decisions = append(set.Decisions, d)
				continue
			}

			d.Decision = Render
			set.Decisions = append(set.Decisions, d)
			set.Replacements = append(set.Replacements, Replacement{
				Start:  tok.Start,
				End:    tok.End,
				Line:   line,
				Widget: Widget{Text: text, Token: tok},
			})
		}
	}

	e.current = set
	return set
}

// refresh rebuilds unless the engine was and stays inactive, in which case
// the empty overlay is already current.
func (e *Engine) refresh(v View) bool {
	if e.rebuilt && !e.state.Active() && !e.stateFor(v.Mode()).Active() {
		e.state = e.stateFor(v.Mode())
		return false
	}
	e.Rebuild(v)
	return true
}

// DocumentChanged handles an edit of the document.
func (e *Engine) DocumentChanged(v View) bool {
	return e.refresh(v)
}

// SelectionChanged handles a caret move. Moves within the same line leave
// every decision as it was and do not rebuild.
func (e *Engine) SelectionChanged(v View) bool {
	if e.rebuilt && e.state.Active() && e.stateFor(v.Mode()).Active() &&
		v.LineAt(v.Caret()) == e.caretLine {
		return false
	}
	return e.refresh(v)
}

// ViewportChanged handles a scroll or resize.
func (e *Engine) ViewportChanged(v View) bool {
	return e.refresh(v)
}

// ModeChanged handles a switch between source and live-preview modes.
func (e *Engine) ModeChanged(v View) bool {
	if e.rebuilt && e.stateFor(v.Mode()) == e.state {
		return false
	}
	e.Rebuild(v)
	return true
}

// SettingsChanged applies new settings.
func (e *Engine) SettingsChanged(v View, s Settings) bool {
	e.settings = s
	return e.refresh(v)
}

// mergeRanges sorts ranges and merges the ones that overlap or touch, so a
// token is never scanned twice. Empty ranges are dropped.
func mergeRanges(ranges []TextRange) []TextRange {
	if len(ranges) == 0 {
		return nil
	}
	sorted := make([]TextRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].From < sorted[j].From
	})

	var merged []TextRange
	for _, r := range sorted {
		if n := len(merged); n > 0 && r.From <= merged[n-1].To {
			if r.To > merged[n-1].To {
				merged[n-1].To = r.To
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}
