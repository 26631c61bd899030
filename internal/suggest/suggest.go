// Package suggest offers destination-unit completions while a conversion
// request is being typed.
//
// The controller watches the text before the caret. When it ends in an open
// request such as "[2ft|i" whose source unit is known, a session starts and
// the compatible units matching the typed partial are offered. Selecting a
// candidate writes the unit id and closes the bracket.
package suggest

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/unitlens/internal/notation"
	"github.com/dshills/unitlens/internal/units"
)

// Errors returned by selection.
var (
	ErrNoSession   = errors.New("no active suggestion session")
	ErrNoCandidate = errors.New("no candidate selected")
)

// State is the state of the controller.
type State uint8

const (
	StateIdle State = iota
	StateAwaitingUnitQuery
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingUnitQuery:
		return "awaiting-unit-query"
	default:
		return "unknown"
	}
}

// Source supplies the units offered as completions.
// *conversion.Engine implements it.
type Source interface {
	Possibilities(from units.ID) ([]units.ID, error)
	Describe(unit units.ID) (units.Description, error)
	Resolves(unit units.ID) bool
}

// Editor is the line editing surface a selection is applied to.
// Columns are byte offsets within the line.
type Editor interface {
	Line(n int) string
	ReplaceRange(line, startCol, endCol int, text string) error
	SetCursor(line, col int) error
}

// Session is an open request being completed.
type Session struct {
	ID       string
	FromUnit units.ID

	// Query is the destination unit typed so far.
	Query string

	// Line is the line of the request; Start and End are the byte columns
	// of Query within it.
	Line  int
	Start int
	End   int
}

// Candidate is one offered destination unit.
type Candidate struct {
	// Label is the lower-cased plural name shown to the user.
	Label string

	// Value is the unit id written on selection.
	Value units.ID
}

// Controller tracks the autosuggest session for a single caret.
// It is not safe for concurrent use.
type Controller struct {
	source  Source
	grammar *notation.Grammar
	logger  *zap.Logger
	fold    cases.Caser
	lower   cases.Caser
	enabled bool

	session    *Session
	candidates []Candidate
	selected   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEnabled sets whether suggestions are offered. Defaults to true.
func WithEnabled(enabled bool) Option {
	return func(c *Controller) {
		c.enabled = enabled
	}
}

// WithGrammar overrides the grammar. Defaults to notation.Default.
func WithGrammar(g *notation.Grammar) Option {
	return func(c *Controller) {
		if g != nil {
			c.grammar = g
		}
	}
}

// NewController creates a controller.
func NewController(source Source, opts ...Option) *Controller {
	c := &Controller{
		source:  source,
		grammar: notation.Default,
		logger:  zap.NewNop(),
		fold:    cases.Fold(),
		lower:   cases.Lower(language.Und),
		enabled: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current state.
func (c *Controller) State() State {
	if c.session == nil {
		return StateIdle
	}
	return StateAwaitingUnitQuery
}

// Session returns the active session, or nil.
func (c *Controller) Session() *Session {
	return c.session
}

// Enabled reports whether suggestions are offered.
func (c *Controller) Enabled() bool {
	return c.enabled
}

// SetEnabled turns suggestions on or off. Turning them off ends any session.
func (c *Controller) SetEnabled(enabled bool) {
	c.enabled = enabled
	if !enabled {
		c.Dismiss()
	}
}

// Dismiss ends the active session.
func (c *Controller) Dismiss() {
	c.session = nil
	c.candidates = nil
	c.selected = 0
}

// Update re-evaluates the trigger after a keystroke or caret move. text is
// the content of line and caretCol the caret's byte column in it. It returns
// the active session and whether one is active.
func (c *Controller) Update(line int, text string, caretCol int) (*Session, bool) {
	if !c.enabled {
		c.Dismiss()
		return nil, false
	}

	caretCol = min(max(caretCol, 0), len(text))
	p, ok := c.grammar.MatchPrefix(text[:caretCol])
	if !ok || !c.source.Resolves(p.FromUnit) {
		c.Dismiss()
		return nil, false
	}

	prev := c.session
	s := &Session{
		FromUnit: p.FromUnit,
		Query:    p.Partial,
		Line:     line,
		Start:    p.PartialStart,
		End:      caretCol,
	}
	if prev != nil && prev.Line == s.Line && prev.Start == s.Start && prev.FromUnit == s.FromUnit {
		s.ID = prev.ID
	} else {
		s.ID = uuid.NewString()
		c.logger.Debug("suggestion session started",
			zap.String("session", s.ID),
			zap.String("from", s.FromUnit))
	}

	c.session = s
	c.candidates = c.filter(s)
	if c.selected >= len(c.candidates) || prev == nil || prev.ID != s.ID {
		c.selected = 0
	}
	return s, true
}

// filter returns the possibilities of the session's source unit whose id or
// lower-cased plural name contains the query, ignoring case.
func (c *Controller) filter(s *Session) []Candidate {
	ids, err := c.source.Possibilities(s.FromUnit)
	if err != nil {
		c.logger.Debug("no possibilities", zap.String("from", s.FromUnit), zap.Error(err))
		return nil
	}

	query := c.fold.String(s.Query)
	var out []Candidate
	for _, id := range ids {
		label := id
		if d, err := c.source.Describe(id); err == nil && d.Plural != "" {
			label = d.Plural
		}
		label = c.lower.String(label)
		if strings.Contains(c.fold.String(label), query) || strings.Contains(c.fold.String(id), query) {
			out = append(out, Candidate{Label: label, Value: id})
		}
	}
	return out
}

// Candidates returns the completions for the active session.
func (c *Controller) Candidates() []Candidate {
	return c.candidates
}

// Selected returns the highlighted candidate.
func (c *Controller) Selected() (Candidate, bool) {
	if c.selected < 0 || c.selected >= len(c.candidates) {
		return Candidate{}, false
	}
	return c.candidates[c.selected], true
}

// SelectedIndex returns the index of the highlighted candidate.
func (c *Controller) SelectedIndex() int {
	return c.selected
}

// Next highlights the next candidate, wrapping around.
func (c *Controller) Next() {
	c.move(1)
}

// Prev highlights the previous candidate, wrapping around.
func (c *Controller) Prev() {
	c.move(-1)
}

func (c *Controller) move(delta int) {
	n := len(c.candidates)
	if n == 0 {
		return
	}
	c.selected = ((c.selected+delta)%n + n) % n
}

// Accept selects the highlighted candidate.
func (c *Controller) Accept(ed Editor) error {
	if c.session == nil {
		return ErrNoSession
	}
	cand, ok := c.Selected()
	if !ok {
		return ErrNoCandidate
	}
	return c.Select(ed, cand)
}

// Select writes cand over the session's query and closes the request: the
// caret steps over an existing "]" or a "]" is inserted. The session ends.
func (c *Controller) Select(ed Editor, cand Candidate) error {
	s := c.session
	if s == nil {
		return ErrNoSession
	}
	c.Dismiss()

	if err := ed.ReplaceRange(s.Line, s.Start, s.End, cand.Value); err != nil {
		return err
	}

	col := s.Start + len(cand.Value)
	if line := ed.Line(s.Line); col >= len(line) || line[col] != ']' {
		if err := ed.ReplaceRange(s.Line, col, col, "]"); err != nil {
			return err
		}
	}
	return ed.SetCursor(s.Line, col+1)
}
