package units

import (
	"fmt"
	"math"
	"sync"
)

// Table is an Algebra backed by an in-memory list of units.
// All methods are safe for concurrent use.
type Table struct {
	mu       sync.RWMutex
	units    map[ID]Unit
	order    []ID
	measures []Measure
	reserved map[ID]bool
}

// TableOption configures a Table.
type TableOption func(*Table)

// WithReserved marks identifiers that can never be registered.
// The conversion engine reserves its formatting-only pseudo-units this way.
func WithReserved(ids ...ID) TableOption {
	return func(t *Table) {
		for _, id := range ids {
			t.reserved[id] = true
		}
	}
}

// WithoutBuiltins creates an empty table.
func WithoutBuiltins() TableOption {
	return func(t *Table) {
		t.units = make(map[ID]Unit)
		t.order = nil
		t.measures = nil
	}
}

// NewTable creates a table preloaded with the built-in units.
func NewTable(opts ...TableOption) *Table {
	t := &Table{
		units:    make(map[ID]Unit),
		reserved: make(map[ID]bool),
	}
	for _, u := range builtinUnits() {
		t.add(u)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register adds a unit to the table. A measure that does not exist yet is
// created, with the first registered unit usually acting as its base.
func (t *Table) Register(u Unit) error {
	if !ValidID(u.ID) {
		return fmt.Errorf("%w: id %q contains characters outside [A-Za-z0-9-/]", ErrInvalidUnit, u.ID)
	}
	if u.Measure == "" {
		return fmt.Errorf("%w: unit %q has no measure", ErrInvalidUnit, u.ID)
	}
	if u.Factor <= 0 || math.IsNaN(u.Factor) || math.IsInf(u.Factor, 0) {
		return fmt.Errorf("%w: unit %q has factor %v", ErrInvalidUnit, u.ID, u.Factor)
	}
	if math.IsNaN(u.Offset) || math.IsInf(u.Offset, 0) {
		return fmt.Errorf("%w: unit %q has offset %v", ErrInvalidUnit, u.ID, u.Offset)
	}
	if u.Singular == "" {
		u.Singular = u.ID
	}
	if u.Plural == "" {
		u.Plural = u.Singular
	}
	if u.System == "" {
		u.System = SystemOther
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.reserved[u.ID] {
		return fmt.Errorf("%w: %q is reserved", ErrInvalidUnit, u.ID)
	}
	if _, ok := t.units[u.ID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateUnit, u.ID)
	}
	t.add(u)
	return nil
}

func (t *Table) add(u Unit) {
	if !t.hasMeasure(u.Measure) {
		t.measures = append(t.measures, u.Measure)
	}
	t.units[u.ID] = u
	t.order = append(t.order, u.ID)
}

func (t *Table) hasMeasure(m Measure) bool {
	for _, existing := range t.measures {
		if existing == m {
			return true
		}
	}
	return false
}

// Lookup returns the unit with the given id.
func (t *Table) Lookup(id ID) (Unit, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	u, ok := t.units[id]
	return u, ok
}

// Convert implements Algebra.
func (t *Table) Convert(value float64, from, to ID) (float64, error) {
	t.mu.RLock()
	fu, fok := t.units[from]
	tu, tok := t.units[to]
	t.mu.RUnlock()

	if !fok {
		return 0, unknownUnit(from)
	}
	if !tok {
		return 0, unknownUnit(to)
	}
	if fu.Measure != tu.Measure {
		return 0, incompatible(from, to, fu.Measure, tu.Measure)
	}
	if from == to {
		return value, nil
	}
	return tu.fromBase(fu.toBase(value)), nil
}

// Possibilities implements Algebra. Units are returned in registration order.
func (t *Table) Possibilities(from ID) ([]ID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	fu, ok := t.units[from]
	if !ok {
		return nil, unknownUnit(from)
	}

	var ids []ID
	for _, id := range t.order {
		if t.units[id].Measure == fu.Measure {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Describe implements Algebra.
func (t *Table) Describe(unit ID) (Description, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	u, ok := t.units[unit]
	if !ok {
		return Description{}, unknownUnit(unit)
	}
	return u.Description(), nil
}

// Vocabulary returns every registered unit id in registration order.
func (t *Table) Vocabulary() []ID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]ID, len(t.order))
	copy(ids, t.order)
	return ids
}

// Measures returns the known measures in the order they were first seen.
func (t *Table) Measures() []Measure {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ms := make([]Measure, len(t.measures))
	copy(ms, t.measures)
	return ms
}
