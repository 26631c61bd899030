package conversion

import (
	"fmt"
	"math"
	"strconv"

	"github.com/dshills/unitlens/internal/units"
)

// Formatting-only destination units.
const (
	FractionalInches units.ID = "inf"
	FeetAndInches    units.ID = "ftf"
)

// inches is the real unit both pseudo-units convert through.
const inches units.ID = "in"

// DisplayMode selects how a destination unit is rendered.
type DisplayMode uint8

const (
	// DisplayDecimal renders a rounded decimal and a unit name.
	DisplayDecimal DisplayMode = iota

	// DisplayFractionalInches renders inches with a fraction.
	DisplayFractionalInches

	// DisplayFeetAndInches renders feet and inches with a fraction.
	DisplayFeetAndInches
)

// String returns the string representation of the display mode.
func (m DisplayMode) String() string {
	switch m {
	case DisplayDecimal:
		return "decimal"
	case DisplayFractionalInches:
		return "fractional-inches"
	case DisplayFeetAndInches:
		return "feet-and-inches"
	default:
		return "unknown"
	}
}

// ModeFor returns the display mode for a destination unit.
func ModeFor(to units.ID) DisplayMode {
	switch to {
	case FractionalInches:
		return DisplayFractionalInches
	case FeetAndInches:
		return DisplayFeetAndInches
	default:
		return DisplayDecimal
	}
}

// IsPseudoUnit reports whether id is one of the formatting-only units.
func IsPseudoUnit(id units.ID) bool {
	return ModeFor(id) != DisplayDecimal
}

// Engine performs conversions through a unit algebra.
type Engine struct {
	algebra units.Algebra
}

// NewEngine creates an engine over the given algebra.
func NewEngine(algebra units.Algebra) *Engine {
	return &Engine{algebra: algebra}
}

// NewDefaultEngine creates an engine over the built-in unit table, with the
// pseudo-unit ids reserved. The table is returned so callers can register
// additional units.
func NewDefaultEngine() (*Engine, *units.Table) {
	table := units.NewTable(units.WithReserved(FractionalInches, FeetAndInches))
	return NewEngine(table), table
}

// Convert converts value between units. A pseudo-unit destination converts
// to inches; the pseudo-unit only affects formatting.
func (e *Engine) Convert(value float64, from, to units.ID) (float64, error) {
	target := to
	if IsPseudoUnit(to) {
		target = inches
	}
	v, err := e.algebra.Convert(value, from, target)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v %s to %s", ErrNonFinite, value, from, to)
	}
	return v, nil
}

// Possibilities returns the destination units for from. Units that convert
// to inches also offer the two pseudo-units.
func (e *Engine) Possibilities(from units.ID) ([]units.ID, error) {
	ids, err := e.algebra.Possibilities(from)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if id == inches {
			return append(ids, FractionalInches, FeetAndInches), nil
		}
	}
	return ids, nil
}

// Describe returns the display names of a unit, pseudo-units included.
func (e *Engine) Describe(unit units.ID) (units.Description, error) {
	switch unit {
	case FractionalInches:
		return units.Description{
			ID:       unit,
			Measure:  units.MeasureLength,
			System:   units.SystemImperial,
			Singular: "Fractional Inch",
			Plural:   "Fractional Inches",
		}, nil
	case FeetAndInches:
		return units.Description{
			ID:       unit,
			Measure:  units.MeasureLength,
			System:   units.SystemImperial,
			Singular: "Foot and Inch",
			Plural:   "Feet and Inches",
		}, nil
	}
	return e.algebra.Describe(unit)
}

// Resolves reports whether unit is a real unit of the algebra, usable as a
// source unit.
func (e *Engine) Resolves(unit units.ID) bool {
	if IsPseudoUnit(unit) {
		return false
	}
	_, err := e.algebra.Describe(unit)
	return err == nil
}

// Compose builds the conversion syntax for a value, e.g. "[2ft|in]".
func Compose(value float64, from, to units.ID) string {
	return "[" + strconv.FormatFloat(value, 'f', -1, 64) + from + "|" + to + "]"
}
