package units

import (
	"errors"
	"fmt"
)

// ErrUnsupportedUnit is the sentinel matched by every *UnsupportedUnitError.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// Errors returned by Table registration.
var (
	ErrDuplicateUnit = errors.New("unit already registered")
	ErrInvalidUnit   = errors.New("invalid unit definition")
)

// UnsupportedUnitError reports a unit the algebra cannot resolve, or a pair of
// units with no conversion path between them.
type UnsupportedUnitError struct {
	// Unit is the unit that failed to resolve. Empty when both units resolve
	// but belong to different measures.
	Unit ID

	// From and To are set for incompatible conversions.
	From ID
	To   ID

	// Reason describes the failure.
	Reason string
}

// Error implements the error interface.
func (e *UnsupportedUnitError) Error() string {
	if e.Unit != "" {
		return fmt.Sprintf("unsupported unit %q: %s", e.Unit, e.Reason)
	}
	return fmt.Sprintf("cannot convert %q to %q: %s", e.From, e.To, e.Reason)
}

// Is reports whether target is ErrUnsupportedUnit.
func (e *UnsupportedUnitError) Is(target error) bool {
	return target == ErrUnsupportedUnit
}

func unknownUnit(id ID) error {
	return &UnsupportedUnitError{Unit: id, Reason: "unknown unit"}
}

func incompatible(from, to ID, fm, tm Measure) error {
	return &UnsupportedUnitError{
		From:   from,
		To:     to,
		Reason: fmt.Sprintf("%s is not convertible to %s", fm, tm),
	}
}
