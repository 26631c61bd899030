package notation

import (
	"errors"
	"fmt"
)

// Sentinel errors for value parsing.
var (
	// ErrMalformedNumber indicates a value segment that no supported
	// notation can parse.
	ErrMalformedNumber = errors.New("malformed number")

	// ErrAmbiguousNotation indicates a three-part value whose unit is
	// neither foot- nor inch-flavored. A best-effort value is still produced.
	ErrAmbiguousNotation = errors.New("ambiguous notation")
)

// MalformedNumberError describes a value segment that failed to parse.
type MalformedNumberError struct {
	// Notation is the text that failed to parse.
	Notation string
	// Err is the underlying strconv error, if any.
	Err error
}

// Error implements the error interface.
func (e *MalformedNumberError) Error() string {
	return fmt.Sprintf("malformed number %q", e.Notation)
}

// Unwrap returns the underlying error.
func (e *MalformedNumberError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrMalformedNumber.
func (e *MalformedNumberError) Is(target error) bool {
	return target == ErrMalformedNumber
}

// AmbiguousNotationError reports the fallback interpretation of a
// three-part value whose unit is not foot- or inch-flavored.
type AmbiguousNotationError struct {
	Notation string
	Unit     string
	// Value is the deterministic fallback value that was returned.
	Value float64
}

// Error implements the error interface.
func (e *AmbiguousNotationError) Error() string {
	return fmt.Sprintf("ambiguous notation %q for unit %q, read as %v", e.Notation, e.Unit, e.Value)
}

// Is reports whether target is ErrAmbiguousNotation.
func (e *AmbiguousNotationError) Is(target error) bool {
	return target == ErrAmbiguousNotation
}
