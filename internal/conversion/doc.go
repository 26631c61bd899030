// Package conversion computes conversions and renders them for display.
//
// Engine wraps a units.Algebra and adds two formatting-only destination
// units: "inf" renders the result as inches with a fraction (3-1/8 in) and
// "ftf" as feet and inches (2 6-1/2 ft-in). Both convert through inches;
// they never change the arithmetic.
//
// Formatter turns a value, its units and a DisplayOptions value into the
// final text. Format is fail-soft: when the conversion cannot be performed
// it returns the original bracketed request unchanged. TryFormat exposes the
// typed error for callers that need to distinguish the two outcomes.
package conversion
