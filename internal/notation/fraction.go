package notation

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultDenominator is the fraction resolution used when none is given.
const DefaultDenominator = 32

var decimalPattern = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d*)?|\.\d+)$`)

// leadingDecimal matches the longest decimal prefix of a string.
var leadingDecimal = regexp.MustCompile(`^[+-]?(?:\d+(?:\.\d+)?|\.\d+)`)

// ParseDecimal parses a plain decimal number. Exponents, hex, NaN and
// infinities are rejected.
func ParseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, &MalformedNumberError{Notation: s}
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &MalformedNumberError{Notation: s, Err: err}
	}
	return v, nil
}

// ParseValue converts a value segment into a number.
//
// Supported notations:
//
//	"2.5"      plain decimal
//	"1-1/2"    whole and fraction, 1.5
//	"7-0-1/2"  feet, inches and fraction, in inches: 84.5
//
// The three-part form is only defined for foot- or inch-flavored units.
// For any other unit the hyphens are read as decimal points and the longest
// valid decimal prefix is used; the value is returned together with an
// *AmbiguousNotationError so callers can decide whether to accept it.
func ParseValue(notation, unit string) (float64, error) {
	if !strings.Contains(notation, "-") {
		return ParseDecimal(notation)
	}

	parts := strings.Split(notation, "-")
	switch {
	case len(parts) == 2:
		whole, err := ParseDecimal(parts[0])
		if err != nil {
			return 0, &MalformedNumberError{Notation: notation, Err: err}
		}
		frac, err := evaluateFraction(parts[1])
		if err != nil {
			return 0, &MalformedNumberError{Notation: notation, Err: err}
		}
		return whole + frac, nil

	case len(parts) == 3 && isFootOrInch(unit):
		feet, err := ParseDecimal(parts[0])
		if err != nil {
			return 0, &MalformedNumberError{Notation: notation, Err: err}
		}
		inches, err := ParseDecimal(parts[1])
		if err != nil {
			return 0, &MalformedNumberError{Notation: notation, Err: err}
		}
		frac, err := evaluateFraction(parts[2])
		if err != nil {
			return 0, &MalformedNumberError{Notation: notation, Err: err}
		}
		return feet*12 + inches + frac, nil
	}

	dotted := strings.ReplaceAll(notation, "-", ".")
	prefix := leadingDecimal.FindString(dotted)
	if prefix == "" {
		return 0, &MalformedNumberError{Notation: notation}
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, &MalformedNumberError{Notation: notation, Err: err}
	}
	return v, &AmbiguousNotationError{Notation: notation, Unit: unit, Value: v}
}

// IsFeetInches reports whether ParseValue reads notation as feet, inches
// and fraction, returning a value in inches.
func IsFeetInches(notation, unit string) bool {
	return strings.Count(notation, "-") == 2 && isFootOrInch(unit)
}

func isFootOrInch(unit string) bool {
	u := strings.ToLower(unit)
	return strings.Contains(u, "ft") || strings.Contains(u, "in")
}

// evaluateFraction evaluates "N/D" or a plain decimal. A fraction with a
// non-numeric side or a zero denominator evaluates to 0.
func evaluateFraction(s string) (float64, error) {
	num, den, ok := strings.Cut(s, "/")
	if !ok {
		return ParseDecimal(s)
	}
	n, err := ParseDecimal(num)
	if err != nil {
		return 0, nil
	}
	d, err := ParseDecimal(den)
	if err != nil || d == 0 {
		return 0, nil
	}
	return n / d, nil
}

// GCD returns the greatest common divisor using Euclid's algorithm.
// GCD(0, b) is b.
func GCD(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ToFraction renders a decimal as a whole number and a reduced fraction
// whose denominator divides maxDenominator: 1.5 -> "1-1/2", 0.5 -> "1/2",
// 2 -> "2". The fractional part is rounded to the nearest 1/maxDenominator.
func ToFraction(decimal float64, maxDenominator int) string {
	if maxDenominator <= 0 {
		maxDenominator = DefaultDenominator
	}
	if math.IsNaN(decimal) || math.IsInf(decimal, 0) {
		return strconv.FormatFloat(decimal, 'f', -1, 64)
	}
	if decimal == math.Trunc(decimal) {
		return formatWhole(decimal)
	}

	sign := ""
	if decimal < 0 {
		sign = "-"
		decimal = -decimal
	}

	whole := math.Floor(decimal)
	den := int64(maxDenominator)
	num := int64(math.Round((decimal - whole) * float64(den)))
	if num == den {
		whole++
		num = 0
	}

	g := GCD(num, den)
	num /= g
	den /= g

	switch {
	case num == 0:
		if whole == 0 {
			return "0"
		}
		return sign + formatWhole(whole)
	case whole == 0:
		return fmt.Sprintf("%s%d/%d", sign, num, den)
	default:
		return fmt.Sprintf("%s%s-%d/%d", sign, formatWhole(whole), num, den)
	}
}

func formatWhole(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
