package conversion

import (
	"errors"
	"math"
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/unitlens/internal/notation"
	"github.com/dshills/unitlens/internal/units"
)

// Formatter renders conversions as display text.
type Formatter struct {
	engine *Engine
	logger *zap.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used to report failed conversions.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Formatter) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFormatter creates a formatter over an engine.
func NewFormatter(engine *Engine, opts ...Option) *Formatter {
	f := &Formatter{
		engine: engine,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Engine returns the engine the formatter converts with.
func (f *Formatter) Engine() *Engine {
	return f.engine
}

// Format renders value converted from one unit to another. It never fails:
// when the conversion cannot be performed the original syntax is returned,
// e.g. "[5xx|yy]".
func (f *Formatter) Format(value float64, from, to units.ID, opts DisplayOptions) string {
	s, err := f.TryFormat(value, from, to, opts)
	if err != nil {
		f.logger.Debug("conversion failed",
			zap.Float64("value", value),
			zap.String("from", from),
			zap.String("to", to),
			zap.Error(err))
		return Compose(value, from, to)
	}
	return s
}

// TryFormat renders value converted from one unit to another and reports
// why it could not.
func (f *Formatter) TryFormat(value float64, from, to units.ID, opts DisplayOptions) (string, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return "", ErrNonFinite
	}
	converted, err := f.engine.Convert(value, from, to)
	if err != nil {
		return "", err
	}

	var line string
	switch ModeFor(to) {
	case DisplayFractionalInches:
		line = notation.ToFraction(converted, opts.denominator()) + " in"
	case DisplayFeetAndInches:
		line = feetAndInches(converted, opts.denominator())
	default:
		line = strconv.FormatFloat(converted, 'f', opts.precision(), 64) +
			" " + f.displayName(converted, to, opts)
	}

	if opts.ShowOriginalUnits {
		original := strconv.FormatFloat(value, 'f', -1, 64)
		return original + " " + f.displayName(value, from, opts) + " (" + line + ")", nil
	}
	return line, nil
}

// FormatToken renders a token found by the grammar. When the token cannot
// be converted its source text is returned unchanged.
func (f *Formatter) FormatToken(tok notation.Token, opts DisplayOptions) string {
	s, err := f.TryFormatToken(tok, opts)
	if err != nil {
		f.logger.Debug("conversion failed",
			zap.String("token", tok.Text),
			zap.Int("offset", tok.Start),
			zap.Error(err))
		return tok.Text
	}
	return s
}

// TryFormatToken parses the token value and renders its conversion.
// An ambiguous three-part value is accepted with its fallback reading.
// A feet-inches value such as 7-0-1/2 on a length unit is already in
// inches and converts from in.
func (f *Formatter) TryFormatToken(tok notation.Token, opts DisplayOptions) (string, error) {
	from := tok.FromUnit
	if notation.IsFeetInches(tok.RawValue, tok.FromUnit) {
		if d, err := f.engine.Describe(from); err == nil && d.Measure == units.MeasureLength {
			from = inches
		}
	}
	value, err := notation.ParseValue(tok.RawValue, tok.FromUnit)
	if err != nil {
		if !errors.Is(err, notation.ErrAmbiguousNotation) {
			return "", err
		}
		f.logger.Debug("ambiguous value notation",
			zap.String("token", tok.Text),
			zap.Float64("value", value))
	}
	return f.TryFormat(value, from, tok.ToUnit, opts)
}

// displayName returns the unit id, or its lower-cased singular or plural
// name when descriptive names are enabled. The singular is used only when
// value is exactly 1, so 1.001 renders as "1.00 feet". Describe failures fall
// back to the id.
func (f *Formatter) displayName(value float64, unit units.ID, opts DisplayOptions) string {
	if !opts.UseDescriptiveNames {
		return unit
	}
	d, err := f.engine.Describe(unit)
	if err != nil || d.Plural == "" {
		if err != nil {
			f.logger.Debug("describe failed", zap.String("unit", unit), zap.Error(err))
		}
		return unit
	}
	name := d.Plural
	if value == 1 {
		name = d.Singular
	}
	return cases.Lower(language.Und).String(name)
}

// feetAndInches renders a length in inches as feet, inches and a fraction.
// The value is rounded to the fraction resolution before it is split, so a
// remainder never renders as 12 inches.
func feetAndInches(in float64, den int) string {
	sign := ""
	if in < 0 {
		sign = "-"
		in = -in
	}
	rounded := math.Round(in*float64(den)) / float64(den)
	feet := math.Floor(rounded / 12)
	rem := rounded - feet*12

	switch {
	case feet == 0:
		if rem == 0 {
			sign = ""
		}
		return sign + notation.ToFraction(rem, den) + " in"
	case rem == 0:
		return sign + strconv.FormatFloat(feet, 'f', -1, 64) + " ft"
	default:
		return sign + strconv.FormatFloat(feet, 'f', -1, 64) + " " + notation.ToFraction(rem, den) + " ft-in"
	}
}
