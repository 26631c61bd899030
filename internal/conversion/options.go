package conversion

import "github.com/dshills/unitlens/internal/notation"

// Display defaults.
const (
	DefaultPrecision = 2
	MaxPrecision     = 12
)

// DisplayOptions controls how a converted value is rendered.
// It is passed by value into every call and never mutated.
type DisplayOptions struct {
	// UseDescriptiveNames renders "inches" instead of "in".
	UseDescriptiveNames bool

	// ShowOriginalUnits renders "2 ft (24.00 in)" instead of "24.00 in".
	ShowOriginalUnits bool

	// Precision is the number of decimals for ordinary units.
	Precision int

	// FractionDenominator is the resolution of the inf and ftf formats.
	FractionDenominator int
}

// DefaultDisplayOptions returns the defaults: raw unit ids, no original
// units, two decimals and 1/32 fractions.
func DefaultDisplayOptions() DisplayOptions {
	return DisplayOptions{
		Precision:           DefaultPrecision,
		FractionDenominator: notation.DefaultDenominator,
	}
}

func (o DisplayOptions) precision() int {
	switch {
	case o.Precision < 0:
		return 0
	case o.Precision > MaxPrecision:
		return MaxPrecision
	}
	return o.Precision
}

func (o DisplayOptions) denominator() int {
	if o.FractionDenominator <= 0 {
		return notation.DefaultDenominator
	}
	return o.FractionDenominator
}
