package units

import "regexp"

// ID identifies a unit, e.g. "ft" or "km/h".
type ID = string

// Measure is a dimension category. Only units of the same measure convert.
type Measure string

// Built-in measures.
const (
	MeasureLength      Measure = "length"
	MeasureArea        Measure = "area"
	MeasureMass        Measure = "mass"
	MeasureVolume      Measure = "volume"
	MeasureTemperature Measure = "temperature"
	MeasureTime        Measure = "time"
	MeasureSpeed       Measure = "speed"
	MeasureDigital     Measure = "digital"
)

// System is the measurement system a unit belongs to.
type System string

// Measurement systems.
const (
	SystemMetric   System = "metric"
	SystemImperial System = "imperial"
	SystemOther    System = "other"
)

// Description holds the display names of a unit.
type Description struct {
	ID       ID
	Measure  Measure
	System   System
	Singular string
	Plural   string
}

// Unit is a single entry of the algebra.
//
// A value v in this unit equals v*Factor + Offset in the base unit of its
// measure. Offset is zero for every measure except temperature.
type Unit struct {
	ID       ID
	Measure  Measure
	System   System
	Singular string
	Plural   string
	Factor   float64
	Offset   float64
}

// Description returns the display names of the unit.
func (u Unit) Description() Description {
	return Description{
		ID:       u.ID,
		Measure:  u.Measure,
		System:   u.System,
		Singular: u.Singular,
		Plural:   u.Plural,
	}
}

func (u Unit) toBase(v float64) float64 {
	return v*u.Factor + u.Offset
}

func (u Unit) fromBase(v float64) float64 {
	return (v - u.Offset) / u.Factor
}

// Algebra is the unit algebra consumed by the conversion engine.
type Algebra interface {
	// Convert converts value from one unit to another.
	Convert(value float64, from, to ID) (float64, error)

	// Possibilities returns every unit the given unit converts to,
	// including itself.
	Possibilities(from ID) ([]ID, error)

	// Describe returns the display names of a unit.
	Describe(unit ID) (Description, error)
}

// validID matches the unit charset accepted by the conversion syntax.
var validID = regexp.MustCompile(`^[A-Za-z0-9\-/]+$`)

// ValidID reports whether id uses only characters the conversion syntax
// accepts in a unit position.
func ValidID(id ID) bool {
	return validID.MatchString(id)
}
