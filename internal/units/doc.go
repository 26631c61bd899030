// Package units provides the unit algebra used by the conversion engine.
//
// The algebra answers three questions about a unit identifier:
//
//   - Convert: the value of a quantity expressed in another unit
//   - Possibilities: the units a quantity can be converted to
//   - Describe: the singular and plural display names of a unit
//
// Units are grouped into measures (length, mass, volume, ...). Two units can
// only be converted when they belong to the same measure. Every failure to
// resolve a unit, or to find a path between two units, is reported as an
// *UnsupportedUnitError so that callers can degrade gracefully.
//
// The built-in Table follows the identifiers used by the convert-units
// vocabulary (ft, in, mm, kg, l, C, F, ...). Additional units can be
// registered at runtime, see the luaunits package.
//
// Basic usage:
//
//	table := units.NewTable()
//	v, err := table.Convert(2, "ft", "in") // 24
//	if err != nil {
//	    var uerr *units.UnsupportedUnitError
//	    if errors.As(err, &uerr) {
//	        // unknown unit or incompatible measures
//	    }
//	}
package units
