package units

// Base units per measure: m, m2, kg, l, K, s, m/s, b.
func builtinUnits() []Unit {
	var all []Unit
	all = append(all, lengthUnits()...)
	all = append(all, areaUnits()...)
	all = append(all, massUnits()...)
	all = append(all, volumeUnits()...)
	all = append(all, temperatureUnits()...)
	all = append(all, timeUnits()...)
	all = append(all, speedUnits()...)
	all = append(all, digitalUnits()...)
	return all
}

func unit(id ID, m Measure, sys System, singular, plural string, factor float64) Unit {
	return Unit{ID: id, Measure: m, System: sys, Singular: singular, Plural: plural, Factor: factor}
}

func lengthUnits() []Unit {
	const m = MeasureLength
	return []Unit{
		unit("mm", m, SystemMetric, "Millimeter", "Millimeters", 0.001),
		unit("cm", m, SystemMetric, "Centimeter", "Centimeters", 0.01),
		unit("m", m, SystemMetric, "Meter", "Meters", 1),
		unit("km", m, SystemMetric, "Kilometer", "Kilometers", 1000),
		unit("in", m, SystemImperial, "Inch", "Inches", 0.0254),
		unit("yd", m, SystemImperial, "Yard", "Yards", 0.9144),
		unit("ft-us", m, SystemImperial, "US Survey Foot", "US Survey Feet", 1200.0/3937.0),
		unit("ft", m, SystemImperial, "Foot", "Feet", 0.3048),
		unit("fathom", m, SystemImperial, "Fathom", "Fathoms", 1.8288),
		unit("mi", m, SystemImperial, "Mile", "Miles", 1609.344),
		unit("nMi", m, SystemImperial, "Nautical Mile", "Nautical Miles", 1852),
	}
}

func areaUnits() []Unit {
	const m = MeasureArea
	return []Unit{
		unit("mm2", m, SystemMetric, "Square Millimeter", "Square Millimeters", 1e-6),
		unit("cm2", m, SystemMetric, "Square Centimeter", "Square Centimeters", 1e-4),
		unit("m2", m, SystemMetric, "Square Meter", "Square Meters", 1),
		unit("ha", m, SystemMetric, "Hectare", "Hectares", 1e4),
		unit("km2", m, SystemMetric, "Square Kilometer", "Square Kilometers", 1e6),
		unit("in2", m, SystemImperial, "Square Inch", "Square Inches", 0.00064516),
		unit("yd2", m, SystemImperial, "Square Yard", "Square Yards", 0.83612736),
		unit("ft2", m, SystemImperial, "Square Foot", "Square Feet", 0.09290304),
		unit("ac", m, SystemImperial, "Acre", "Acres", 4046.8564224),
		unit("mi2", m, SystemImperial, "Square Mile", "Square Miles", 2589988.110336),
	}
}

func massUnits() []Unit {
	const m = MeasureMass
	return []Unit{
		unit("mcg", m, SystemMetric, "Microgram", "Micrograms", 1e-9),
		unit("mg", m, SystemMetric, "Milligram", "Milligrams", 1e-6),
		unit("g", m, SystemMetric, "Gram", "Grams", 1e-3),
		unit("kg", m, SystemMetric, "Kilogram", "Kilograms", 1),
		unit("mt", m, SystemMetric, "Metric Tonne", "Metric Tonnes", 1000),
		unit("oz", m, SystemImperial, "Ounce", "Ounces", 0.028349523125),
		unit("lb", m, SystemImperial, "Pound", "Pounds", 0.45359237),
		unit("t", m, SystemImperial, "Ton", "Tons", 907.18474),
	}
}

func volumeUnits() []Unit {
	const m = MeasureVolume
	return []Unit{
		unit("mm3", m, SystemMetric, "Cubic Millimeter", "Cubic Millimeters", 1e-6),
		unit("cm3", m, SystemMetric, "Cubic Centimeter", "Cubic Centimeters", 1e-3),
		unit("ml", m, SystemMetric, "Millilitre", "Millilitres", 1e-3),
		unit("l", m, SystemMetric, "Litre", "Litres", 1),
		unit("kl", m, SystemMetric, "Kilolitre", "Kilolitres", 1000),
		unit("m3", m, SystemMetric, "Cubic meter", "Cubic meters", 1000),
		unit("km3", m, SystemMetric, "Cubic kilometer", "Cubic kilometers", 1e12),
		unit("tsp", m, SystemImperial, "Teaspoon", "Teaspoons", 0.00492892159375),
		unit("Tbs", m, SystemImperial, "Tablespoon", "Tablespoons", 0.01478676478125),
		unit("in3", m, SystemImperial, "Cubic inch", "Cubic inches", 0.016387064),
		unit("fl-oz", m, SystemImperial, "Fluid Ounce", "Fluid Ounces", 0.0295735295625),
		unit("cup", m, SystemImperial, "Cup", "Cups", 0.2365882365),
		unit("pnt", m, SystemImperial, "Pint", "Pints", 0.473176473),
		unit("qt", m, SystemImperial, "Quart", "Quarts", 0.946352946),
		unit("gal", m, SystemImperial, "Gallon", "Gallons", 3.785411784),
		unit("ft3", m, SystemImperial, "Cubic foot", "Cubic feet", 28.316846592),
		unit("yd3", m, SystemImperial, "Cubic yard", "Cubic yards", 764.554857984),
	}
}

func temperatureUnits() []Unit {
	const m = MeasureTemperature
	return []Unit{
		{ID: "C", Measure: m, System: SystemMetric, Singular: "degree Celsius", Plural: "degrees Celsius", Factor: 1, Offset: 273.15},
		{ID: "K", Measure: m, System: SystemMetric, Singular: "degree Kelvin", Plural: "degrees Kelvin", Factor: 1},
		{ID: "F", Measure: m, System: SystemImperial, Singular: "degree Fahrenheit", Plural: "degrees Fahrenheit", Factor: 5.0 / 9.0, Offset: 459.67 * 5.0 / 9.0},
		{ID: "R", Measure: m, System: SystemImperial, Singular: "degree Rankine", Plural: "degrees Rankine", Factor: 5.0 / 9.0},
	}
}

func timeUnits() []Unit {
	const m = MeasureTime
	return []Unit{
		unit("ns", m, SystemOther, "Nanosecond", "Nanoseconds", 1e-9),
		unit("mu", m, SystemOther, "Microsecond", "Microseconds", 1e-6),
		unit("ms", m, SystemOther, "Millisecond", "Milliseconds", 1e-3),
		unit("s", m, SystemOther, "Second", "Seconds", 1),
		unit("min", m, SystemOther, "Minute", "Minutes", 60),
		unit("h", m, SystemOther, "Hour", "Hours", 3600),
		unit("d", m, SystemOther, "Day", "Days", 86400),
		unit("week", m, SystemOther, "Week", "Weeks", 604800),
		unit("month", m, SystemOther, "Month", "Months", 2629800),
		unit("year", m, SystemOther, "Year", "Years", 31557600),
	}
}

func speedUnits() []Unit {
	const m = MeasureSpeed
	return []Unit{
		unit("m/s", m, SystemMetric, "Metre per second", "Metres per second", 1),
		unit("km/h", m, SystemMetric, "Kilometre per hour", "Kilometres per hour", 1 / 3.6),
		unit("m/h", m, SystemImperial, "Mile per hour", "Miles per hour", 0.44704),
		unit("knot", m, SystemImperial, "Knot", "Knots", 1852.0/3600.0),
		unit("ft/s", m, SystemImperial, "Foot per second", "Feet per second", 0.3048),
	}
}

func digitalUnits() []Unit {
	const m = MeasureDigital
	return []Unit{
		unit("b", m, SystemOther, "Bit", "Bits", 1),
		unit("Kb", m, SystemOther, "Kilobit", "Kilobits", 1024),
		unit("Mb", m, SystemOther, "Megabit", "Megabits", 1024*1024),
		unit("Gb", m, SystemOther, "Gigabit", "Gigabits", 1024*1024*1024),
		unit("Tb", m, SystemOther, "Terabit", "Terabits", 1024*1024*1024*1024),
		unit("B", m, SystemOther, "Byte", "Bytes", 8),
		unit("KB", m, SystemOther, "Kilobyte", "Kilobytes", 8*1024),
		unit("MB", m, SystemOther, "Megabyte", "Megabytes", 8*1024*1024),
		unit("GB", m, SystemOther, "Gigabyte", "Gigabytes", 8*1024*1024*1024),
		unit("TB", m, SystemOther, "Terabyte", "Terabytes", 8*1024*1024*1024*1024),
	}
}
