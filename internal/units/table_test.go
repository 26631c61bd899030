package units

import (
	"errors"
	"math"
	"testing"
)

func approxEqual(a, b float64) bool {
	if a == b {
		return true
	}
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestTableConvert(t *testing.T) {
	table := NewTable()

	tests := []struct {
		value    float64
		from, to ID
		want     float64
	}{
		{2, "ft", "in", 24},
		{1, "in", "mm", 25.4},
		{1, "mi", "km", 1.609344},
		{1, "kg", "lb", 2.2046226218487757},
		{100, "C", "F", 212},
		{32, "F", "C", 0},
		{0, "C", "K", 273.15},
		{1, "gal", "l", 3.785411784},
		{90, "min", "h", 1.5},
		{36, "km/h", "m/s", 10},
		{1, "KB", "b", 8192},
		{5, "m", "m", 5},
	}

	for _, tt := range tests {
		got, err := table.Convert(tt.value, tt.from, tt.to)
		if err != nil {
			t.Errorf("Convert(%v, %q, %q) error: %v", tt.value, tt.from, tt.to, err)
			continue
		}
		if !approxEqual(got, tt.want) {
			t.Errorf("Convert(%v, %q, %q) = %v, want %v", tt.value, tt.from, tt.to, got, tt.want)
		}
	}
}

func TestTableConvertRoundTrip(t *testing.T) {
	table := NewTable()

	for _, m := range table.Measures() {
		var ids []ID
		for _, id := range table.Vocabulary() {
			u, _ := table.Lookup(id)
			if u.Measure == m {
				ids = append(ids, id)
			}
		}
		for _, u1 := range ids {
			for _, u2 := range ids {
				for _, v := range []float64{0.5, 1, 7.25, 1234} {
					there, err := table.Convert(v, u1, u2)
					if err != nil {
						t.Fatalf("Convert(%v, %q, %q): %v", v, u1, u2, err)
					}
					back, err := table.Convert(there, u2, u1)
					if err != nil {
						t.Fatalf("Convert(%v, %q, %q): %v", there, u2, u1, err)
					}
					if math.Abs(back-v) > 1e-6*math.Max(1, v) {
						t.Errorf("round trip %q->%q->%q of %v = %v", u1, u2, u1, v, back)
					}
				}
			}
		}
	}
}

func TestTableConvertErrors(t *testing.T) {
	table := NewTable()

	tests := []struct {
		name     string
		from, to ID
		wantUnit ID
	}{
		{"unknown from", "xx", "in", "xx"},
		{"unknown to", "in", "yy", "yy"},
		{"incompatible", "m", "s", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := table.Convert(1, tt.from, tt.to)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrUnsupportedUnit) {
				t.Errorf("error %v should match ErrUnsupportedUnit", err)
			}
			var uerr *UnsupportedUnitError
			if !errors.As(err, &uerr) {
				t.Fatalf("error %T should be *UnsupportedUnitError", err)
			}
			if uerr.Unit != tt.wantUnit {
				t.Errorf("Unit = %q, want %q", uerr.Unit, tt.wantUnit)
			}
		})
	}
}

func TestTablePossibilities(t *testing.T) {
	table := NewTable()

	got, err := table.Possibilities("ft")
	if err != nil {
		t.Fatalf("Possibilities: %v", err)
	}
	want := []ID{"mm", "cm", "m", "km", "in", "yd", "ft-us", "ft", "fathom", "mi", "nMi"}
	if len(got) != len(want) {
		t.Fatalf("Possibilities(ft) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Possibilities(ft)[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if _, err := table.Possibilities("furlong"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("Possibilities(furlong) error = %v, want ErrUnsupportedUnit", err)
	}
}

func TestTableDescribe(t *testing.T) {
	table := NewTable()

	d, err := table.Describe("ft")
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if d.Singular != "Foot" || d.Plural != "Feet" {
		t.Errorf("Describe(ft) = %+v", d)
	}
	if d.Measure != MeasureLength {
		t.Errorf("Measure = %q, want %q", d.Measure, MeasureLength)
	}

	if _, err := table.Describe("nope"); !errors.Is(err, ErrUnsupportedUnit) {
		t.Errorf("Describe(nope) error = %v", err)
	}
}

func TestTableRegister(t *testing.T) {
	table := NewTable(WithReserved("inf", "ftf"))

	if err := table.Register(Unit{ID: "hand", Measure: MeasureLength, Singular: "Hand", Plural: "Hands", Factor: 0.1016}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := table.Convert(1, "hand", "in")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if !approxEqual(got, 4) {
		t.Errorf("Convert(1, hand, in) = %v, want 4", got)
	}

	// New measures are created on demand.
	if err := table.Register(Unit{ID: "cd", Measure: "luminous", Factor: 1}); err != nil {
		t.Fatalf("Register new measure: %v", err)
	}
	d, _ := table.Describe("cd")
	if d.Singular != "cd" || d.Plural != "cd" || d.System != SystemOther {
		t.Errorf("defaults not applied: %+v", d)
	}

	bad := []struct {
		name string
		unit Unit
		want error
	}{
		{"duplicate", Unit{ID: "ft", Measure: MeasureLength, Factor: 1}, ErrDuplicateUnit},
		{"reserved", Unit{ID: "inf", Measure: MeasureLength, Factor: 1}, ErrInvalidUnit},
		{"bad charset", Unit{ID: "a b", Measure: MeasureLength, Factor: 1}, ErrInvalidUnit},
		{"zero factor", Unit{ID: "zz", Measure: MeasureLength}, ErrInvalidUnit},
		{"no measure", Unit{ID: "zz", Factor: 1}, ErrInvalidUnit},
		{"nan offset", Unit{ID: "zz", Measure: MeasureLength, Factor: 1, Offset: math.NaN()}, ErrInvalidUnit},
	}
	for _, tt := range bad {
		t.Run(tt.name, func(t *testing.T) {
			if err := table.Register(tt.unit); !errors.Is(err, tt.want) {
				t.Errorf("Register error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestWithoutBuiltins(t *testing.T) {
	table := NewTable(WithoutBuiltins())
	if n := len(table.Vocabulary()); n != 0 {
		t.Errorf("Vocabulary() has %d units, want 0", n)
	}
	if _, err := table.Convert(1, "ft", "in"); err == nil {
		t.Error("empty table should not know ft")
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"ft", "km/h", "fl-oz", "m2"} {
		if !ValidID(id) {
			t.Errorf("ValidID(%q) = false", id)
		}
	}
	for _, id := range []string{"", "a b", "m|s", "x]"} {
		if ValidID(id) {
			t.Errorf("ValidID(%q) = true", id)
		}
	}
}
