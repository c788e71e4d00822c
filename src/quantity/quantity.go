// Package quantity implements the small slice of physical-unit arithmetic the
// plotting code needs: named units with a dimension and a scale relative to
// the SI base unit of that dimension, and rescaling between them.
package quantity

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrIncompatibleUnits = errors.New("quantity: incompatible units")
	ErrUnknownUnit       = errors.New("quantity: unknown unit")
)

// Dimension identifies what a unit measures.
type Dimension int

const (
	Dimensionless Dimension = iota
	Time
	Frequency
	Voltage
	Current
)

func (d Dimension) String() string {
	switch d {
	case Time:
		return "time"
	case Frequency:
		return "frequency"
	case Voltage:
		return "voltage"
	case Current:
		return "current"
	default:
		return "dimensionless"
	}
}

// Unit is a physical unit. Scale converts a value in this unit to the SI
// base unit of its dimension (s, Hz, V, A).
type Unit struct {
	Symbol    string
	Dimension Dimension
	Scale     float64
}

// String returns the unit symbol, the way axis labels show it.
func (u Unit) String() string {
	if u.Symbol == "" && u.Dimension == Dimensionless {
		return "dimensionless"
	}
	return u.Symbol
}

// IsZero reports whether u is the zero Unit (no unit given).
func (u Unit) IsZero() bool { return u == Unit{} }

var (
	Hour        = Unit{"h", Time, 3600}
	Minute      = Unit{"min", Time, 60}
	Second      = Unit{"s", Time, 1}
	Millisecond = Unit{"ms", Time, 1e-3}
	Microsecond = Unit{"us", Time, 1e-6}

	Hertz     = Unit{"Hz", Frequency, 1}
	Kilohertz = Unit{"kHz", Frequency, 1e3}
	Megahertz = Unit{"MHz", Frequency, 1e6}

	Volt      = Unit{"V", Voltage, 1}
	Millivolt = Unit{"mV", Voltage, 1e-3}
	Microvolt = Unit{"uV", Voltage, 1e-6}
	Nanovolt  = Unit{"nV", Voltage, 1e-9}

	Ampere     = Unit{"A", Current, 1}
	Milliamp   = Unit{"mA", Current, 1e-3}
	Microamp   = Unit{"uA", Current, 1e-6}
	Nanoamp    = Unit{"nA", Current, 1e-9}
	Picoamp    = Unit{"pA", Current, 1e-12}
	Unitless   = Unit{"", Dimensionless, 1}
	Percentage = Unit{"%", Dimensionless, 1e-2}
)

var known = []Unit{
	Hour, Minute, Second, Millisecond, Microsecond,
	Hertz, Kilohertz, Megahertz,
	Volt, Millivolt, Microvolt, Nanovolt,
	Ampere, Milliamp, Microamp, Nanoamp, Picoamp,
	Unitless, Percentage,
}

var aliases = map[string]string{
	"sec": "s", "second": "s", "seconds": "s",
	"msec": "ms", "millisecond": "ms", "milliseconds": "ms",
	"µs": "us", "μs": "us", "usec": "us",
	"minute": "min", "minutes": "min",
	// no "mhz": it would read millihertz as megahertz
	"hz": "Hz", "khz": "kHz",
	"µv": "uV", "μv": "uV", "µV": "uV", "μV": "uV",
	"µa": "uA", "μa": "uA", "µA": "uA", "μA": "uA",
	"dimensionless": "",
}

// Parse resolves a unit symbol such as "ms", "mV" or "kHz".
func Parse(s string) (Unit, error) {
	sym := strings.TrimSpace(s)
	if a, ok := aliases[sym]; ok {
		sym = a
	} else if a, ok := aliases[strings.ToLower(sym)]; ok {
		sym = a
	}
	for _, u := range known {
		if u.Symbol == sym {
			return u, nil
		}
	}
	return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// MustParse is Parse for package-level tables and tests; it panics on error.
func MustParse(s string) Unit {
	u, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

// Factor returns the multiplier that converts values in from into values in to.
func Factor(from, to Unit) (float64, error) {
	if from.Dimension != to.Dimension {
		return 0, fmt.Errorf("%w: cannot convert %s (%s) to %s (%s)", ErrIncompatibleUnits, from, from.Dimension, to, to.Dimension)
	}
	if to.Scale == 0 {
		return 0, fmt.Errorf("%w: zero scale for %q", ErrUnknownUnit, to.Symbol)
	}
	return from.Scale / to.Scale, nil
}

// Rescale converts v from one unit to another.
func Rescale(v float64, from, to Unit) (float64, error) {
	f, err := Factor(from, to)
	if err != nil {
		return 0, err
	}
	return v * f, nil
}

// RescaleAll converts every value of vs and returns a new slice.
func RescaleAll(vs []float64, from, to Unit) ([]float64, error) {
	f, err := Factor(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = v * f
	}
	return out, nil
}

// Quantity is a scalar with a unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Q is shorthand for constructing a Quantity.
func Q(v float64, u Unit) Quantity { return Quantity{Value: v, Unit: u} }

// In returns the magnitude of q expressed in unit u.
func (q Quantity) In(u Unit) (float64, error) { return Rescale(q.Value, q.Unit, u) }

// Rescale returns q converted to unit u.
func (q Quantity) Rescale(u Unit) (Quantity, error) {
	v, err := q.In(u)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{Value: v, Unit: u}, nil
}

func (q Quantity) String() string {
	if q.Unit.Symbol == "" {
		return fmt.Sprintf("%g", q.Value)
	}
	return fmt.Sprintf("%g %s", q.Value, q.Unit.Symbol)
}

// Period returns the reciprocal of a frequency as a time quantity in unit u.
// A zero or negative rate is an error.
func Period(rate Quantity, u Unit) (Quantity, error) {
	hz, err := rate.In(Hertz)
	if err != nil {
		return Quantity{}, err
	}
	if hz <= 0 {
		return Quantity{}, fmt.Errorf("quantity: non-positive sampling rate %s", rate)
	}
	return Quantity{Value: 1 / hz, Unit: Second}.Rescale(u)
}
