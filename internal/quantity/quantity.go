// Package quantity pairs a numeric value with a unit and keeps the two
// consistent through arithmetic and conversions.
package quantity

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	"dimens/internal/registry"
	"dimens/internal/unit"
)

// ErrIncompatible reports arithmetic between quantities whose units are
// not convertible.
var ErrIncompatible = errors.New("incompatible quantities")

// Quantity is a value measured in a unit.
type Quantity struct {
	value float64
	unit  unit.Unit
}

// New builds a quantity from a value and its unit.
func New(value float64, u unit.Unit) Quantity {
	return Quantity{value: value, unit: u}
}

// Parse builds a quantity from a value and a unit expression such as
// "kg.m^2.s^-2".
func Parse(reg *registry.Set, value float64, expression string) (Quantity, error) {
	u, err := unit.Parse(reg, expression)
	if err != nil {
		return Quantity{}, err
	}
	return New(value, u), nil
}

// Value returns the numeric value.
func (q Quantity) Value() float64 { return q.value }

// Unit returns the unit the value is measured in.
func (q Quantity) Unit() unit.Unit { return q.unit }

// ConvertTo re-expresses the quantity in the target unit. The units
// must be convertible; amount-of-substance mismatches are bridged by
// molarization.
func (q Quantity) ConvertTo(target unit.Unit) (Quantity, error) {
	coeffs, err := q.unit.CoefficientsTo(target)
	if err != nil {
		return Quantity{}, fmt.Errorf("%w: %v", ErrIncompatible, err)
	}
	return Quantity{value: coeffs.Apply(q.value), unit: target}, nil
}

// ConvertToSI re-expresses the quantity in its equivalent SI unit.
func (q Quantity) ConvertToSI() Quantity {
	value, si := q.unit.ConvertToSI(q.value)
	return Quantity{value: value, unit: si}
}

// Normalize is ConvertToSI under its conventional name: 1234 g
// normalizes to 1.234 kg.
func (q Quantity) Normalize() Quantity { return q.ConvertToSI() }

// Add converts other into this quantity's unit and adds the values.
func (q Quantity) Add(other Quantity) (Quantity, error) {
	conv, err := other.ConvertTo(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: q.value + conv.value, unit: q.unit}, nil
}

// Sub converts other into this quantity's unit and subtracts the values.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	conv, err := other.ConvertTo(q.unit)
	if err != nil {
		return Quantity{}, err
	}
	return Quantity{value: q.value - conv.value, unit: q.unit}, nil
}

// Mul multiplies values and units.
func (q Quantity) Mul(other Quantity) Quantity {
	return Quantity{value: q.value * other.value, unit: q.unit.Mul(other.unit)}
}

// Div divides values and units.
func (q Quantity) Div(other Quantity) Quantity {
	return Quantity{value: q.value / other.value, unit: q.unit.Div(other.unit)}
}

// Scale multiplies the value by a bare number, keeping the unit.
func (q Quantity) Scale(k float64) Quantity {
	return Quantity{value: q.value * k, unit: q.unit}
}

// Pow raises both the value and the unit to a power.
func (q Quantity) Pow(power float64) Quantity {
	return Quantity{value: math.Pow(q.value, power), unit: q.unit.Pow(power)}
}

// Equal reports whether the two quantities measure the same amount,
// converting other into this quantity's unit first.
func (q Quantity) Equal(other Quantity) bool {
	conv, err := other.ConvertTo(q.unit)
	if err != nil {
		return false
	}
	diff := q.value - conv.value
	if diff < 0 {
		diff = -diff
	}
	scale := q.value
	if scale < 0 {
		scale = -scale
	}
	if scale < 1 {
		scale = 1
	}
	return diff <= scale*1e-9
}

// String renders "value unit" with the shortest float form, e.g.
// "1.234 kg" or "6.02214076e+23 mol⁻¹". A unitless quantity renders the
// bare value.
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.value, 'g', -1, 64)
	sym := q.unit.Symbol()
	if sym == "1" {
		return v
	}
	return v + " " + sym
}
