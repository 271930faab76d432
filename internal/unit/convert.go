package unit

import (
	"errors"
	"fmt"
	"math"
)

// ErrNotConvertible reports a conversion between units whose dimensions
// differ beyond molarization.
var ErrNotConvertible = errors.New("units are not convertible")

// avogadroKey is the registry key of the Avogadro constant, used to
// molarize or demolarize a quantity during conversion.
const avogadroKey = "avogadro"

// Coefficients transform a value between units:
//
//	converted = (value + Shift) * Factor
//
// Shift is nonzero only for conversions involving absolute temperature
// units at positive exponents.
type Coefficients struct {
	Shift  float64
	Factor float64
}

// Apply transforms a value with the coefficients.
func (c Coefficients) Apply(value float64) float64 {
	return (value + c.Shift) * c.Factor
}

// CoefficientsToSI returns the coefficients that transform a value in
// this unit into its equivalent SI unit.
//
// Temperature units carry additive offsets instead of scale factors,
// and only when raised to a positive exponent: a temperature in the
// denominator measures a temperature difference, which is offset-free
// (1/°C equals 1/K). All other units contribute factor^exp to the
// multiplicative part; the kelvin sentinel factor 0 never reaches the
// product because kelvin belongs to the temperature dimension.
func (u Unit) CoefficientsToSI() Coefficients {
	tempDim := u.reg.TemperatureDim()
	shift := 0.0
	factor := 1.0
	for i, exp := range u.vec {
		entry := u.reg.Unit(i)
		if entry.Dim == tempDim {
			if exp > 0 {
				shift += exp * entry.Factor
			}
			continue
		}
		if exp == 0 {
			continue
		}
		factor *= math.Pow(entry.Factor, exp)
	}
	return Coefficients{Shift: shift, Factor: factor}
}

// CoefficientsTo returns the coefficients that transform a value in
// this unit into the target unit. The units must measure the same
// dimension, except for the amount-of-substance exponent: a mismatch
// there is bridged by (de)molarizing with the Avogadro constant.
func (u Unit) CoefficientsTo(target Unit) (Coefficients, error) {
	u.mustShareCatalog(target)
	n, ok := u.convertibleTo(target)
	if !ok {
		return Coefficients{}, fmt.Errorf("%w: %s to %s", ErrNotConvertible, u.Symbol(), target.Symbol())
	}

	self := u.CoefficientsToSI()
	if n != 0 {
		avogadro, ok := u.reg.Constant(avogadroKey)
		if !ok {
			return Coefficients{}, fmt.Errorf("%w: %s to %s requires the Avogadro constant, which the catalog does not define",
				ErrNotConvertible, u.Symbol(), target.Symbol())
		}
		self.Factor *= math.Pow(avogadro.Value, -n)
	}
	other := target.CoefficientsToSI()

	return Coefficients{
		Shift:  self.Shift - other.Shift,
		Factor: self.Factor / other.Factor,
	}, nil
}

// Convert transforms a value in this unit into the target unit.
func (u Unit) Convert(value float64, target Unit) (float64, error) {
	coeffs, err := u.CoefficientsTo(target)
	if err != nil {
		return 0, err
	}
	return coeffs.Apply(value), nil
}

// ConvertToSI transforms a value in this unit into its equivalent SI
// unit, returning the transformed value and that unit.
func (u Unit) ConvertToSI(value float64) (float64, Unit) {
	return u.CoefficientsToSI().Apply(value), u.EquivSI()
}

// IsConvertibleTo reports whether the unit can be converted to the
// target, i.e. their dimensions match up to molarization.
func (u Unit) IsConvertibleTo(target Unit) bool {
	if u.reg != target.reg {
		return false
	}
	_, ok := u.convertibleTo(target)
	return ok
}

// convertibleTo checks dimensional compatibility and returns the
// amount-of-substance exponent by which this unit must be multiplied to
// match the target.
func (u Unit) convertibleTo(target Unit) (nFactor float64, ok bool) {
	diff := target.dim.Div(u.dim).PrimaryDecomposition()
	amount := u.reg.AmountDim()
	nFactor = diff[amount]
	diff[amount] = 0
	for _, exp := range diff {
		if math.Abs(exp) > eps {
			return 0, false
		}
	}
	return nFactor, true
}
