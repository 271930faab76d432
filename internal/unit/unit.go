// Package unit implements physical units as exponent vectors over the
// registry's unit catalog. Every Unit carries its Dimension, derived at
// construction, and conversions between units reduce to a pair of
// coefficients against the shared SI reference frame.
package unit

import (
	"errors"
	"fmt"

	"dimens/internal/dimension"
	"dimens/internal/expr"
	"dimens/internal/registry"
)

// Parse and constructor errors.
var (
	ErrUnknownUnit     = errors.New("unknown unit")
	ErrVectorLength    = errors.New("exponent vector length does not match catalog")
	ErrCatalogMismatch = errors.New("units belong to different catalogs")
)

const eps = 1e-9

// unitlessToken renders a unit with all-zero exponents and is accepted
// back by Parse as "no units at all".
const unitlessToken = "1"

// Unit is a physical unit over a registry catalog.
type Unit struct {
	reg *registry.Set
	vec []float64
	dim dimension.Dimension
}

// Parse builds a Unit from a dotted expression of unit names or
// symbols, e.g. "kilogram.metre^2.second^-2" or "kg.m^2.s^-2".
// Exponents of repeated bases accumulate. The token "1" is accepted as
// the unitless sentinel and contributes nothing.
func Parse(reg *registry.Set, expression string) (Unit, error) {
	terms, err := expr.Parse(expression)
	if err != nil {
		return Unit{}, err
	}
	vec := make([]float64, reg.UnitCount())
	for _, term := range terms {
		if term.Base == unitlessToken {
			continue
		}
		i, ok := reg.LookupUnit(term.Base)
		if !ok {
			return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, term.Base)
		}
		vec[i] += term.Exponent
	}
	return fromOwnedVector(reg, vec), nil
}

// FromVector builds a Unit from a full exponent vector, one entry per
// catalog unit in registry order.
func FromVector(reg *registry.Set, vec []float64) (Unit, error) {
	if len(vec) != reg.UnitCount() {
		return Unit{}, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(vec), reg.UnitCount())
	}
	own := make([]float64, len(vec))
	copy(own, vec)
	return fromOwnedVector(reg, own), nil
}

// FromPrimaryUnitDecomposition builds a Unit from seven exponents over
// the primary SI units, in canonical order (kilogram, metre, second,
// ampere, kelvin, mole, candela).
func FromPrimaryUnitDecomposition(reg *registry.Set, exps []float64) (Unit, error) {
	if len(exps) != reg.PrimaryDimCount() {
		return Unit{}, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(exps), reg.PrimaryDimCount())
	}
	vec := make([]float64, reg.UnitCount())
	for k, exp := range exps {
		vec[reg.SIUnitIndex(k)] = exp
	}
	return fromOwnedVector(reg, vec), nil
}

// FromDimension builds the SI unit of a dimension: each entry of the
// dimension's vector becomes the exponent of that dimension's SI unit.
func FromDimension(d dimension.Dimension) Unit {
	reg := d.Registry()
	vec := make([]float64, reg.UnitCount())
	for j, exp := range d.Vector() {
		vec[reg.SIUnitIndex(j)] += exp
	}
	return fromOwnedVector(reg, vec)
}

// fromOwnedVector derives the unit's dimension and takes ownership of vec.
func fromOwnedVector(reg *registry.Set, vec []float64) Unit {
	dimVec := make([]float64, reg.DimCount())
	for i, exp := range vec {
		if exp != 0 {
			dimVec[reg.Unit(i).Dim] += exp
		}
	}
	// The vector length is correct by construction.
	dim, _ := dimension.FromVector(reg, dimVec)
	return Unit{reg: reg, vec: vec, dim: dim}
}

// Registry returns the catalog the unit is defined against.
func (u Unit) Registry() *registry.Set { return u.reg }

// Vector returns a copy of the full exponent vector.
func (u Unit) Vector() []float64 {
	out := make([]float64, len(u.vec))
	copy(out, u.vec)
	return out
}

// Dimension returns the unit's dimension.
func (u Unit) Dimension() dimension.Dimension { return u.dim }

// Mul multiplies two units by adding their exponent vectors.
func (u Unit) Mul(other Unit) Unit {
	u.mustShareCatalog(other)
	vec := make([]float64, len(u.vec))
	for i := range vec {
		vec[i] = u.vec[i] + other.vec[i]
	}
	return fromOwnedVector(u.reg, vec)
}

// Div divides two units by subtracting their exponent vectors.
func (u Unit) Div(other Unit) Unit {
	u.mustShareCatalog(other)
	vec := make([]float64, len(u.vec))
	for i := range vec {
		vec[i] = u.vec[i] - other.vec[i]
	}
	return fromOwnedVector(u.reg, vec)
}

// Pow raises the unit to a power by scaling its exponent vector.
func (u Unit) Pow(power float64) Unit {
	vec := make([]float64, len(u.vec))
	for i := range vec {
		vec[i] = u.vec[i] * power
	}
	return fromOwnedVector(u.reg, vec)
}

// Equal reports whether two units have the same dimension and the same
// conversion coefficients to SI, i.e. they measure the same quantity at
// the same scale.
func (u Unit) Equal(other Unit) bool {
	if u.reg != other.reg {
		return false
	}
	if !u.dim.Equal(other.dim) {
		return false
	}
	a, b := u.CoefficientsToSI(), other.CoefficientsToSI()
	return nearlyEqual(a.Shift, b.Shift) && nearlyEqual(a.Factor, b.Factor)
}

// Name renders the unit as registered names, e.g.
// "kilogram . metre² . second⁻²"; all-zero exponents render "unitless".
func (u Unit) Name() string {
	return u.render(func(e registry.UnitEntry) string { return e.Name }, " . ", "unitless")
}

// Symbol renders the unit as registered symbols, e.g. "kg.m².s⁻²";
// all-zero exponents render "1".
func (u Unit) Symbol() string {
	return u.render(func(e registry.UnitEntry) string { return e.Symbol }, ".", unitlessToken)
}

// String renders the symbol form.
func (u Unit) String() string { return u.Symbol() }

// EquivSI returns the equivalent SI unit, replacing each constituting
// unit with the SI unit of its dimension at the same exponent. No
// coefficients are applied.
func (u Unit) EquivSI() Unit {
	vec := make([]float64, len(u.vec))
	for i, exp := range u.vec {
		if exp != 0 {
			vec[u.reg.SIUnitIndex(u.reg.Unit(i).Dim)] += exp
		}
	}
	return fromOwnedVector(u.reg, vec)
}

// EquivSIPrimary returns the equivalent unit expressed purely in
// primary SI units, from the dimension's primary decomposition.
func (u Unit) EquivSIPrimary() Unit {
	vec := make([]float64, len(u.vec))
	for k, exp := range u.dim.PrimaryDecomposition() {
		vec[u.reg.SIUnitIndex(k)] = exp
	}
	return fromOwnedVector(u.reg, vec)
}

// IsSI reports whether the unit is already composed purely of SI units.
func (u Unit) IsSI() bool {
	si := u.EquivSI()
	for i := range u.vec {
		if !nearlyEqual(u.vec[i], si.vec[i]) {
			return false
		}
	}
	return true
}

// HasSameDimension reports whether two units measure the same dimension.
func (u Unit) HasSameDimension(other Unit) bool {
	return u.dim.Equal(other.dim)
}

// HasDimension reports whether the unit measures the given dimension.
func (u Unit) HasDimension(d dimension.Dimension) bool {
	return u.dim.Equal(d)
}

func (u Unit) render(pick func(registry.UnitEntry) string, sep, empty string) string {
	order := u.reg.UnitDisplayOrder()
	bases := make([]string, len(order))
	exps := make([]float64, len(order))
	for i, idx := range order {
		bases[i] = pick(u.reg.Unit(idx))
		exps[i] = u.vec[idx]
	}
	return expr.Format(bases, exps, sep, empty)
}

func (u Unit) mustShareCatalog(other Unit) {
	if u.reg != other.reg {
		panic(ErrCatalogMismatch)
	}
}

func nearlyEqual(a, b float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	if diff <= eps {
		return true
	}
	// Relative tolerance for large magnitudes such as Avogadro-scaled
	// factors.
	scale := a
	if scale < 0 {
		scale = -scale
	}
	if s := b; s < 0 {
		s = -s
		if s > scale {
			scale = s
		}
	} else if s > scale {
		scale = s
	}
	return diff <= scale*1e-9
}
