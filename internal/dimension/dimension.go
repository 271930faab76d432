// Package dimension implements physical dimensions as exponent vectors
// over a registry catalog, with the algebra and equivalence searches
// used for dimensional analysis.
//
// A Dimension stores one exponent per catalog entry, so "force" and
// "mass.length.time^-2" are distinct vectors with equal primary
// decompositions. All operations are immutable: the receiver is never
// modified and results are new values. Dimensions from different
// catalogs must not be mixed.
package dimension

import (
	"errors"
	"fmt"
	"math"

	"dimens/internal/expr"
	"dimens/internal/registry"
)

// Parse and constructor errors.
var (
	ErrUnknownDimension = errors.New("unknown dimension")
	ErrVectorLength     = errors.New("exponent vector length does not match catalog")
	ErrCatalogMismatch  = errors.New("dimensions belong to different catalogs")
)

// eps is the tolerance for float comparisons on exponents. Exponents
// come from small integers and parsed fractions, so anything below this
// is accumulated rounding noise.
const eps = 1e-9

// Dimension is a physical dimension over a registry catalog.
type Dimension struct {
	reg *registry.Set
	vec []float64
}

// Parse builds a Dimension from a dotted expression of dimension names
// or symbols, e.g. "mass.length^2.time^-2" or "M.L^2.T^-2". Exponents
// of repeated bases accumulate.
func Parse(reg *registry.Set, expression string) (Dimension, error) {
	terms, err := expr.Parse(expression)
	if err != nil {
		return Dimension{}, err
	}
	vec := make([]float64, reg.DimCount())
	for _, term := range terms {
		i, ok := reg.LookupDim(term.Base)
		if !ok {
			return Dimension{}, fmt.Errorf("%w: %q", ErrUnknownDimension, term.Base)
		}
		vec[i] += term.Exponent
	}
	return Dimension{reg: reg, vec: vec}, nil
}

// FromVector builds a Dimension from a full exponent vector, one entry
// per catalog dimension in registry order.
func FromVector(reg *registry.Set, vec []float64) (Dimension, error) {
	if len(vec) != reg.DimCount() {
		return Dimension{}, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(vec), reg.DimCount())
	}
	own := make([]float64, len(vec))
	copy(own, vec)
	return Dimension{reg: reg, vec: own}, nil
}

// FromPrimaryDecomposition builds a Dimension from seven primary
// exponents in canonical order (mass, length, time, electric current,
// temperature, amount of substance, luminous intensity).
func FromPrimaryDecomposition(reg *registry.Set, primary []float64) (Dimension, error) {
	if len(primary) != reg.PrimaryDimCount() {
		return Dimension{}, fmt.Errorf("%w: got %d, want %d", ErrVectorLength, len(primary), reg.PrimaryDimCount())
	}
	vec := make([]float64, reg.DimCount())
	copy(vec, primary)
	return Dimension{reg: reg, vec: vec}, nil
}

// Registry returns the catalog the dimension is defined against.
func (d Dimension) Registry() *registry.Set { return d.reg }

// Vector returns a copy of the full exponent vector.
func (d Dimension) Vector() []float64 {
	out := make([]float64, len(d.vec))
	copy(out, d.vec)
	return out
}

// Mul multiplies two dimensions by adding their exponent vectors.
func (d Dimension) Mul(other Dimension) Dimension {
	d.mustShareCatalog(other)
	vec := make([]float64, len(d.vec))
	for i := range vec {
		vec[i] = d.vec[i] + other.vec[i]
	}
	return Dimension{reg: d.reg, vec: vec}
}

// Div divides two dimensions by subtracting their exponent vectors.
func (d Dimension) Div(other Dimension) Dimension {
	d.mustShareCatalog(other)
	vec := make([]float64, len(d.vec))
	for i := range vec {
		vec[i] = d.vec[i] - other.vec[i]
	}
	return Dimension{reg: d.reg, vec: vec}
}

// Pow raises the dimension to a power by scaling its exponent vector.
func (d Dimension) Pow(power float64) Dimension {
	vec := make([]float64, len(d.vec))
	for i := range vec {
		vec[i] = d.vec[i] * power
	}
	return Dimension{reg: d.reg, vec: vec}
}

// PrimaryDecomposition returns the dimension's seven primary exponents:
// the sum over all entries of the entry's exponent times the entry's
// own primary vector.
func (d Dimension) PrimaryDecomposition() []float64 {
	out := make([]float64, d.reg.PrimaryDimCount())
	for i, exp := range d.vec {
		if exp == 0 {
			continue
		}
		for j, p := range d.reg.Dim(i).Primary {
			out[j] += exp * p
		}
	}
	return out
}

// Primary returns the equivalent dimension composed only of primary
// dimensions.
func (d Dimension) Primary() Dimension {
	vec := make([]float64, d.reg.DimCount())
	copy(vec, d.PrimaryDecomposition())
	return Dimension{reg: d.reg, vec: vec}
}

// IsPrimary reports whether the dimension reduces to a single primary
// dimension, i.e. the absolute exponents of its primary decomposition
// sum to one.
func (d Dimension) IsPrimary() bool {
	return math.Abs(l1(d.PrimaryDecomposition())-1) < eps
}

// IsDimensionless reports whether the primary decomposition is zero.
func (d Dimension) IsDimensionless() bool {
	return l1(d.PrimaryDecomposition()) < eps
}

// Equal reports whether two dimensions have the same primary
// decomposition. "force" equals "mass.length.time^-2" even though
// their raw vectors differ.
func (d Dimension) Equal(other Dimension) bool {
	if d.reg != other.reg {
		return false
	}
	return vectorsEqual(d.PrimaryDecomposition(), other.PrimaryDecomposition())
}

// Name renders the dimension as registered names, e.g.
// "mass . length² . time⁻²"; a zero vector renders as "dimensionless".
func (d Dimension) Name() string {
	return d.render(func(e registry.DimensionEntry) string { return e.Name }, " . ", "dimensionless")
}

// Symbol renders the dimension as registered symbols, e.g. "ML²T⁻²"; a
// zero vector renders as "1".
func (d Dimension) Symbol() string {
	return d.render(func(e registry.DimensionEntry) string { return e.Symbol }, "", "1")
}

// SIUnit renders the dimension as the SI unit symbols of its entries,
// e.g. "kg.m².s⁻²"; a zero vector renders as "1".
func (d Dimension) SIUnit() string {
	return d.render(func(e registry.DimensionEntry) string { return e.SIUnitSymbol }, ".", "1")
}

// String renders the symbol form.
func (d Dimension) String() string { return d.Symbol() }

func (d Dimension) render(pick func(registry.DimensionEntry) string, sep, empty string) string {
	order := d.reg.DimDisplayOrder()
	bases := make([]string, len(order))
	exps := make([]float64, len(order))
	for i, idx := range order {
		bases[i] = pick(d.reg.Dim(idx))
		exps[i] = d.vec[idx]
	}
	return expr.Format(bases, exps, sep, empty)
}

func (d Dimension) mustShareCatalog(other Dimension) {
	if d.reg != other.reg {
		panic(ErrCatalogMismatch)
	}
}

func l1(vec []float64) float64 {
	var sum float64
	for _, x := range vec {
		sum += math.Abs(x)
	}
	return sum
}

func vectorsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}
