// Package registry holds the immutable catalog of known physical
// dimensions, their units, metric prefixes, and physical constants. The
// catalog fixes the basis length and iteration order that every exponent
// vector in the engine is defined against: the seven primary dimensions
// in canonical physical order (mass, length, time, electric current,
// temperature, amount of substance, luminous intensity), followed by
// derived dimensions ordered from structurally simplest to most complex.
//
// A Set is built once (from the embedded YAML data or a caller-supplied
// fs.FS) and never mutated afterwards, so concurrent readers need no
// synchronization.
package registry

import (
	"errors"
)

// PrimaryCount is the number of primary physical dimensions.
const PrimaryCount = 7

// Catalog errors surfaced by accessors.
var (
	ErrNoTemperature = errors.New("catalog has no temperature dimension")
	ErrNoAmount      = errors.New("catalog has no amount-of-substance dimension")
)

// DimensionEntry is one dimension of the catalog.
type DimensionEntry struct {
	Name   string
	Symbol string
	// Primary holds the dimension's exponents over the seven primary
	// dimensions, in canonical order.
	Primary []float64
	// SIUnitSymbol is the symbol of the dimension's first-registered
	// ("SI") unit, used when rendering a dimension in unit form.
	SIUnitSymbol string
}

// UnitEntry is one unit of the catalog.
type UnitEntry struct {
	Name   string
	Symbol string
	// Factor is the multiplicative scale to the dimension's SI unit.
	// For temperature units it is semantically an additive offset
	// (273.15 for degree Celsius), and exactly 0 is a sentinel meaning
	// "no scale contribution" (the kelvin base unit).
	Factor float64
	// PrefixExp is the power of ten already baked into the unit
	// (3 for kilogram, -2 for centimetre, 0 for most).
	PrefixExp int
	// Dim is the index of the owning dimension.
	Dim int
}

// Constant is a physical constant defined against the catalog.
type Constant struct {
	Name   string
	Symbol string
	Value  float64
	// Unit is the constant's unit in expression form, e.g. "mol^-1".
	Unit string
}

// Prefix is a metric prefix, resolvable by name or symbol.
type Prefix struct {
	Name   string
	Symbol string
	Exp    int
}

// TokenPair is a (name, symbol) pair accepted by the parsers.
type TokenPair struct {
	Name   string
	Symbol string
}

// Set is the immutable catalog. All indices handed out by a Set refer to
// its own ordering and must not be mixed between Sets.
type Set struct {
	dims  []DimensionEntry
	units []UnitEntry

	primaryDims  int
	primaryUnits int

	siUnit    []int // per dimension: index of its first-registered unit
	dimIndex  map[string]int
	unitIndex map[string]int

	constants     map[string]Constant
	constantOrder []string

	prefixes    []Prefix
	prefixIndex map[string]int

	dimDisplay  []int
	unitDisplay []int

	temperatureDim int
	amountDim      int
}

// DimCount returns the number of dimensions (primary + derived).
func (s *Set) DimCount() int { return len(s.dims) }

// UnitCount returns the total number of units across all dimensions.
func (s *Set) UnitCount() int { return len(s.units) }

// PrimaryDimCount returns the number of primary dimensions (always 7).
func (s *Set) PrimaryDimCount() int { return s.primaryDims }

// PrimaryUnitCount returns the number of units owned by primary dimensions.
func (s *Set) PrimaryUnitCount() int { return s.primaryUnits }

// Dim returns the dimension entry at index i.
func (s *Set) Dim(i int) DimensionEntry { return s.dims[i] }

// Unit returns the unit entry at index i.
func (s *Set) Unit(i int) UnitEntry { return s.units[i] }

// SIUnitIndex returns the unit index of the SI (first-registered) unit
// of dimension dim.
func (s *Set) SIUnitIndex(dim int) int { return s.siUnit[dim] }

// LookupDim resolves a dimension token by exact name or symbol match.
func (s *Set) LookupDim(token string) (int, bool) {
	i, ok := s.dimIndex[token]
	return i, ok
}

// LookupUnit resolves a unit token by exact name or symbol match.
func (s *Set) LookupUnit(token string) (int, bool) {
	i, ok := s.unitIndex[token]
	return i, ok
}

// TemperatureDim returns the index of the temperature dimension.
func (s *Set) TemperatureDim() int { return s.temperatureDim }

// AmountDim returns the index of the amount-of-substance dimension.
func (s *Set) AmountDim() int { return s.amountDim }

// Constant returns the physical constant registered under key.
func (s *Set) Constant(key string) (Constant, bool) {
	c, ok := s.constants[key]
	return c, ok
}

// ConstantKeys returns the keys of all registered constants, in
// registration order.
func (s *Set) ConstantKeys() []string {
	keys := make([]string, len(s.constantOrder))
	copy(keys, s.constantOrder)
	return keys
}

// Prefix resolves a metric prefix by exact name or symbol match.
func (s *Set) Prefix(token string) (Prefix, bool) {
	i, ok := s.prefixIndex[token]
	if !ok {
		return Prefix{}, false
	}
	return s.prefixes[i], true
}

// Prefixes lists all metric prefixes, largest to smallest.
func (s *Set) Prefixes() []Prefix {
	out := make([]Prefix, len(s.prefixes))
	copy(out, s.prefixes)
	return out
}

// DimDisplayOrder returns dimension indices in display priority: derived
// dimensions from most to least complex, then primaries in canonical
// order. The registry stores derived entries simplest-first, so display
// order reverses them.
func (s *Set) DimDisplayOrder() []int {
	out := make([]int, len(s.dimDisplay))
	copy(out, s.dimDisplay)
	return out
}

// UnitDisplayOrder returns unit indices in display priority, mirroring
// DimDisplayOrder at the unit level.
func (s *Set) UnitDisplayOrder() []int {
	out := make([]int, len(s.unitDisplay))
	copy(out, s.unitDisplay)
	return out
}

// SupportedDimensions lists the (name, symbol) pairs accepted by the
// dimension parser, in registry order.
func (s *Set) SupportedDimensions() []TokenPair {
	pairs := make([]TokenPair, len(s.dims))
	for i, d := range s.dims {
		pairs[i] = TokenPair{Name: d.Name, Symbol: d.Symbol}
	}
	return pairs
}

// SupportedUnits lists the (name, symbol) pairs accepted by the unit
// parser, in registry order.
func (s *Set) SupportedUnits() []TokenPair {
	pairs := make([]TokenPair, len(s.units))
	for i, u := range s.units {
		pairs[i] = TokenPair{Name: u.Name, Symbol: u.Symbol}
	}
	return pairs
}

// displayOrder builds the shared "derived reversed, then primaries"
// index permutation.
func displayOrder(total, primary int) []int {
	order := make([]int, 0, total)
	for i := total - 1; i >= primary; i-- {
		order = append(order, i)
	}
	for i := 0; i < primary; i++ {
		order = append(order, i)
	}
	return order
}
