package unit

import (
	"errors"
	"fmt"

	"dimens/internal/registry"
)

// Prefixing errors.
var (
	ErrNotComponent      = errors.New("unit is not a component of this unit")
	ErrNoPrefixedVariant = errors.New("no prefixed variant registered")
	ErrPrefixTemperature = errors.New("temperature units take no metric prefix")
)

// WithPrefix replaces the constituting unit named by target (a unit
// name or symbol with a nonzero exponent) with its prefixed catalog
// variant, keeping the exponent. For example applying the centi prefix
// to the "m" component of m.s⁻¹ yields cm.s⁻¹.
//
// The prefixed variant must itself be registered: the catalog expands
// common prefixes onto metre and second at load time, and carries
// pre-scaled units such as the gram elsewhere.
func (u Unit) WithPrefix(p registry.Prefix, target string) (Unit, error) {
	idx, ok := u.reg.LookupUnit(target)
	if !ok {
		return Unit{}, fmt.Errorf("%w: %q", ErrUnknownUnit, target)
	}
	if u.vec[idx] == 0 {
		return Unit{}, fmt.Errorf("%w: %q in %s", ErrNotComponent, target, u.Symbol())
	}
	entry := u.reg.Unit(idx)
	if entry.Dim == u.reg.TemperatureDim() {
		return Unit{}, fmt.Errorf("%w: %q", ErrPrefixTemperature, target)
	}

	prefixed, ok := u.reg.LookupUnit(p.Symbol + entry.Symbol)
	if !ok {
		prefixed, ok = u.reg.LookupUnit(p.Name + entry.Name)
	}
	if !ok {
		return Unit{}, fmt.Errorf("%w: %s%s", ErrNoPrefixedVariant, p.Symbol, entry.Symbol)
	}

	vec := make([]float64, len(u.vec))
	copy(vec, u.vec)
	vec[prefixed] += vec[idx]
	vec[idx] = 0
	return fromOwnedVector(u.reg, vec), nil
}
