// Package constants exposes the catalog's physical constants as
// ready-made quantities.
package constants

import (
	"errors"
	"fmt"

	"dimens/internal/quantity"
	"dimens/internal/registry"
)

// ErrUnknownConstant reports a lookup for a key the catalog does not
// define.
var ErrUnknownConstant = errors.New("unknown constant")

// Entry is one physical constant with its value resolved to a quantity.
type Entry struct {
	Key      string
	Name     string
	Symbol   string
	Quantity quantity.Quantity
}

// Lookup resolves a constant by registry key, e.g. "avogadro".
func Lookup(reg *registry.Set, key string) (Entry, error) {
	c, ok := reg.Constant(key)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownConstant, key)
	}
	q, err := quantity.Parse(reg, c.Value, c.Unit)
	if err != nil {
		return Entry{}, fmt.Errorf("constant %q: %w", key, err)
	}
	return Entry{Key: key, Name: c.Name, Symbol: c.Symbol, Quantity: q}, nil
}

// All lists every constant in registration order.
func All(reg *registry.Set) ([]Entry, error) {
	keys := reg.ConstantKeys()
	entries := make([]Entry, 0, len(keys))
	for _, key := range keys {
		e, err := Lookup(reg, key)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}
