package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

// Loader errors.
var (
	ErrPrimaryCount   = errors.New("catalog must define exactly seven primary dimensions")
	ErrVectorLength   = errors.New("dimension exponent vector must have seven components")
	ErrNotBasisVector = errors.New("primary dimension must be a unit basis vector")
	ErrNoUnits        = errors.New("dimension must define at least one unit")
	ErrDuplicateToken = errors.New("duplicate name or symbol")
	ErrUnknownExpand  = errors.New("prefix expansion references unknown entry")
	ErrBadConstant    = errors.New("invalid constant definition")
)

// File names expected at the root of the catalog filesystem.
const (
	catalogFileName   = "registry.yaml"
	prefixesFileName  = "prefixes.yaml"
	constantsFileName = "constants.yaml"
)

type catalogFile struct {
	Primary []dimensionDef `yaml:"primary"`
	Derived []dimensionDef `yaml:"derived"`
}

type dimensionDef struct {
	Name      string    `yaml:"name"`
	Symbol    string    `yaml:"symbol"`
	Exponents []float64 `yaml:"exponents"`
	Units     []unitDef `yaml:"units"`
}

type unitDef struct {
	Name   string  `yaml:"name"`
	Symbol string  `yaml:"symbol"`
	Factor float64 `yaml:"factor"`
	Prefix int     `yaml:"prefix"`
}

type prefixesFile struct {
	Prefixes []prefixDef `yaml:"prefixes"`
	Expand   expandDef   `yaml:"expand"`
}

type prefixDef struct {
	Name   string `yaml:"name"`
	Symbol string `yaml:"symbol"`
	Exp    int    `yaml:"exp"`
}

type expandDef struct {
	Prefixes []string        `yaml:"prefixes"`
	Units    []expandUnitDef `yaml:"units"`
}

type expandUnitDef struct {
	Dimension string `yaml:"dimension"`
	Base      string `yaml:"base"`
	Symbol    string `yaml:"symbol"`
}

type constantsFile struct {
	Constants []constantDef `yaml:"constants"`
}

type constantDef struct {
	Key    string  `yaml:"key"`
	Name   string  `yaml:"name"`
	Symbol string  `yaml:"symbol"`
	Value  float64 `yaml:"value"`
	Unit   string  `yaml:"unit"`
}

var defaultSet = sync.OnceValue(func() *Set {
	set, err := Load(EmbeddedData())
	if err != nil {
		panic(fmt.Sprintf("registry: embedded catalog: %v", err))
	}
	return set
})

// EmbeddedData returns the embedded catalog data files, for callers
// that want to build an independent Set from the shipped catalog.
func EmbeddedData() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(fmt.Sprintf("registry: embedded data: %v", err))
	}
	return sub
}

// Default returns the catalog built from the embedded data files. The
// build happens once; the embedded catalog is validated at release time,
// so a failure here is a programming error and panics.
func Default() *Set {
	return defaultSet()
}

// Load builds a Set from registry.yaml, prefixes.yaml, and constants.yaml
// at the root of fsys, expanding prefixed units and validating the
// catalog invariants.
func Load(fsys fs.FS) (*Set, error) {
	var catalog catalogFile
	if err := readYAML(fsys, catalogFileName, &catalog); err != nil {
		return nil, err
	}
	var prefixes prefixesFile
	if err := readYAML(fsys, prefixesFileName, &prefixes); err != nil {
		return nil, err
	}
	var constants constantsFile
	if err := readYAML(fsys, constantsFileName, &constants); err != nil {
		return nil, err
	}
	return build(catalog, prefixes, constants)
}

func readYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func build(catalog catalogFile, prefixes prefixesFile, constants constantsFile) (*Set, error) {
	if len(catalog.Primary) != PrimaryCount {
		return nil, fmt.Errorf("%w: got %d", ErrPrimaryCount, len(catalog.Primary))
	}

	s := &Set{
		primaryDims:    PrimaryCount,
		dimIndex:       make(map[string]int),
		unitIndex:      make(map[string]int),
		constants:      make(map[string]Constant),
		prefixIndex:    make(map[string]int),
		temperatureDim: -1,
		amountDim:      -1,
	}

	for i, def := range prefixes.Prefixes {
		p := Prefix(def)
		if err := registerToken(s.prefixIndex, p.Name, i); err != nil {
			return nil, fmt.Errorf("prefix %q: %w", p.Name, err)
		}
		if err := registerToken(s.prefixIndex, p.Symbol, i); err != nil {
			return nil, fmt.Errorf("prefix %q: %w", p.Name, err)
		}
		s.prefixes = append(s.prefixes, p)
	}

	expanded, err := expandPrefixedUnits(catalog, prefixes)
	if err != nil {
		return nil, err
	}

	defs := make([]dimensionDef, 0, len(catalog.Primary)+len(catalog.Derived))
	defs = append(defs, catalog.Primary...)
	defs = append(defs, catalog.Derived...)

	for i, def := range defs {
		if len(def.Exponents) != PrimaryCount {
			return nil, fmt.Errorf("dimension %q: %w: got %d components", def.Name, ErrVectorLength, len(def.Exponents))
		}
		if i < PrimaryCount && !isBasisVector(def.Exponents, i) {
			return nil, fmt.Errorf("dimension %q at position %d: %w", def.Name, i, ErrNotBasisVector)
		}
		units := def.Units
		if i < PrimaryCount {
			units = append(units, expanded[def.Name]...)
		}
		if len(units) == 0 {
			return nil, fmt.Errorf("dimension %q: %w", def.Name, ErrNoUnits)
		}

		if err := registerToken(s.dimIndex, def.Name, i); err != nil {
			return nil, fmt.Errorf("dimension %q: %w", def.Name, err)
		}
		if err := registerToken(s.dimIndex, def.Symbol, i); err != nil {
			return nil, fmt.Errorf("dimension %q: %w", def.Name, err)
		}

		s.siUnit = append(s.siUnit, len(s.units))
		for _, u := range units {
			idx := len(s.units)
			if err := registerToken(s.unitIndex, u.Name, idx); err != nil {
				return nil, fmt.Errorf("unit %q: %w", u.Name, err)
			}
			if err := registerToken(s.unitIndex, u.Symbol, idx); err != nil {
				return nil, fmt.Errorf("unit %q: %w", u.Name, err)
			}
			s.units = append(s.units, UnitEntry{
				Name:      u.Name,
				Symbol:    u.Symbol,
				Factor:    u.Factor,
				PrefixExp: u.Prefix,
				Dim:       i,
			})
			if i < PrimaryCount {
				s.primaryUnits++
			}
		}

		exps := make([]float64, PrimaryCount)
		copy(exps, def.Exponents)
		s.dims = append(s.dims, DimensionEntry{
			Name:         def.Name,
			Symbol:       def.Symbol,
			Primary:      exps,
			SIUnitSymbol: units[0].Symbol,
		})

		switch def.Name {
		case "temperature":
			s.temperatureDim = i
		case "amount of substance":
			s.amountDim = i
		}
	}

	if s.temperatureDim < 0 {
		return nil, ErrNoTemperature
	}
	if s.amountDim < 0 {
		return nil, ErrNoAmount
	}

	for _, def := range constants.Constants {
		if def.Key == "" || def.Unit == "" {
			return nil, fmt.Errorf("%w: %q needs key and unit", ErrBadConstant, def.Name)
		}
		if _, dup := s.constants[def.Key]; dup {
			return nil, fmt.Errorf("constant %q: %w", def.Key, ErrDuplicateToken)
		}
		s.constants[def.Key] = Constant{
			Name:   def.Name,
			Symbol: def.Symbol,
			Value:  def.Value,
			Unit:   def.Unit,
		}
		s.constantOrder = append(s.constantOrder, def.Key)
	}

	s.dimDisplay = displayOrder(len(s.dims), s.primaryDims)
	s.unitDisplay = displayOrder(len(s.units), s.primaryUnits)
	return s, nil
}

// expandPrefixedUnits mints one unit per (expand prefix, expand target)
// pair, keyed by the owning dimension's name. A prefixed unit scales to
// the SI unit by 10^exp and records exp as its baked-in prefix.
func expandPrefixedUnits(catalog catalogFile, prefixes prefixesFile) (map[string][]unitDef, error) {
	byName := make(map[string]prefixDef, len(prefixes.Prefixes))
	for _, p := range prefixes.Prefixes {
		byName[p.Name] = p
	}
	dimNames := make(map[string]bool, len(catalog.Primary))
	for _, d := range catalog.Primary {
		dimNames[d.Name] = true
	}

	out := make(map[string][]unitDef)
	for _, target := range prefixes.Expand.Units {
		if !dimNames[target.Dimension] {
			return nil, fmt.Errorf("%w: dimension %q", ErrUnknownExpand, target.Dimension)
		}
		for _, name := range prefixes.Expand.Prefixes {
			p, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: prefix %q", ErrUnknownExpand, name)
			}
			out[target.Dimension] = append(out[target.Dimension], unitDef{
				Name:   p.Name + target.Base,
				Symbol: p.Symbol + target.Symbol,
				Factor: math.Pow(10, float64(p.Exp)),
				Prefix: p.Exp,
			})
		}
	}
	return out, nil
}

func registerToken(index map[string]int, token string, i int) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", ErrDuplicateToken)
	}
	if _, dup := index[token]; dup {
		return fmt.Errorf("%w: %q", ErrDuplicateToken, token)
	}
	index[token] = i
	return nil
}

func isBasisVector(v []float64, slot int) bool {
	for i, x := range v {
		want := 0.0
		if i == slot {
			want = 1
		}
		if x != want {
			return false
		}
	}
	return true
}
