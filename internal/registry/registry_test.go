package registry

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_CatalogShape(t *testing.T) {
	set := Default()

	assert.Equal(t, 19, set.DimCount())
	assert.Equal(t, 7, set.PrimaryDimCount())
	assert.Equal(t, 44, set.UnitCount())
	assert.Equal(t, 27, set.PrimaryUnitCount())

	// Canonical primary order fixes the vector slots.
	wantPrimaries := []string{
		"mass", "length", "time", "electric current",
		"temperature", "amount of substance", "luminous intensity",
	}
	for i, name := range wantPrimaries {
		assert.Equal(t, name, set.Dim(i).Name, "slot %d", i)
	}
	assert.Equal(t, 4, set.TemperatureDim())
	assert.Equal(t, 5, set.AmountDim())
}

func TestDefault_SameInstance(t *testing.T) {
	assert.Same(t, Default(), Default())
}

func TestSet_SIUnitIsFirstRegistered(t *testing.T) {
	set := Default()

	mass, ok := set.LookupDim("mass")
	require.True(t, ok)
	si := set.Unit(set.SIUnitIndex(mass))
	assert.Equal(t, "kilogram", si.Name)
	assert.Equal(t, "kg", set.Dim(mass).SIUnitSymbol)

	temp, ok := set.LookupDim("temperature")
	require.True(t, ok)
	assert.Equal(t, "kelvin", set.Unit(set.SIUnitIndex(temp)).Name)
}

func TestSet_LookupByNameAndSymbol(t *testing.T) {
	set := Default()

	byName, ok := set.LookupDim("energy")
	require.True(t, ok)
	bySymbol, ok := set.LookupDim("E")
	require.True(t, ok)
	assert.Equal(t, byName, bySymbol)
	assert.Equal(t, []float64{1, 2, -2, 0, 0, 0, 0}, set.Dim(byName).Primary)

	celsius, ok := set.LookupUnit("°C")
	require.True(t, ok)
	entry := set.Unit(celsius)
	assert.Equal(t, "degree Celsius", entry.Name)
	assert.Equal(t, 273.15, entry.Factor)

	_, ok = set.LookupUnit("furlong")
	assert.False(t, ok)
}

func TestSet_SupportedInputs(t *testing.T) {
	set := Default()

	dims := set.SupportedDimensions()
	require.Len(t, dims, set.DimCount())
	assert.Equal(t, TokenPair{Name: "mass", Symbol: "M"}, dims[0])

	units := set.SupportedUnits()
	require.Len(t, units, set.UnitCount())
	// Every listed pair resolves back through the lookup tables.
	for _, u := range units {
		byName, ok := set.LookupUnit(u.Name)
		require.True(t, ok, u.Name)
		bySymbol, ok := set.LookupUnit(u.Symbol)
		require.True(t, ok, u.Symbol)
		assert.Equal(t, byName, bySymbol)
	}
}

func TestSet_PrefixedUnitsAreMinted(t *testing.T) {
	set := Default()

	tests := []struct {
		symbol string
		name   string
		factor float64
		exp    int
		dim    string
	}{
		{"cm", "centimetre", 1e-2, -2, "length"},
		{"fm", "femtometre", 1e-15, -15, "length"},
		{"ns", "nanosecond", 1e-9, -9, "time"},
		{"μs", "microsecond", 1e-6, -6, "time"},
	}
	for _, tt := range tests {
		i, ok := set.LookupUnit(tt.symbol)
		require.True(t, ok, tt.symbol)
		u := set.Unit(i)
		assert.Equal(t, tt.name, u.Name)
		assert.InEpsilon(t, tt.factor, u.Factor, 1e-12)
		assert.Equal(t, tt.exp, u.PrefixExp)
		dim, _ := set.LookupDim(tt.dim)
		assert.Equal(t, dim, u.Dim)
	}
}

func TestSet_Prefixes(t *testing.T) {
	set := Default()

	kilo, ok := set.Prefix("kilo")
	require.True(t, ok)
	assert.Equal(t, "k", kilo.Symbol)
	assert.Equal(t, 3, kilo.Exp)

	micro, ok := set.Prefix("μ")
	require.True(t, ok)
	assert.Equal(t, "micro", micro.Name)
	assert.Equal(t, -6, micro.Exp)

	all := set.Prefixes()
	require.Len(t, all, 20)
	assert.Equal(t, "yotta", all[0].Name)
	assert.Equal(t, "yocto", all[len(all)-1].Name)
}

func TestSet_Constants(t *testing.T) {
	set := Default()

	avogadro, ok := set.Constant("avogadro")
	require.True(t, ok)
	assert.Equal(t, "N_A", avogadro.Symbol)
	assert.InEpsilon(t, 6.02214076e23, avogadro.Value, 1e-12)
	assert.Equal(t, "mol^-1", avogadro.Unit)

	assert.Equal(t, []string{"avogadro", "coulomb"}, set.ConstantKeys())
}

func TestSet_DisplayOrder(t *testing.T) {
	set := Default()

	order := set.DimDisplayOrder()
	require.Len(t, order, set.DimCount())

	// Most complex derived dimension leads, primaries close in
	// canonical order.
	assert.Equal(t, "energy", set.Dim(order[0]).Name)
	assert.Equal(t, "dimensionless", set.Dim(order[11]).Name)
	assert.Equal(t, "mass", set.Dim(order[12]).Name)
	assert.Equal(t, "luminous intensity", set.Dim(order[18]).Name)

	unitOrder := set.UnitDisplayOrder()
	require.Len(t, unitOrder, set.UnitCount())
	assert.Equal(t, "hartree (a.u.)", set.Unit(unitOrder[0]).Name)
	assert.Equal(t, "kilogram", set.Unit(unitOrder[set.UnitCount()-27]).Name)
}

// minimalFS returns a loadable three-file catalog that each validation
// test mutates to trigger a single failure.
func minimalFS() fstest.MapFS {
	return fstest.MapFS{
		"registry.yaml": &fstest.MapFile{Data: []byte(`
primary:
  - {name: mass, symbol: M, exponents: [1, 0, 0, 0, 0, 0, 0], units: [{name: kilogram, symbol: kg, factor: 1, prefix: 3}]}
  - {name: length, symbol: L, exponents: [0, 1, 0, 0, 0, 0, 0], units: [{name: metre, symbol: m, factor: 1}]}
  - {name: time, symbol: T, exponents: [0, 0, 1, 0, 0, 0, 0], units: [{name: second, symbol: s, factor: 1}]}
  - {name: electric current, symbol: I, exponents: [0, 0, 0, 1, 0, 0, 0], units: [{name: ampere, symbol: A, factor: 1}]}
  - {name: temperature, symbol: Θ, exponents: [0, 0, 0, 0, 1, 0, 0], units: [{name: kelvin, symbol: K, factor: 0}]}
  - {name: amount of substance, symbol: N, exponents: [0, 0, 0, 0, 0, 1, 0], units: [{name: mole, symbol: mol, factor: 1}]}
  - {name: luminous intensity, symbol: J, exponents: [0, 0, 0, 0, 0, 0, 1], units: [{name: candela, symbol: cd, factor: 1}]}
derived: []
`)},
		"prefixes.yaml":  &fstest.MapFile{Data: []byte("prefixes: []\n")},
		"constants.yaml": &fstest.MapFile{Data: []byte("constants: []\n")},
	}
}

func TestLoad_MinimalCatalog(t *testing.T) {
	set, err := Load(minimalFS())
	require.NoError(t, err)
	assert.Equal(t, 7, set.DimCount())
	assert.Equal(t, 7, set.UnitCount())
	assert.Equal(t, 4, set.TemperatureDim())
}

// trimDerived drops the trailing "derived: []" line of the minimal
// catalog so a test can supply its own derived block.
func trimDerived(data []byte) []byte {
	return []byte(strings.Replace(string(data), "derived: []\n", "", 1))
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(fstest.MapFS)
		want   error
	}{
		{
			name: "missing primary",
			mutate: func(fsys fstest.MapFS) {
				fsys["registry.yaml"] = &fstest.MapFile{Data: []byte(`
primary:
  - {name: mass, symbol: M, exponents: [1, 0, 0, 0, 0, 0, 0], units: [{name: kilogram, symbol: kg, factor: 1}]}
derived: []
`)}
			},
			want: ErrPrimaryCount,
		},
		{
			name: "short exponent vector",
			mutate: func(fsys fstest.MapFS) {
				fsys["registry.yaml"] = &fstest.MapFile{Data: append(
					trimDerived(fsys["registry.yaml"].Data),
					[]byte(`derived:
  - {name: area, symbol: Ar, exponents: [0, 2], units: [{name: square metre, symbol: m^2, factor: 1}]}
`)...)}
			},
			want: ErrVectorLength,
		},
		{
			name: "duplicate unit symbol",
			mutate: func(fsys fstest.MapFS) {
				fsys["registry.yaml"] = &fstest.MapFile{Data: append(
					trimDerived(fsys["registry.yaml"].Data),
					[]byte(`derived:
  - {name: area, symbol: Ar, exponents: [0, 2, 0, 0, 0, 0, 0], units: [{name: square metre, symbol: m, factor: 1}]}
`)...)}
			},
			want: ErrDuplicateToken,
		},
		{
			name: "unknown expand prefix",
			mutate: func(fsys fstest.MapFS) {
				fsys["prefixes.yaml"] = &fstest.MapFile{Data: []byte(`
prefixes:
  - {name: centi, symbol: c, exp: -2}
expand:
  prefixes: [milli]
  units:
    - {dimension: length, base: metre, symbol: m}
`)}
			},
			want: ErrUnknownExpand,
		},
		{
			name: "constant without unit",
			mutate: func(fsys fstest.MapFS) {
				fsys["constants.yaml"] = &fstest.MapFile{Data: []byte(`
constants:
  - {key: avogadro, name: Avogadro constant, symbol: N_A, value: 6.02214076e23}
`)}
			},
			want: ErrBadConstant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := minimalFS()
			tt.mutate(fsys)
			_, err := Load(fsys)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
