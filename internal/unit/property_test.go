package unit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"dimens/internal/registry"
)

// drawUnit generates a sparse unit: up to three catalog units with small
// nonzero exponents. Sparseness keeps coefficient products well inside
// float range.
func drawUnit(t *rapid.T) Unit {
	reg := registry.Default()
	vec := make([]float64, reg.UnitCount())
	n := rapid.IntRange(0, 3).Draw(t, "n")
	for k := 0; k < n; k++ {
		i := rapid.IntRange(0, reg.UnitCount()-1).Draw(t, "idx")
		vec[i] += rapid.SampledFrom([]float64{-2, -1, 1, 2}).Draw(t, "exp")
	}
	u, err := FromVector(reg, vec)
	require.NoError(t, err)
	return u
}

func TestUnit_MulDivRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawUnit(t)
		b := drawUnit(t)
		require.Equal(t, a.Vector(), a.Mul(b).Div(b).Vector())
	})
}

func TestUnit_MulMatchesDimensionProduct(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := drawUnit(t)
		b := drawUnit(t)
		require.True(t, a.Mul(b).Dimension().Equal(a.Dimension().Mul(b.Dimension())))
	})
}

func TestUnit_EquivSIIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := drawUnit(t)
		si := u.EquivSI()
		require.True(t, si.IsSI())
		require.Equal(t, si.Vector(), si.EquivSI().Vector())
		require.True(t, si.HasSameDimension(u))
	})
}

func TestUnit_EquivSIPrimaryKeepsDimension(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := drawUnit(t)
		require.True(t, u.EquivSIPrimary().HasSameDimension(u))
	})
}

func TestUnit_SelfConversionIsIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := drawUnit(t)
		c, err := u.CoefficientsTo(u)
		require.NoError(t, err)
		require.InDelta(t, 0, c.Shift, 1e-9)
		require.InEpsilon(t, 1, c.Factor, 1e-9)
	})
}

func TestUnit_AlwaysConvertibleToOwnSI(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		u := drawUnit(t)
		require.True(t, u.IsConvertibleTo(u.EquivSI()))
		require.True(t, u.IsConvertibleTo(u.EquivSIPrimary()))
	})
}
