package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_SingleTerms(t *testing.T) {
	tests := []struct {
		name  string
		input string
		base  string
		exp   float64
	}{
		{"bare base", "m", "m", 1},
		{"integer exponent", "m^2", "m", 2},
		{"negative exponent", "s^-2", "s", -2},
		{"fraction exponent", "m^3/2", "m", 1.5},
		{"negative fraction", "m^-1/2", "m", -0.5},
		{"decimal exponent", "m^0.5", "m", 0.5},
		{"unicode base", "°C^-1", "°C", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			terms, err := Parse(tt.input)
			require.NoError(t, err)
			require.Len(t, terms, 1)
			assert.Equal(t, tt.base, terms[0].Base)
			assert.InDelta(t, tt.exp, terms[0].Exponent, 1e-12)
		})
	}
}

func TestParse_MultipleTerms(t *testing.T) {
	terms, err := Parse("kg.m^2.s^-2")
	require.NoError(t, err)
	require.Len(t, terms, 3)

	assert.Equal(t, "kg", terms[0].Base)
	assert.InDelta(t, 1.0, terms[0].Exponent, 1e-12)
	assert.Equal(t, "m", terms[1].Base)
	assert.InDelta(t, 2.0, terms[1].Exponent, 1e-12)
	assert.Equal(t, "s", terms[2].Base)
	assert.InDelta(t, -2.0, terms[2].Exponent, 1e-12)
}

func TestParse_DuplicateBasesAreReturnedVerbatim(t *testing.T) {
	// Accumulation is the caller's job.
	terms, err := Parse("m.m^2")
	require.NoError(t, err)
	require.Len(t, terms, 2)
	assert.Equal(t, "m", terms[0].Base)
	assert.Equal(t, "m", terms[1].Base)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty input", "", ErrEmptyExpression},
		{"double caret", "m^2^3", ErrMultipleCarets},
		{"empty exponent", "m^", ErrBadExponent},
		{"non-numeric exponent", "m^x", ErrBadExponent},
		{"zero denominator", "m^1/0", ErrBadExponent},
		{"garbage fraction", "m^a/b", ErrBadExponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
