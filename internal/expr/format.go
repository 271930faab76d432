package expr

import (
	"strings"
)

// Format renders ordered base/exponent pairs as a canonical expression
// string. Entries with a zero exponent are dropped, an exponent of 1 is
// rendered without a visible exponent, and all other exponents are
// superscripted. Compound bases (containing '.' or '^') are recursively
// formatted and parenthesized. Terms are joined by sep with no trailing
// separator; when every exponent is zero the empty sentinel is returned
// instead of an empty string.
func Format(bases []string, exps []float64, sep, empty string) string {
	var b strings.Builder
	wrote := false
	for i, exp := range exps {
		if exp == 0 {
			continue
		}
		if wrote {
			b.WriteString(sep)
		}
		b.WriteString(renderBase(bases[i]))
		b.WriteString(Superscript(exp))
		wrote = true
	}
	if !wrote {
		return empty
	}
	return b.String()
}

// renderBase parenthesizes compound bases such as the SI symbol
// "kg.m^-3" so their own exponent binds to the whole group.
func renderBase(base string) string {
	if !strings.ContainsAny(base, ".^") {
		return base
	}
	terms, err := Parse(base)
	if err != nil {
		// A registry symbol that fails its own grammar is rendered
		// verbatim; the catalog loader rejects these at startup.
		return base
	}
	inner := make([]string, len(terms))
	exps := make([]float64, len(terms))
	for i, t := range terms {
		inner[i] = t.Base
		exps[i] = t.Exponent
	}
	return "(" + Format(inner, exps, ".", empty0) + ")"
}

// empty0 is the sentinel for a recursively formatted compound base; a
// compound symbol with all-zero exponents cannot be registered, so this
// is never user-visible.
const empty0 = "1"
