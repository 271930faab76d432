package expr

import (
	"math"
	"strconv"
	"strings"
)

// superscripts maps the characters of a rendered exponent to their
// superscript forms. '/' uses U+2044 FRACTION SLASH.
var superscripts = map[rune]rune{
	'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
	'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
	'-': '⁻', '/': '⁄',
}

// maxDenominator bounds the fraction search when rendering non-integer
// exponents; it mirrors the default of Python's Fraction.limit_denominator,
// which the upstream data format was defined against.
const maxDenominator = 1_000_000

// Superscript renders an exponent for display. An exponent of 1 renders
// as the empty string, integers as superscript digits, and everything
// else as the smallest superscript fraction reproducing the value within
// floating tolerance.
func Superscript(exp float64) string {
	if exp == 1 {
		return ""
	}
	var plain string
	if exp == math.Trunc(exp) {
		plain = strconv.FormatInt(int64(exp), 10)
	} else {
		num, den := bestRational(exp, maxDenominator)
		plain = strconv.FormatInt(num, 10) + "/" + strconv.FormatInt(den, 10)
	}
	var b strings.Builder
	for _, r := range plain {
		if sup, ok := superscripts[r]; ok {
			b.WriteRune(sup)
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// bestRational returns the fraction with the smallest denominator not
// exceeding maxDen that best approximates x, using the continued-fraction
// expansion of x.
func bestRational(x float64, maxDen int64) (num, den int64) {
	neg := x < 0
	if neg {
		x = -x
	}

	// Convergents p/q of the continued fraction of x.
	var p0, q0, p1, q1 int64 = 0, 1, 1, 0
	rem := x
	for {
		a := int64(math.Floor(rem))
		p2 := a*p1 + p0
		q2 := a*q1 + q0
		if q2 > maxDen {
			break
		}
		p0, q0, p1, q1 = p1, q1, p2, q2
		frac := rem - float64(a)
		if frac < 1e-12 {
			break
		}
		rem = 1 / frac
	}
	if neg {
		p1 = -p1
	}
	return p1, q1
}
