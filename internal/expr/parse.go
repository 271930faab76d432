// Package expr implements the dotted base^exponent expression grammar
// shared by dimension and unit string forms, together with the canonical
// superscript rendering of exponent vectors.
//
// An expression is a series of terms separated by '.'. Each term is a
// base token, optionally followed by '^' and an exponent written as an
// integer, a decimal, or a fraction ("3/2"). Examples:
//
//	"M.L^2.T^-2"
//	"kg.m^2.s^-2"
//	"m^3/2"
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors.
var (
	ErrEmptyExpression = errors.New("expression is empty")
	ErrMultipleCarets  = errors.New("term may contain at most one '^'")
	ErrBadExponent     = errors.New("malformed exponent")
)

// Term is a single parsed base with its exponent.
type Term struct {
	Base     string
	Exponent float64
}

// Parse splits an expression into its terms. A term without '^' has an
// implicit exponent of 1. Duplicate bases are returned as-is; callers
// accumulate their exponents additively.
func Parse(input string) ([]Term, error) {
	if input == "" {
		return nil, ErrEmptyExpression
	}

	raw := strings.Split(input, ".")
	terms := make([]Term, 0, len(raw))
	for i, part := range raw {
		pieces := strings.Split(part, "^")
		switch len(pieces) {
		case 1:
			terms = append(terms, Term{Base: pieces[0], Exponent: 1})
		case 2:
			exp, err := parseExponent(pieces[1])
			if err != nil {
				return nil, fmt.Errorf("term %d (%q): %w", i+1, part, err)
			}
			terms = append(terms, Term{Base: pieces[0], Exponent: exp})
		default:
			return nil, fmt.Errorf("term %d (%q): %w", i+1, part, ErrMultipleCarets)
		}
	}
	return terms, nil
}

// parseExponent parses an integer, decimal, or "num/den" fraction.
func parseExponent(s string) (float64, error) {
	if s == "" {
		return 0, ErrBadExponent
	}
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseFloat(num, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrBadExponent, s)
		}
		d, err := strconv.ParseFloat(den, 64)
		if err != nil || d == 0 {
			return 0, fmt.Errorf("%w: %q", ErrBadExponent, s)
		}
		return n / d, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadExponent, s)
	}
	return v, nil
}
