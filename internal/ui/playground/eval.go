package playground

import (
	"fmt"
	"strconv"
	"strings"

	"dimens/internal/dimension"
	"dimens/internal/presentation"
	"dimens/internal/unit"
)

const helpText = `Queries:
  <expression>              dimension report (falls back to unit lookup)
  dim <expression>          dimension report, e.g. "dim M.L^2.T^-2"
  unit <expression>         unit report, e.g. "unit kcal"
  convert <value> <from> <to>   e.g. "convert 25 °C K"
  equiv <expression>        equivalent compositions, e.g. "equiv F"
  help                      this text
  quit                      leave the playground`

// evaluate runs one query and returns the rendered report.
func (m Model) evaluate(query string) (output string, failed bool) {
	fields := strings.Fields(query)
	verb, rest := fields[0], fields[1:]

	switch verb {
	case "help":
		return helpText, false

	case "dim":
		if len(rest) != 1 {
			return m.fail(fmt.Errorf("usage: dim <expression>"))
		}
		return m.evalDimension(rest[0])

	case "unit":
		if len(rest) != 1 {
			return m.fail(fmt.Errorf("usage: unit <expression>"))
		}
		return m.evalUnit(rest[0])

	case "convert":
		if len(rest) != 3 {
			return m.fail(fmt.Errorf("usage: convert <value> <from> <to>"))
		}
		return m.evalConversion(rest[0], rest[1], rest[2])

	case "equiv":
		if len(rest) != 1 {
			return m.fail(fmt.Errorf("usage: equiv <expression>"))
		}
		return m.evalEquivalents(rest[0])
	}

	if len(fields) != 1 {
		return m.fail(fmt.Errorf("unknown query %q (try \"help\")", query))
	}

	// A bare expression: dimension tokens first, then unit tokens.
	if out, bad := m.evalDimension(query); !bad {
		return out, false
	}
	return m.evalUnit(query)
}

func (m Model) evalDimension(expression string) (string, bool) {
	d, err := dimension.Parse(m.reg, expression)
	if err != nil {
		return m.fail(err)
	}
	return m.renderer.Dimension(presentation.FromDimension(d)), false
}

func (m Model) evalUnit(expression string) (string, bool) {
	u, err := unit.Parse(m.reg, expression)
	if err != nil {
		return m.fail(err)
	}
	return m.renderer.Unit(presentation.FromUnit(u)), false
}

func (m Model) evalConversion(rawValue, fromExpr, toExpr string) (string, bool) {
	value, err := strconv.ParseFloat(rawValue, 64)
	if err != nil {
		return m.fail(fmt.Errorf("bad value %q", rawValue))
	}
	from, err := unit.Parse(m.reg, fromExpr)
	if err != nil {
		return m.fail(err)
	}
	to, err := unit.Parse(m.reg, toExpr)
	if err != nil {
		return m.fail(err)
	}
	coeffs, err := from.CoefficientsTo(to)
	if err != nil {
		return m.fail(err)
	}
	return m.renderer.Conversion(presentation.FromConversion(value, from, to, coeffs)), false
}

func (m Model) evalEquivalents(expression string) (string, bool) {
	d, err := dimension.Parse(m.reg, expression)
	if err != nil {
		return m.fail(err)
	}
	results := d.Equivalents(dimension.EquivalentsOptions{
		MaxComposingDims: m.search.MaxComposingDims,
		MaxExp:           m.search.MaxExp,
		MaxCombinations:  m.search.MaxCombinations,
	})
	return m.renderer.Equivalents(d.Symbol(), presentation.FromEquivalents(results)), false
}

func (m Model) fail(err error) (string, bool) {
	return m.renderer.Error(err), true
}
