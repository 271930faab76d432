package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Renderer produces styled text reports for the CLI. With color off it
// emits plain text with the same layout.
type Renderer struct {
	header lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	unit   lipgloss.Style
	faint  lipgloss.Style

	// nameFirst leads report lines with full names instead of symbols
	// (the display.form config option).
	nameFirst bool
}

// NewRenderer creates a renderer; color toggles lipgloss styling, form
// is "symbol" (the default) or "name" and selects which textual form
// leads each report line.
func NewRenderer(color bool, form string) *Renderer {
	r := &Renderer{nameFirst: form == "name"}
	if !color {
		plain := lipgloss.NewStyle()
		r.header, r.label, r.value, r.unit, r.faint = plain, plain, plain, plain, plain
		return r
	}
	r.header = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#54A0FF"))
	r.label = lipgloss.NewStyle().Foreground(lipgloss.Color("#BBBBBB"))
	r.value = lipgloss.NewStyle().Bold(true)
	r.unit = lipgloss.NewStyle().Foreground(lipgloss.Color("#73F59F"))
	r.faint = lipgloss.NewStyle().Faint(true)
	return r
}

// lead orders a symbol/name pair by the configured display form.
func (r *Renderer) lead(symbol, name string) (first, second string) {
	if r.nameFirst {
		return name, symbol
	}
	return symbol, name
}

// Dimension renders the three canonical forms of a dimension:
//
//	As is:    ML²T⁻² = mass . length² . time⁻² [kg.m².s⁻²]
//	Shortest: E = energy [J]
//	Primary:  ML²T⁻² = mass . length² . time⁻² [kg.m².s⁻²]
func (r *Renderer) Dimension(dto DimensionDTO) string {
	var b strings.Builder
	r.formLine(&b, "As is:    ", dto.AsIs)
	r.formLine(&b, "Shortest: ", dto.Shortest)
	r.formLine(&b, "Primary:  ", dto.Primary)
	return strings.TrimRight(b.String(), "\n")
}

func (r *Renderer) formLine(b *strings.Builder, label string, form FormDTO) {
	first, second := r.lead(form.Symbol, form.Name)
	fmt.Fprintf(b, "%s%s = %s %s\n",
		r.label.Render(label),
		r.value.Render(first),
		second,
		r.unit.Render("["+form.SIUnit+"]"))
}

// Unit renders a unit report followed by the report of its dimension.
func (r *Renderer) Unit(dto UnitDTO) string {
	var b strings.Builder
	b.WriteString(r.header.Render("Unit:") + "\n")
	b.WriteString(r.faint.Render("-----") + "\n")
	r.unitLine(&b, "As is:      ", dto.AsIs)
	r.unitLine(&b, "SI:         ", dto.SI)
	r.unitLine(&b, "SI primary: ", dto.SIPrimary)
	b.WriteString("\n")
	b.WriteString(r.header.Render("Dimension:") + "\n")
	b.WriteString(r.faint.Render("----------") + "\n")
	b.WriteString(r.Dimension(dto.Dimension))
	return b.String()
}

func (r *Renderer) unitLine(b *strings.Builder, label string, form UnitFormDTO) {
	first, second := r.lead(form.Symbol, form.Name)
	fmt.Fprintf(b, "%s%s = %s\n", r.label.Render(label), r.value.Render(first), second)
}

// Conversion renders a conversion result with the applied coefficients:
//
//	2 kg = 2000 g
//	(shift 0, factor 1000)
func (r *Renderer) Conversion(dto ConversionDTO) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s = %s %s\n",
		r.value.Render(formatFloat(dto.Value)),
		r.unit.Render(dto.From),
		r.value.Render(formatFloat(dto.Result)),
		r.unit.Render(dto.To))
	b.WriteString(r.faint.Render(fmt.Sprintf("(shift %s, factor %s)",
		formatFloat(dto.Shift), formatFloat(dto.Factor))))
	return b.String()
}

// Equivalents renders the search results, one composition per line.
func (r *Renderer) Equivalents(symbol string, dtos []EquivalentDTO) string {
	var b strings.Builder
	b.WriteString(r.header.Render(fmt.Sprintf("Equivalents of %s (%d found):", symbol, len(dtos))) + "\n")
	if len(dtos) == 0 {
		b.WriteString(r.faint.Render("  none within the search bounds"))
		return b.String()
	}
	for _, dto := range dtos {
		first, second := r.lead(dto.Symbol, dto.Name)
		fmt.Fprintf(&b, "  %s = %s %s\n",
			r.value.Render(first),
			second,
			r.unit.Render("["+dto.SIUnit+"]"))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Catalog renders the registry listing: dimensions with their units,
// then prefixes, then constants.
func (r *Renderer) Catalog(dto CatalogDTO) string {
	var b strings.Builder

	b.WriteString(r.header.Render("Dimensions:") + "\n")
	for _, d := range dto.Dimensions {
		kind := "derived"
		if d.Primary {
			kind = "primary"
		}
		fmt.Fprintf(&b, "  %s %s %s %s\n",
			r.value.Render(pad(d.Symbol, 4)),
			pad(d.Name, 20),
			r.faint.Render(pad(kind, 8)),
			r.unit.Render(strings.Join(d.Units, ", ")))
	}

	b.WriteString("\n" + r.header.Render("Prefixes:") + "\n")
	for _, p := range dto.Prefixes {
		fmt.Fprintf(&b, "  %s %s 10^%d\n",
			r.value.Render(pad(p.Symbol, 3)),
			pad(p.Name, 6),
			p.Exp)
	}

	b.WriteString("\n" + r.header.Render("Constants:") + "\n")
	for _, c := range dto.Constants {
		fmt.Fprintf(&b, "  %s %s = %s %s\n",
			r.value.Render(pad(c.Symbol, 4)),
			pad(c.Name, 18),
			formatFloat(c.Value),
			r.unit.Render(c.Unit))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Error renders an error message.
func (r *Renderer) Error(err error) string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8787"))
	return style.Render("error: " + err.Error())
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func pad(s string, width int) string {
	// Pad by display width; the catalog symbols include glyphs like °C
	// and Θ whose byte and rune counts misreport their terminal width.
	n := runewidth.StringWidth(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
