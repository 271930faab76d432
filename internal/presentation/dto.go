package presentation

import (
	"dimens/internal/constants"
	"dimens/internal/dimension"
	"dimens/internal/registry"
	"dimens/internal/unit"
)

// FormDTO is one textual form of a dimension: symbol, full name, and
// the symbol of its SI unit composition.
type FormDTO struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	SIUnit string `json:"si_unit"`
}

// DimensionDTO represents a dimension in its three canonical forms.
type DimensionDTO struct {
	AsIs          FormDTO `json:"as_is"`
	Shortest      FormDTO `json:"shortest"`
	Primary       FormDTO `json:"primary"`
	IsPrimary     bool    `json:"is_primary"`
	Dimensionless bool    `json:"dimensionless"`
}

// FromDimension converts a dimension into its presentation forms.
func FromDimension(d dimension.Dimension) DimensionDTO {
	return DimensionDTO{
		AsIs:          dimensionForm(d),
		Shortest:      dimensionForm(d.ShortestComposition()),
		Primary:       dimensionForm(d.Primary()),
		IsPrimary:     d.IsPrimary(),
		Dimensionless: d.IsDimensionless(),
	}
}

func dimensionForm(d dimension.Dimension) FormDTO {
	return FormDTO{Symbol: d.Symbol(), Name: d.Name(), SIUnit: d.SIUnit()}
}

// UnitFormDTO is one textual form of a unit.
type UnitFormDTO struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// UnitDTO represents a unit in its canonical forms together with the
// dimension it measures.
type UnitDTO struct {
	AsIs      UnitFormDTO  `json:"as_is"`
	SI        UnitFormDTO  `json:"si"`
	SIPrimary UnitFormDTO  `json:"si_primary"`
	IsSI      bool         `json:"is_si"`
	Dimension DimensionDTO `json:"dimension"`
}

// FromUnit converts a unit into its presentation forms.
func FromUnit(u unit.Unit) UnitDTO {
	return UnitDTO{
		AsIs:      unitForm(u),
		SI:        unitForm(u.EquivSI()),
		SIPrimary: unitForm(u.EquivSIPrimary()),
		IsSI:      u.IsSI(),
		Dimension: FromDimension(u.Dimension()),
	}
}

func unitForm(u unit.Unit) UnitFormDTO {
	return UnitFormDTO{Symbol: u.Symbol(), Name: u.Name()}
}

// ConversionDTO represents one completed conversion.
type ConversionDTO struct {
	Value  float64 `json:"value"`
	From   string  `json:"from"`
	Result float64 `json:"result"`
	To     string  `json:"to"`
	Shift  float64 `json:"shift"`
	Factor float64 `json:"factor"`
}

// FromConversion builds a conversion DTO from the inputs, the applied
// coefficients, and the result.
func FromConversion(value float64, from, to unit.Unit, coeffs unit.Coefficients) ConversionDTO {
	return ConversionDTO{
		Value:  value,
		From:   from.Symbol(),
		Result: coeffs.Apply(value),
		To:     to.Symbol(),
		Shift:  coeffs.Shift,
		Factor: coeffs.Factor,
	}
}

// EquivalentDTO is one equivalent composition found by the search.
type EquivalentDTO struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	SIUnit string `json:"si_unit"`
}

// FromEquivalents converts search results into DTOs.
func FromEquivalents(results []dimension.Dimension) []EquivalentDTO {
	dtos := make([]EquivalentDTO, len(results))
	for i, d := range results {
		dtos[i] = EquivalentDTO{Symbol: d.Symbol(), Name: d.Name(), SIUnit: d.SIUnit()}
	}
	return dtos
}

// CatalogEntryDTO is one dimension of the registry listing with its units.
type CatalogEntryDTO struct {
	Name    string   `json:"name"`
	Symbol  string   `json:"symbol"`
	Primary bool     `json:"primary"`
	SIUnit  string   `json:"si_unit"`
	Units   []string `json:"units"`
}

// PrefixDTO is one metric prefix of the registry listing.
type PrefixDTO struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Exp    int    `json:"exp"`
}

// ConstantDTO is one physical constant of the registry listing.
type ConstantDTO struct {
	Key    string  `json:"key"`
	Name   string  `json:"name"`
	Symbol string  `json:"symbol"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

// CatalogDTO is the full registry listing.
type CatalogDTO struct {
	Dimensions []CatalogEntryDTO `json:"dimensions"`
	Prefixes   []PrefixDTO       `json:"prefixes"`
	Constants  []ConstantDTO     `json:"constants"`
}

// FromRegistry converts the catalog into a listing DTO, dimensions in
// registry order.
func FromRegistry(reg *registry.Set) (CatalogDTO, error) {
	var out CatalogDTO

	for i := 0; i < reg.DimCount(); i++ {
		d := reg.Dim(i)
		entry := CatalogEntryDTO{
			Name:    d.Name,
			Symbol:  d.Symbol,
			Primary: i < reg.PrimaryDimCount(),
			SIUnit:  d.SIUnitSymbol,
		}
		for j := 0; j < reg.UnitCount(); j++ {
			if u := reg.Unit(j); u.Dim == i {
				entry.Units = append(entry.Units, u.Symbol)
			}
		}
		out.Dimensions = append(out.Dimensions, entry)
	}

	for _, p := range reg.Prefixes() {
		out.Prefixes = append(out.Prefixes, PrefixDTO(p))
	}

	entries, err := constants.All(reg)
	if err != nil {
		return CatalogDTO{}, err
	}
	for _, e := range entries {
		out.Constants = append(out.Constants, ConstantDTO{
			Key:    e.Key,
			Name:   e.Name,
			Symbol: e.Symbol,
			Value:  e.Quantity.Value(),
			Unit:   e.Quantity.Unit().Symbol(),
		})
	}

	return out, nil
}
