package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles machine-readable output formatting.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatDimension formats a dimension report as JSON.
func (f *Formatter) FormatDimension(dto DimensionDTO) error {
	return f.encode(dto)
}

// FormatUnit formats a unit report as JSON.
func (f *Formatter) FormatUnit(dto UnitDTO) error {
	return f.encode(dto)
}

// FormatConversion formats a conversion result as JSON.
func (f *Formatter) FormatConversion(dto ConversionDTO) error {
	return f.encode(dto)
}

// FormatEquivalents formats a list of equivalent compositions as JSON.
func (f *Formatter) FormatEquivalents(dtos []EquivalentDTO) error {
	return f.encode(dtos)
}

// FormatCatalog formats the registry listing as JSON.
func (f *Formatter) FormatCatalog(dto CatalogDTO) error {
	return f.encode(dto)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
