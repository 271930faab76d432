package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"dimens/internal/log"
	"dimens/internal/presentation"
	"dimens/internal/registry"
	"dimens/internal/tracing"
	"dimens/internal/unit"
)

var convertCmd = &cobra.Command{
	Use:   "convert <value> <from> <to>",
	Short: "Convert a value between units",
	Long: `Convert a value from one unit to another. The units must measure the
same dimension; a mismatch in amount of substance is bridged by
molarization with the Avogadro constant.

Examples:
  dimens convert 2 kg g
  dimens convert 25 °C K
  dimens convert 1 kcal.mol^-1 J`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	value, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("bad value %q: %w", args[0], err)
	}

	reg := registry.Default()
	from, err := unit.Parse(reg, args[1])
	if err != nil {
		return err
	}
	to, err := unit.Parse(reg, args[2])
	if err != nil {
		return err
	}

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("initialising tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(cmd.Context()) }()

	coeffs, err := tracedCoefficients(cmd.Context(), provider.Tracer(), from, to)
	if err != nil {
		return err
	}

	dto := presentation.FromConversion(value, from, to, coeffs)
	if jsonOut {
		return formatter(cmd).FormatConversion(dto)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer().Conversion(dto))
	return nil
}

// tracedCoefficients computes the conversion coefficients inside a span.
func tracedCoefficients(ctx context.Context, tracer trace.Tracer, from, to unit.Unit) (unit.Coefficients, error) {
	_, span := tracer.Start(ctx, tracing.SpanConversion, trace.WithAttributes(
		attribute.String(tracing.AttrUnitSymbol, from.Symbol()),
		attribute.String(tracing.AttrTargetSymbol, to.Symbol()),
	))
	defer span.End()

	coeffs, err := from.CoefficientsTo(to)
	if err != nil {
		span.AddEvent(tracing.EventErrorOccurred)
		span.SetAttributes(attribute.String(tracing.AttrErrorMessage, err.Error()))
		return unit.Coefficients{}, err
	}

	log.Debug(log.CatConvert, "conversion coefficients computed",
		"from", from.Symbol(), "to", to.Symbol(),
		"shift", coeffs.Shift, "factor", coeffs.Factor)
	return coeffs, nil
}
