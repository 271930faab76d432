package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dimens/internal/config"
	"dimens/internal/dimension"
	"dimens/internal/presentation"
	"dimens/internal/registry"
	"dimens/internal/tracing"
)

var (
	equivMaxDims         int
	equivMaxExp          int
	equivMaxCombinations int
	equivSaveBounds      bool
)

var equivCmd = &cobra.Command{
	Use:   "equiv <expression>",
	Short: "Find equivalent dimension compositions",
	Long: `Search the catalog for alternative compositions with the same primary
decomposition as the given dimension. The search solves one linear
system per combination of seven dimensions and keeps the integral
solutions within the configured bounds.

Examples:
  dimens equiv F
  dimens equiv E --max-dims 3
  dimens equiv P --max-combinations 1000`,
	Args: cobra.ExactArgs(1),
	RunE: runEquiv,
}

func init() {
	rootCmd.AddCommand(equivCmd)

	equivCmd.Flags().IntVar(&equivMaxDims, "max-dims", 0,
		"max dimensions per composition (default from config)")
	equivCmd.Flags().IntVar(&equivMaxExp, "max-exp", 0,
		"exclusive bound on exponent magnitude (default from config)")
	equivCmd.Flags().IntVar(&equivMaxCombinations, "max-combinations", 0,
		"cap on examined combinations, 0 = exhaustive (default from config)")
	equivCmd.Flags().BoolVar(&equivSaveBounds, "save-bounds", false,
		"persist the effective bounds to the config file")
}

func runEquiv(cmd *cobra.Command, args []string) error {
	d, err := dimension.Parse(registry.Default(), args[0])
	if err != nil {
		return err
	}

	bounds := effectiveBounds(cmd)
	opts := dimension.EquivalentsOptions{
		MaxComposingDims: bounds.MaxComposingDims,
		MaxExp:           bounds.MaxExp,
		MaxCombinations:  bounds.MaxCombinations,
	}

	provider, err := tracing.NewProvider(cfg.Tracing.Provider())
	if err != nil {
		return fmt.Errorf("initialising tracing: %w", err)
	}
	defer func() { _ = provider.Shutdown(cmd.Context()) }()

	searcher := dimension.NewSearcher(provider.Tracer(), cfg.Cache.TTL, !cfg.Cache.Enabled)
	results := searcher.Equivalents(cmd.Context(), d, opts)

	if equivSaveBounds {
		if err := config.SaveSearch(configFilePath(), bounds); err != nil {
			return fmt.Errorf("saving search bounds: %w", err)
		}
	}

	dtos := presentation.FromEquivalents(results)
	if jsonOut {
		return formatter(cmd).FormatEquivalents(dtos)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer().Equivalents(d.Symbol(), dtos))
	return nil
}

// effectiveBounds overlays explicitly-set flags on the configured bounds.
func effectiveBounds(cmd *cobra.Command) config.SearchConfig {
	bounds := cfg.Search
	if cmd.Flags().Changed("max-dims") {
		bounds.MaxComposingDims = equivMaxDims
	}
	if cmd.Flags().Changed("max-exp") {
		bounds.MaxExp = equivMaxExp
	}
	if cmd.Flags().Changed("max-combinations") {
		bounds.MaxCombinations = equivMaxCombinations
	}
	return bounds
}

// configFilePath returns the loaded config file, or the local default
// when none was read.
func configFilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return ".dimens/config.yaml"
}
