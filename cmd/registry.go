package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dimens/internal/presentation"
	"dimens/internal/registry"
)

var registryCmd = &cobra.Command{
	Use:     "registry",
	Aliases: []string{"catalog", "list"},
	Short:   "List the dimension and unit catalog",
	Long: `List every dimension with its units, the metric prefixes, and the
physical constants the engine knows about.`,
	Args: cobra.NoArgs,
	RunE: runRegistry,
}

func init() {
	rootCmd.AddCommand(registryCmd)
}

func runRegistry(cmd *cobra.Command, args []string) error {
	dto, err := presentation.FromRegistry(registry.Default())
	if err != nil {
		return err
	}

	if jsonOut {
		return formatter(cmd).FormatCatalog(dto)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer().Catalog(dto))
	return nil
}
