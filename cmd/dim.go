package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dimens/internal/dimension"
	"dimens/internal/presentation"
	"dimens/internal/registry"
)

var dimCmd = &cobra.Command{
	Use:   "dim <expression>",
	Short: "Analyse a dimension expression",
	Long: `Parse a dotted dimension expression and report its three canonical
forms: as given, its shortest composition, and its primary decomposition.

Examples:
  dimens dim E
  dimens dim M.L^2.T^-2
  dimens dim "force.length"`,
	Args: cobra.ExactArgs(1),
	RunE: runDim,
}

func init() {
	rootCmd.AddCommand(dimCmd)
}

func runDim(cmd *cobra.Command, args []string) error {
	d, err := dimension.Parse(registry.Default(), args[0])
	if err != nil {
		return err
	}

	dto := presentation.FromDimension(d)
	if jsonOut {
		return formatter(cmd).FormatDimension(dto)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer().Dimension(dto))
	return nil
}
