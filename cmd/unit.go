package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"dimens/internal/presentation"
	"dimens/internal/registry"
	"dimens/internal/unit"
)

var unitCmd = &cobra.Command{
	Use:   "unit <expression>",
	Short: "Analyse a unit expression",
	Long: `Parse a dotted unit expression and report its SI and primary-SI
equivalents together with the dimension it measures.

Examples:
  dimens unit kcal
  dimens unit kg.m^2.s^-2
  dimens unit "cm.s^-1"`,
	Args: cobra.ExactArgs(1),
	RunE: runUnit,
}

func init() {
	rootCmd.AddCommand(unitCmd)
}

func runUnit(cmd *cobra.Command, args []string) error {
	u, err := unit.Parse(registry.Default(), args[0])
	if err != nil {
		return err
	}

	dto := presentation.FromUnit(u)
	if jsonOut {
		return formatter(cmd).FormatUnit(dto)
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderer().Unit(dto))
	return nil
}
