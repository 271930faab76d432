package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dimens/internal/registry"
	"dimens/internal/ui/playground"
)

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Interactive expression evaluator",
	Long: `Launch an interactive session for evaluating dimension and unit
expressions, conversions, and equivalents searches.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}

func runPlayground(cmd *cobra.Command, args []string) error {
	model := playground.New(registry.Default(), cfg)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
