package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"dimens/internal/config"
	"dimens/internal/log"
	"dimens/internal/presentation"
)

var (
	version = "dev"
	cfgFile string
	cfg     config.Config
	jsonOut bool
	noColor bool
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "dimens",
	Short: "Dimensional analysis and unit conversion",
	Long: `Analyse physical dimensions and units: decompose expressions into
primary dimensions, find equivalent compositions, and convert values
between units (including temperature offsets and molarization).`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/dimens/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false,
		"machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable styled output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"write debug logs to ~/.config/dimens/debug.log")
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("display.form", defaults.Display.Form)
	viper.SetDefault("display.color", defaults.Display.Color)
	viper.SetDefault("search.max_composing_dims", defaults.Search.MaxComposingDims)
	viper.SetDefault("search.max_exp", defaults.Search.MaxExp)
	viper.SetDefault("search.max_combinations", defaults.Search.MaxCombinations)
	viper.SetDefault("cache.enabled", defaults.Cache.Enabled)
	viper.SetDefault("cache.ttl", defaults.Cache.TTL)
	viper.SetDefault("tracing.enabled", defaults.Tracing.Enabled)
	viper.SetDefault("tracing.exporter", defaults.Tracing.Exporter)
	viper.SetDefault("tracing.otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	viper.SetDefault("tracing.sample_rate", defaults.Tracing.SampleRate)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .dimens/config.yaml (current directory)
		// 2. ~/.config/dimens/config.yaml (user config)
		if _, err := os.Stat(".dimens/config.yaml"); err == nil {
			viper.SetConfigFile(".dimens/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "dimens"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file is fine; defaults apply.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)
}

func setupRun(cmd *cobra.Command, args []string) error {
	if err := config.Validate(cfg); err != nil {
		return err
	}

	if debug || os.Getenv("DIMENS_DEBUG") != "" {
		home, err := os.UserHomeDir()
		if err == nil {
			logPath := filepath.Join(home, ".config", "dimens", "debug.log")
			if err := os.MkdirAll(filepath.Dir(logPath), 0o750); err == nil {
				if cleanup, err := log.Init(logPath); err == nil {
					cobra.OnFinalize(cleanup)
				}
			}
		}
	}

	return nil
}

// renderer builds the styled renderer honoring config and --no-color.
func renderer() *presentation.Renderer {
	return presentation.NewRenderer(cfg.Display.Color && !noColor, cfg.Display.Form)
}

// formatter builds the JSON formatter over the command's stdout.
func formatter(cmd *cobra.Command) *presentation.Formatter {
	return presentation.NewFormatter(cmd.OutOrStdout())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags).
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
