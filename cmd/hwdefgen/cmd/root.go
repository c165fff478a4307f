package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/OpenTraceLab/hwdefgen/internal/config"
	"github.com/OpenTraceLab/hwdefgen/internal/logging"
	"github.com/OpenTraceLab/hwdefgen/pkg/hwdef"
)

var (
	// Global flags
	verbose    bool
	logLevel   string
	configFile string

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "hwdefgen",
	Short: "Radio hardware definition generator",
	Long: `Resolve the #define symbols of a radio hardware header into a model of
its switches and ADC inputs, and render firmware sources from that model.

Examples:
  hwdefgen defines hal.defines > hal.json                 # Resolve a defines file
  hwdefgen render -t hal_adc_inputs.inc.jinja hal.json     # Render a template
  hwdefgen info hal.defines                                # Show a summary`,
	Version:           "0.9.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
}

func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configFile)
	if err != nil {
		return err
	}
	cfg = loaded

	level := cfg.LogLevel
	if logLevel != "" {
		level = logLevel
	}
	if verbose {
		level = "debug"
	}
	logging.InitWriter(cmd.ErrOrStderr(), logging.ParseLevel(level))
	return nil
}

// resolveOptions returns the resolver options for the loaded config.
func resolveOptions() hwdef.Options {
	opts := cfg.ResolveOptions()
	opts.Logger = &log.Logger
	return opts
}
