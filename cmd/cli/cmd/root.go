// Package cmd provides the CLI commands for the sub-assistant tower engine.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lcalmvr/sub-assistant-sub001/internal/config"
	"github.com/lcalmvr/sub-assistant-sub001/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sub-assistant",
	Short: "Program tower engine for underwriting quote options",
	Long: `sub-assistant is the computation core of an underwriting portal.

It models multi-layer risk-transfer programs: quota-share grouping,
attachment derivation, premium/RPM/ILF consistency, and canonical
option naming. Commands operate on tower JSON files and print the
fully recalculated result.

Examples:
  sub-assistant recalculate ./option-a.json
  sub-assistant name ./option-a.json
  sub-assistant validate ./option-a.json
  sub-assistant serve --addr :8080`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is built-in defaults)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(recalculateCmd)
	rootCmd.AddCommand(nameCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	if cfgFile != "" {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		config.Set(cfg)
	}

	cfg := config.Get()
	if verbose {
		cfg.Logging.Level = "debug"
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
	}
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("sub-assistant version 0.1.0")
	},
}
