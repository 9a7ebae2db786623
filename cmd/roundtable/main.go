// roundtable: multi-agent peer review orchestrator.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"roundtable/internal/logging"
)

var (
	logger *zap.Logger

	flagConfig      string
	flagOutput      string
	flagConcurrency int
	flagNoCache     bool
	flagDebug       bool
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "roundtable",
	Short: "Multi-agent peer review for scientific manuscripts",
	Long: `roundtable coordinates a fleet of specialized reviewer agents, each
backed by a language model, and funnels their reviews through a coordinator
and an editor to produce a final editorial decision.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(logging.Options{Debug: flagDebug})
		if err != nil {
			return fmt.Errorf("initialize logging: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "roundtable.yaml", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	reviewCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output directory (overrides config)")
	reviewCmd.Flags().IntVar(&flagConcurrency, "concurrency", 0, "max concurrent agent calls (overrides config)")
	reviewCmd.Flags().BoolVar(&flagNoCache, "no-cache", false, "disable the result cache for this run")

	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(agentsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
