package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	cfgPath  string
	verbose  bool
	headless bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "craftmon",
	Short: "craftmon - declarative monitor dashboards for automation networks",
	Long: `craftmon renders live dashboards onto a wall of monitors.

Views declare what to show (a data fetch and a format function); the runtime
owns layout, pagination, touch handling and flicker-free rendering. Monitors
are assigned to views in craftmon.yaml and reassigned live when the file
changes.

Run without arguments to start the dashboard with the built-in simulated
peripheral bus and an interactive console.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		// The console owns the terminal; keep zap off stdout.
		config.OutputPaths = []string{"stderr"}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "craftmon.yaml", "path to the config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd.Flags().BoolVar(&headless, "headless", false, "run without the interactive console")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(viewsCmd)
	rootCmd.AddCommand(monitorsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
