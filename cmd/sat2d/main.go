// sat2d runs 2-D rigid body scenes headless.
//
// Usage:
//
//	sat2d scenes               - List built-in scenes
//	sat2d run <scene|file>     - Simulate a scene, optionally recording and rendering it
//	sat2d runs                 - List recorded runs or print a body track
//
// Global flags:
//
//	--log-level <level>  - debug, info, warn or error (default: info)
//	--log-json           - Log as JSON
//	--db <path>          - Trace database path (default: ~/.sat2d/traces.db)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagLogLevel string
	flagLogJSON  bool
	flagDBPath   string

	logger *log.Logger
)

// shutdownSignals cancel the root context; a running scene stops at the next step.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), shutdownSignals...)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sat2d",
	Short: "sat2d - headless 2-D rigid body simulation",
	Long: `sat2d builds worlds from YAML scenes and steps them without a window.

Available commands:
  scenes   - Show the built-in scenes
  run      - Simulate a scene
  runs     - Inspect recorded runs

Examples:
  sat2d scenes
  sat2d run drop --steps 300 --svg drop.svg
  sat2d run ./my-scene.yaml --record
  sat2d runs --run 3 --body ball`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		opts := log.Options{
			Level:           level,
			ReportTimestamp: true,
			Prefix:          "sat2d",
		}
		if flagLogJSON {
			opts.Formatter = log.JSONFormatter
		}
		logger = log.NewWithOptions(os.Stderr, opts)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagLogJSON, "log-json", false, "Log as JSON")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sat2d/traces.db", "Path to the trace database")

	rootCmd.AddCommand(scenesCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(runsCmd)
}
