package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/setanarut/sat2d/internal/storage"
)

var (
	flagRunID int64
	flagBody  string
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded runs or print a body track",
	Long: `Without flags, lists the most recent runs in the trace database.
With --run and --body, prints the recorded states of one body.

Examples:
  sat2d runs
  sat2d runs --run 3 --body ball`,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().Int64Var(&flagRunID, "run", 0, "Run ID to inspect")
	runsCmd.Flags().StringVar(&flagBody, "body", "", "Body name to print the track of")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of runs to list")
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunID != 0 {
		if flagBody == "" {
			return errors.New("--run needs --body")
		}
		return printTrack(store, flagRunID, flagBody)
	}

	runs, err := store.Runs(flagLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'sat2d run <scene> --record' to record one.")
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-10s  %-6s  %s\n", "ID", "Scene", "dt", "Iterations", "Steps", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-10s  %-6s  %s\n", "--", "-----", "--", "----------", "-----", "----")
	for _, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-8.4f  %-10d  %-6d  %s\n",
			r.ID, r.Scene, r.DT, r.Iterations, r.Steps, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printTrack(store *storage.Store, runID int64, body string) error {
	track, err := store.Track(runID, body)
	if err != nil {
		return err
	}
	if len(track) == 0 {
		return fmt.Errorf("no states for body %q in run %d", body, runID)
	}

	fmt.Printf("  %-6s  %10s  %10s  %8s  %10s  %10s  %8s\n", "Step", "x", "y", "angle", "vx", "vy", "omega")
	for _, st := range track {
		fmt.Printf("  %-6d  %10.3f  %10.3f  %8.4f  %10.3f  %10.3f  %8.4f\n",
			st.Step, st.X, st.Y, st.Angle, st.VX, st.VY, st.AngularVelocity)
	}
	return nil
}
