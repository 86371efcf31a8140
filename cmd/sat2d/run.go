package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/setanarut/sat2d"
	"github.com/setanarut/sat2d/internal/config"
	"github.com/setanarut/sat2d/internal/storage"
)

var (
	flagSteps      int
	flagDT         float64
	flagIterations int
	flagRecord     bool
	flagEvery      int
	flagSVG        string
	flagDrawFlags  uint
)

var runCmd = &cobra.Command{
	Use:   "run <scene|file>",
	Short: "Simulate a scene",
	Long: `Builds the world described by a built-in scene or a YAML file and steps it.

The run parameters default to the scene's own; the flags override them.
With --record, the body states are stored in the trace database every --every steps.
With --svg, the final frame is written as an SVG image.

Examples:
  sat2d run drop
  sat2d run newton --steps 1200 --iterations 8
  sat2d run stack --record --every 10
  sat2d run pendulum --svg pendulum.svg --draw 15`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagSteps, "steps", 0, "Number of steps (0 = scene default)")
	runCmd.Flags().Float64Var(&flagDT, "dt", 0, "Step length in seconds (0 = scene default)")
	runCmd.Flags().IntVar(&flagIterations, "iterations", 0, "Substeps per step (0 = scene default)")
	runCmd.Flags().BoolVar(&flagRecord, "record", false, "Record body states in the trace database")
	runCmd.Flags().IntVar(&flagEvery, "every", 1, "Record every n-th step")
	runCmd.Flags().StringVar(&flagSVG, "svg", "", "Write the final frame to this SVG file")
	runCmd.Flags().UintVar(&flagDrawFlags, "draw", sat2d.DrawShapes|sat2d.DrawConstraints|sat2d.DrawCollisionPoints, "Draw flags for --svg")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	scene, err := config.Load(args[0])
	if err != nil {
		return err
	}
	if flagSteps > 0 {
		scene.Run.Steps = flagSteps
	}
	if flagDT > 0 {
		scene.Run.DT = flagDT
	}
	if flagIterations > 0 {
		scene.Run.Iterations = flagIterations
	}

	w, ids, err := scene.Build(logger)
	if err != nil {
		return err
	}
	names := make(map[sat2d.BodyID]string, len(ids))
	for name, id := range ids {
		names[id] = name
	}

	var rec *recorder
	if flagRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return err
		}
		defer store.Close()

		runID, err := store.BeginRun(scene.Name, scene.Run.DT, scene.Run.Iterations)
		if err != nil {
			return err
		}
		rec = &recorder{store: store, runID: runID, every: max(flagEvery, 1), names: names}
		logger.Info("recording run", "run", runID, "db", flagDBPath)
	}

	logger.Info("running scene", "scene", scene.Name, "steps", scene.Run.Steps, "dt", scene.Run.DT, "iterations", scene.Run.Iterations)

	step := 0
	for step < scene.Run.Steps {
		if err := ctx.Err(); err != nil {
			logger.Warn("run interrupted", "step", step)
			break
		}
		w.Update(scene.Run.DT, scene.Run.Iterations)
		step++
		if rec != nil {
			if err := rec.record(w, step); err != nil {
				return err
			}
		}
	}

	logger.Info("run finished", "scene", scene.Name, "steps", step, "bodies", w.BodyCount(), "contacts", len(w.Contacts()))
	fmt.Println(sat2d.DebugInfo(w))

	if flagSVG != "" {
		f, err := os.Create(flagSVG)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", flagSVG, err)
		}
		d := newSVGDrawer(viewport(w), flagDrawFlags)
		sat2d.DrawWorld(w, d)
		if _, err := d.WriteTo(f); err != nil {
			f.Close()
			return fmt.Errorf("cannot write %s: %w", flagSVG, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
		logger.Info("frame written", "file", flagSVG)
	}
	return nil
}

// recorder stores body states of a running world.
type recorder struct {
	store *storage.Store
	runID int64
	every int
	names map[sat2d.BodyID]string
	buf   []storage.BodyState
}

func (r *recorder) record(w *sat2d.World, step int) error {
	if step%r.every != 0 {
		return nil
	}
	r.buf = r.buf[:0]
	w.EachBody(func(b *sat2d.Body) {
		name, ok := r.names[b.ID()]
		if !ok {
			name = b.ID().String()
		}
		p, v := b.Position(), b.Velocity()
		r.buf = append(r.buf, storage.BodyState{
			Step:            step,
			Body:            name,
			X:               p.X,
			Y:               p.Y,
			Angle:           b.Angle(),
			VX:              v.X,
			VY:              v.Y,
			AngularVelocity: b.AngularVelocity(),
		})
	})
	return r.store.RecordStep(r.runID, step, r.buf)
}
