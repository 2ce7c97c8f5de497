package main

import (
	"context"
	"fmt"
	"log"
	"runtime"
	"time"

	"github.com/plus3/orrery/sim"
	"github.com/spf13/cobra"
)

var headlessCmd = &cobra.Command{
	Use:   "headless",
	Short: "Run the simulation without a window and print a report",
	Long: "Headless advances the simulation with a fixed step for the given simulated duration, " +
		"then prints timings, meteor counters and the final camera pose.",
	RunE: runHeadless,
}

func init() {
	headlessCmd.Flags().Duration("duration", 60*time.Second, "simulated time to run for")
	headlessCmd.Flags().Duration("dt", time.Second/60, "fixed step per tick")
	headlessCmd.Flags().Bool("realtime", false, "tick on a wall-clock ticker instead of as fast as possible")
	headlessCmd.Flags().Int("advance", 0, "focus advances to apply before the first tick (negative retreats)")
}

func runHeadless(cmd *cobra.Command, args []string) error {
	duration, _ := cmd.Flags().GetDuration("duration")
	dt, _ := cmd.Flags().GetDuration("dt")
	realtime, _ := cmd.Flags().GetBool("realtime")
	advance, _ := cmd.Flags().GetInt("advance")
	if dt <= 0 || duration <= 0 {
		return fmt.Errorf("headless: --dt and --duration must be positive")
	}

	s, cfg, err := newSimulation()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	startMetrics(ctx, s, cfg.Metrics.Addr)

	for ; advance > 0; advance-- {
		s.Push(sim.FocusAdvance)
	}
	for ; advance < 0; advance++ {
		s.Push(sim.FocusRetreat)
	}

	report := &Report{
		Duration: duration,
		Step:     dt,
		Seed:     cfg.Simulation.Seed,
		Bodies:   s.Registry().Len(),
		Realtime: realtime,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("running %s of simulated time in %s steps", duration, dt)
	startTime := time.Now()
	if realtime {
		runCtx, stop := context.WithTimeout(ctx, duration)
		s.Scheduler().Run(runCtx, dt)
		stop()
	} else {
		report.TickTime.Samples = runFixed(s, duration, dt)
	}
	report.TotalTime = time.Since(startTime)
	runtime.ReadMemStats(&report.MemStatsEnd)

	fillResults(report, s)
	log.Println("simulation finished")

	fmt.Fprintln(cmd.OutOrStdout(), "\n--- Orrery Report ---")
	if err := report.Generate(cmd.OutOrStdout()); err != nil {
		return fmt.Errorf("generating report: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "--- End of Report ---")
	return nil
}

// runFixed steps until the clock reaches duration and returns per-tick
// wall times.
func runFixed(s *sim.Simulation, duration, dt time.Duration) []time.Duration {
	ticks := int(duration / dt)
	samples := make([]time.Duration, 0, ticks)
	for range ticks {
		start := time.Now()
		s.Step(dt.Seconds())
		samples = append(samples, time.Since(start))
	}
	return samples
}

func fillResults(r *Report, s *sim.Simulation) {
	r.TickTime.Finalize()
	stats := s.Scheduler().GetStats()
	r.TotalTicks = stats.Frames
	r.Systems = stats.Systems
	r.Clock = s.Clock()
	r.Meteors = s.Meteors()
	r.Label = s.Label()
	r.Pose = s.Pose()
}
