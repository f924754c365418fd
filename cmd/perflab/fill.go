package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"perflab/internal/clock"
	"perflab/internal/membuf"
	"perflab/internal/reptest"
	"perflab/internal/store"
	"perflab/internal/ui"
)

var (
	fillRepeat   int
	fillDuration time.Duration
	fillSave     bool
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Allocate a 1 MiB buffer and write every byte of it",
	Long: `Allocates a fresh 1 MiB buffer and writes the low byte of each offset
into it, in increasing order. With --repeat the allocation and fill run
multiple times and the reported throughput covers all of them. With
--duration the fill runs under the repetition tester for that long and the
fastest, slowest and average round are reported.`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	fillCmd.Flags().IntVar(&fillRepeat, "repeat", 1, "Number of allocate-and-fill rounds")
	fillCmd.Flags().DurationVar(&fillDuration, "duration", 0, "Run under the repetition tester for this long")
	fillCmd.Flags().BoolVar(&fillSave, "save", false, "Record the run in history")
}

func runFill(cmd *cobra.Command, args []string) error {
	if fillDuration > 0 {
		return runFillTested(cmd)
	}
	if fillRepeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", fillRepeat)
	}

	start := clock.Ticks()
	for i := 0; i < fillRepeat; i++ {
		buf, err := membuf.Alloc(membuf.BufferSize)
		if err != nil {
			return err
		}
		membuf.Fill(buf)
		metrics.ObserveFill(len(buf))
	}
	elapsed := clock.ToDuration(clock.Ticks() - start)

	totalBytes := uint64(membuf.BufferSize) * uint64(fillRepeat)
	mbps := 0.0
	if elapsed > 0 {
		mbps = float64(totalBytes) / (1 << 20) / elapsed.Seconds()
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Filled %d MiB in %.4fms (%.2f MB/s)\n",
		fillRepeat, elapsed.Seconds()*1_000, mbps)

	if fillSave {
		return saveFillRun(store.Run{
			Kind:           "fill",
			Label:          fmt.Sprintf("%d MiB", fillRepeat),
			Bytes:          int64(totalBytes),
			ElapsedNs:      elapsed.Nanoseconds(),
			ThroughputMBps: mbps,
			Trials:         int64(fillRepeat),
		})
	}
	return nil
}

// runFillTested runs allocate-and-fill rounds under the repetition tester
// until the --duration budget runs out.
func runFillTested(cmd *cobra.Command) error {
	tester := reptest.New(reptest.Config{
		Duration:      fillDuration,
		ExpectedBytes: membuf.BufferSize,
		Progress:      cmd.ErrOrStderr(),
	})

	for tester.NextTrial() {
		tester.BeginTimed()
		buf, err := membuf.Alloc(membuf.BufferSize)
		if err != nil {
			return err
		}
		membuf.Fill(buf)
		tester.EndTimed()
		tester.CountBytes(uint64(len(buf)))
		metrics.ObserveFill(len(buf))
	}
	if err := tester.Err(); err != nil {
		return err
	}

	sum := tester.Summary()
	fmt.Fprint(cmd.OutOrStdout(), ui.RenderSummary("fill 1 MiB", sum))

	avg := sum.Avg()
	elapsed := clock.ToDuration(avg.Ticks)
	mbps := 0.0
	if elapsed > 0 {
		mbps = float64(avg.Bytes) / (1 << 20) / elapsed.Seconds()
	}
	metrics.ObserveRun("fill", sum.Total.Trials, mbps, clock.ToDuration(sum.Total.Ticks))

	if fillSave {
		return saveFillRun(store.Run{
			Kind:           "fill",
			Label:          "1 MiB",
			Bytes:          int64(avg.Bytes),
			ElapsedNs:      elapsed.Nanoseconds(),
			ThroughputMBps: mbps,
			PageFaults:     int64(avg.PageFaults),
			Trials:         int64(sum.Total.Trials),
		})
	}
	return nil
}

func saveFillRun(run store.Run) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	run.CreatedAt = time.Now().UTC()
	id, err := s.SaveRun(run)
	if err != nil {
		return fmt.Errorf("saving run: %w", err)
	}
	slog.Info("Run saved", "kind", run.Kind, "id", id)
	return nil
}
