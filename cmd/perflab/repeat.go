package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"perflab/internal/clock"
	"perflab/internal/notify"
	"perflab/internal/reptest"
	"perflab/internal/store"
	"perflab/internal/ui"
)

var (
	repeatDuration  time.Duration
	repeatSave      bool
	repeatNotify    bool
	repeatThreshold float64
)

var repeatCmd = &cobra.Command{
	Use:   "repeat FILE",
	Short: "Repeatedly read a file and report min/max/avg throughput",
	Long: `Reads FILE over and over with each read strategy until the time
budget runs out, keeping the fastest, slowest and average trial along with
page-fault counts. With --save each strategy's averages are recorded in
history; with --notify a drop against the stored baseline beyond the
threshold raises an alert.`,
	Args: cobra.ExactArgs(1),
	RunE: runRepeat,
}

func init() {
	rootCmd.AddCommand(repeatCmd)
	repeatCmd.Flags().DurationVar(&repeatDuration, "duration", 0, "Time budget per strategy (default from config)")
	repeatCmd.Flags().BoolVar(&repeatSave, "save", false, "Record each strategy's run in history")
	repeatCmd.Flags().BoolVar(&repeatNotify, "notify", false, "Alert when throughput regresses against history")
	repeatCmd.Flags().Float64Var(&repeatThreshold, "threshold", 0, "Regression threshold in percent (default from config)")
}

func runRepeat(cmd *cobra.Command, args []string) error {
	path := args[0]

	size, err := reptest.FileSize(path)
	if err != nil {
		return err
	}

	budget := repeatDuration
	if budget <= 0 {
		budget = viper.GetDuration("repeat.duration")
	}
	threshold := repeatThreshold
	if threshold <= 0 {
		threshold = viper.GetFloat64("repeat.threshold")
	}

	var st store.Store
	if repeatSave || repeatNotify {
		st, err = openStore()
		if err != nil {
			return err
		}
		defer st.Close()
	}

	var notifier notify.Notifier = notify.Noop{}
	if repeatNotify {
		notifier, err = notify.NewSlackNotifier()
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	scratch := make([]byte, size)

	for i, strat := range reptest.ReadStrategies() {
		if i > 0 {
			fmt.Fprintln(out)
		}

		tester := reptest.New(reptest.Config{
			Duration:      budget,
			ExpectedBytes: size,
			Progress:      cmd.ErrOrStderr(),
		})

		for tester.NextTrial() {
			tester.BeginTimed()
			n, err := strat.Run(path, scratch)
			tester.EndTimed()
			if err != nil {
				return fmt.Errorf("%s: %w", strat.Name, err)
			}
			tester.CountBytes(n)
		}
		if err := tester.Err(); err != nil {
			return err
		}

		sum := tester.Summary()
		fmt.Fprint(out, ui.RenderSummary(strat.Name, sum))

		kind := "repeat:" + strat.Name
		avg := sum.Avg()
		elapsed := clock.ToDuration(avg.Ticks)
		mbps := 0.0
		if elapsed > 0 {
			mbps = float64(avg.Bytes) / (1 << 20) / elapsed.Seconds()
		}

		metrics.ObserveRun(kind, sum.Total.Trials, mbps, clock.ToDuration(sum.Total.Ticks))

		if repeatNotify {
			if err := checkRegression(cmd, st, notifier, kind, path, mbps, threshold); err != nil {
				return err
			}
		}

		if repeatSave {
			if _, err := st.SaveRun(store.Run{
				Kind:           kind,
				Label:          path,
				Bytes:          int64(avg.Bytes),
				ElapsedNs:      elapsed.Nanoseconds(),
				ThroughputMBps: mbps,
				PageFaults:     int64(avg.PageFaults),
				Trials:         int64(sum.Total.Trials),
				CreatedAt:      time.Now().UTC(),
			}); err != nil {
				return fmt.Errorf("saving run: %w", err)
			}
		}
	}

	return nil
}

// checkRegression compares the current throughput against the newest stored
// run of the same kind and alerts when the drop exceeds the threshold.
func checkRegression(cmd *cobra.Command, st store.Store, notifier notify.Notifier,
	kind, path string, mbps, threshold float64) error {

	prev, err := st.LatestRun(kind)
	if err != nil {
		return fmt.Errorf("loading baseline: %w", err)
	}
	if prev == nil || prev.ThroughputMBps <= 0 || mbps >= prev.ThroughputMBps {
		return nil
	}

	drop := (prev.ThroughputMBps - mbps) / prev.ThroughputMBps * 100
	if drop <= threshold {
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), ui.RenderRegression(kind, prev.ThroughputMBps, mbps, drop))

	msg := fmt.Sprintf("perflab: %s throughput dropped %.1f%% (%.2f -> %.2f MB/s) reading %s",
		kind, drop, prev.ThroughputMBps, mbps, path)
	if err := notifier.Notify(cmd.Context(), msg); err != nil {
		slog.Error("Failed to send notification", "error", err)
	}
	return nil
}
