package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perflab/internal/haversine"
	"perflab/internal/profiler"
)

var haversineProfile bool

var haversineCmd = &cobra.Command{
	Use:   "haversine FILE",
	Short: "Compute the average haversine distance over a generated input",
	Args:  cobra.ExactArgs(1),
	RunE:  runHaversine,
}

func init() {
	rootCmd.AddCommand(haversineCmd)
	haversineCmd.Flags().BoolVar(&haversineProfile, "profile", false, "Print per-stage timings")
}

func runHaversine(cmd *cobra.Command, args []string) error {
	profiler.Reset()

	size, count, avg, err := haversine.AverageFile(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Input size: %d\n", size)
	fmt.Fprintf(out, "Pair count: %d\n", count)
	fmt.Fprintf(out, "Haversine average: %.16f\n", avg)

	if haversineProfile {
		fmt.Fprintln(out)
		profiler.Report(out)
	}
	return nil
}
