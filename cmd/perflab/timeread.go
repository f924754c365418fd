package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"perflab/internal/clock"
)

// ticksNow allows mocking the clock in tests.
var ticksNow clock.Source = clock.Ticks

var timereadCmd = &cobra.Command{
	Use:   "timeread",
	Short: "Read the monotonic clock once and print the raw tick value",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ticksNow == nil {
			return fmt.Errorf("no tick source configured")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Time is %d\n", ticksNow())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(timereadCmd)
}
