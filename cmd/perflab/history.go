package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"perflab/internal/ui"
)

var (
	historyKind  string
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded measurement runs, newest first",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().StringVar(&historyKind, "kind", "", "Filter by run kind (e.g. fill, repeat:whole-file)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum rows to show")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Emit runs as JSON instead of a table")
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	runs, err := s.ListRuns(historyKind, historyLimit)
	if err != nil {
		return err
	}

	if historyJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	fmt.Fprint(cmd.OutOrStdout(), ui.RenderRuns(runs))
	return nil
}
