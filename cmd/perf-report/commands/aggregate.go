package commands

import (
	"perf-report/lib/serviceutil"
	"perf-report/lib/snapshot"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(aggregateCmd)
}

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <snapshot_file> <output_csv>",
	Short: "Aggregates a previously downloaded snapshot into a CSV report.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		snapshotFile := args[0]
		outputCsv := args[1]

		store, err := snapshot.OpenExisting(snapshotFile)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot file", err)
		}
		defer store.Close()

		tables, err := store.Load(ctx)
		if err != nil {
			serviceutil.Fatal("failed to load snapshot", err)
		}

		writeReport(ctx, tables, outputCsv)
	},
}
