package commands

import (
	"log/slog"

	"perf-report/lib/serviceutil"
	"perf-report/lib/snapshot"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <commits_file> <snapshot_file>",
	Short: "Scrapes every commit pair and persists the parsed tables to a snapshot file.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		commitsFile := args[0]
		snapshotFile := args[1]

		cfg := loadScraperConfig()
		tables := scrapePairs(ctx, cfg, commitsFile)

		store, err := snapshot.Open(snapshotFile)
		if err != nil {
			serviceutil.Fatal("failed to open snapshot file", err)
		}
		defer store.Close()

		if err := store.Save(ctx, tables); err != nil {
			serviceutil.Fatal("failed to save snapshot", err)
		}
		slog.InfoContext(ctx, "saved snapshot", "tables", len(tables), "path", snapshotFile)
	},
}
