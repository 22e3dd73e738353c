package commands

import (
	"context"
	"log/slog"
	"os"

	"perf-report/lib/aggregate"
	"perf-report/lib/benchtable"
	"perf-report/lib/commits"
	"perf-report/lib/compare"
	"perf-report/lib/configutil"
	"perf-report/lib/report"
	"perf-report/lib/serviceutil"
)

// how many rows to show at each extreme of the console summary
const summaryRows = 10

func loadScraperConfig() compare.Config {
	cfg, err := configutil.ReadConfig[compare.Config]("scraper.json5")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to read scraper config", err)
	}
	return cfg.WithDefaults()
}

// pairFetcher is the per-pair fetch surface of compare.Fetcher.
type pairFetcher interface {
	FetchPair(ctx context.Context, start, end string) ([]benchtable.Table, error)
}

// scrapePairs fetches and parses every commit pair in the commits
// file, strictly one pair at a time over a single browser session. A
// pair that raises a dialog contributes zero tables, a page timeout
// is fatal.
func scrapePairs(ctx context.Context, cfg compare.Config, commitsFile string) []benchtable.Table {
	pairs, err := commits.ReadPairs(commitsFile)
	if err != nil {
		serviceutil.Fatal("failed to read commits file", err)
	}

	fetcher, err := compare.NewFetcher(ctx, cfg)
	if err != nil {
		serviceutil.Fatal("failed to start browser session", err)
	}
	defer fetcher.Close()

	if err := fetcher.Preflight(ctx); err != nil {
		serviceutil.Fatal("comparison site preflight failed", err)
	}

	tables, err := fetchAll(ctx, fetcher, pairs)
	if err != nil {
		serviceutil.Fatal("failed to fetch comparison page", err)
	}
	return tables
}

// fetchAll walks the pairs in order. A pair with no data contributes
// nothing and the walk continues, any fetch error aborts it.
func fetchAll(ctx context.Context, fetcher pairFetcher, pairs []commits.Pair) ([]benchtable.Table, error) {
	var tables []benchtable.Table
	for _, pair := range pairs {
		slog.InfoContext(ctx, "fetching pair", "from", pair.From, "to", pair.To)

		pairTables, err := fetcher.FetchPair(ctx, pair.From, pair.To)
		if err != nil {
			return nil, err
		}

		slog.InfoContext(ctx, "parsed pair", "tables", len(pairTables))
		tables = append(tables, pairTables...)
	}
	return tables, nil
}

func writeReport(ctx context.Context, tables []benchtable.Table, outputCsv string) {
	rows := aggregate.Aggregate(ctx, tables)
	if err := report.WriteCSV(outputCsv, rows); err != nil {
		serviceutil.Fatal("failed to write report", err)
	}
	report.RenderSummary(os.Stdout, rows, summaryRows)
	slog.InfoContext(ctx, "wrote report", "rows", len(rows), "path", outputCsv)
}

func runCombined(ctx context.Context, commitsFile, outputCsv string) {
	cfg := loadScraperConfig()
	tables := scrapePairs(ctx, cfg, commitsFile)
	writeReport(ctx, tables, outputCsv)
}
