package report

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"perf-report/lib/aggregate"

	"github.com/jedib0t/go-pretty/v6/table"
)

// WriteCSV writes the aggregated rows to a semicolon-separated file,
// overwriting any previous report.
func WriteCSV(path string, rows []aggregate.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	err = w.Write([]string{"Benchmark", "SumChange", "SumRawChange"})
	if err != nil {
		return err
	}
	for _, row := range rows {
		err := w.Write([]string{
			row.Key.String(),
			formatTotal(row.SumChange),
			formatTotal(row.SumRawChange),
		})
		if err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func formatTotal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderSummary prints the n most-improved and n most-regressed
// benchmarks. Rows are expected in ascending summed-change order, the
// order Aggregate produces.
func RenderSummary(w io.Writer, rows []aggregate.Row, n int) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Benchmark", "SumChange", "SumRawChange"})

	shown := map[int]bool{}
	appendRow := func(i int) {
		if shown[i] {
			return
		}
		shown[i] = true
		t.AppendRow(table.Row{
			rows[i].Key.String(),
			formatTotal(rows[i].SumChange),
			formatTotal(rows[i].SumRawChange),
		})
	}

	for i := 0; i < n && i < len(rows); i++ {
		appendRow(i)
	}
	for i := len(rows) - n; i < len(rows); i++ {
		if i >= 0 {
			appendRow(i)
		}
	}

	t.Render()
}
