package aggregate

import (
	"context"
	"slices"
	"strings"

	"perf-report/lib/benchtable"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("perfreport.lib.aggregate")

const keySeparator = "::"

// Key identifies one aggregation bucket: every result whose table,
// benchmark, profile and scenario names match contributes to the same
// bucket.
type Key struct {
	Table     string
	Benchmark string
	Profile   string
	Scenario  string
}

func (k Key) String() string {
	return strings.Join(
		[]string{k.Table, k.Benchmark, k.Profile, k.Scenario},
		keySeparator,
	)
}

// Row is one row of the final report. It is only ever built from at
// least one sample.
type Row struct {
	Key          Key
	SumChange    float64
	SumRawChange float64
}

type samples struct {
	changes    []float64
	rawChanges []float64
}

// Aggregate groups every result of every table by its composite key,
// sums the change and raw-change sequences per key, and returns the
// rows sorted ascending by summed change so the extremes surface the
// most-improved and most-regressed benchmarks.
func Aggregate(ctx context.Context, tables []benchtable.Table) []Row {
	_, span := tracer.Start(ctx, "Aggregate")
	defer span.End()

	acc := map[Key]*samples{}
	for _, table := range tables {
		for _, result := range table.Results {
			key := Key{
				Table:     table.Name,
				Benchmark: result.Name,
				Profile:   result.Profile,
				Scenario:  result.Scenario,
			}
			s, ok := acc[key]
			if !ok {
				s = &samples{}
				acc[key] = s
			}
			s.changes = append(s.changes, result.Change)
			s.rawChanges = append(s.rawChanges, result.RawChange())
		}
	}

	rows := make([]Row, 0, len(acc))
	for key, s := range acc {
		if len(s.changes) == 0 {
			continue
		}
		rows = append(rows, Row{
			Key:          key,
			SumChange:    sum(s.changes),
			SumRawChange: sum(s.rawChanges),
		})
	}

	slices.SortFunc(rows, func(a, b Row) int {
		if a.SumChange < b.SumChange {
			return -1
		}
		if a.SumChange > b.SumChange {
			return 1
		}
		return strings.Compare(a.Key.String(), b.Key.String())
	})

	span.SetAttributes(attribute.Int("rows", len(rows)))
	return rows
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
