package aggregate

import (
	"context"
	"testing"

	"perf-report/lib/benchtable"
	"perf-report/lib/telemetry"

	"github.com/stretchr/testify/require"
)

func TestKeyString(t *testing.T) {
	key := Key{
		Table:     "compile",
		Benchmark: "foo",
		Profile:   "opt",
		Scenario:  "full",
	}
	require.Equal(t, "compile::foo::opt::full", key.String())
}

func TestAggregateSumsPerKey(t *testing.T) {
	cleanup := telemetry.SetupForTesting(t, "test:aggregate")
	defer cleanup()

	tables := []benchtable.Table{
		{
			Name: "compile",
			Results: []benchtable.Result{
				{
					Name: "foo", Profile: "opt", Scenario: "full",
					Change: 2.0, BeforeRaw: 0, AfterRaw: 100,
				},
			},
		},
		{
			Name: "compile",
			Results: []benchtable.Result{
				{
					Name: "foo", Profile: "opt", Scenario: "full",
					Change: -1.0, BeforeRaw: 0, AfterRaw: 50,
				},
			},
		},
	}

	rows := Aggregate(context.Background(), tables)
	require.Len(t, rows, 1)
	require.Equal(t, "compile::foo::opt::full", rows[0].Key.String())
	require.InDelta(t, 1.0, rows[0].SumChange, 1e-9)
	require.InDelta(t, 150.0, rows[0].SumRawChange, 1e-9)
}

func TestAggregateSortsByChange(t *testing.T) {
	tables := []benchtable.Table{
		{
			Name: "compile",
			Results: []benchtable.Result{
				{Name: "slow", Profile: "opt", Scenario: "full", Change: 5.0},
				{Name: "fast", Profile: "opt", Scenario: "full", Change: -3.0},
				{Name: "mid", Profile: "opt", Scenario: "full", Change: 0.5},
			},
		},
	}

	rows := Aggregate(context.Background(), tables)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		require.LessOrEqual(t, rows[i-1].SumChange, rows[i].SumChange)
	}
	require.Equal(t, "fast", rows[0].Key.Benchmark)
	require.Equal(t, "slow", rows[2].Key.Benchmark)
}

func TestAggregateSeparatesKeys(t *testing.T) {
	tables := []benchtable.Table{
		{
			Name: "compile",
			Results: []benchtable.Result{
				{Name: "foo", Profile: "opt", Scenario: "full", Change: 1.0},
				{Name: "foo", Profile: "debug", Scenario: "full", Change: 1.0},
				{Name: "foo", Profile: "opt", Scenario: "incr-full", Change: 1.0},
			},
		},
		{
			Name: "runtime",
			Results: []benchtable.Result{
				{Name: "foo", Profile: "opt", Scenario: "full", Change: 1.0},
			},
		},
	}

	rows := Aggregate(context.Background(), tables)
	require.Len(t, rows, 4)
}

func TestAggregateEmpty(t *testing.T) {
	require.Empty(t, Aggregate(context.Background(), nil))
	require.Empty(t, Aggregate(context.Background(), []benchtable.Table{{Name: "compile"}}))
}
