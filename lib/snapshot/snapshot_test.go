package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"perf-report/lib/benchtable"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var testTables = []benchtable.Table{
	{
		Name: "compile",
		Results: []benchtable.Result{
			{
				Name: "ripgrep-13.0.0", Profile: "opt", Scenario: "full",
				Backend: "llvm", Target: "x86_64",
				Change: 2.57, SignificanceThreshold: 0.21,
				SignificanceFactor: 12.23,
				BeforeRaw:          1000000, AfterRaw: 1025700,
			},
			{
				Name: "syn-2.0.15", Profile: "debug", Scenario: "incr-unchanged",
				Backend: "llvm", Target: "x86_64",
				Change: -0.46, SignificanceThreshold: 1.0,
				SignificanceFactor: 0.46,
				BeforeRaw:          200, AfterRaw: 150,
			},
		},
	},
	{
		Name: "runtime",
		Results: []benchtable.Result{
			{
				Name: "hashmap-insert", Profile: "opt", Scenario: "full",
				Backend: "llvm", Target: "x86_64",
				Change: 0.11, SignificanceThreshold: 0.5,
				SignificanceFactor: 0.22,
				BeforeRaw:          42, AfterRaw: 43,
			},
		},
	},
}

func TestSnapshotRoundTrip(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testTables))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testTables, loaded))
}

func TestSnapshotFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testTables))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testTables, loaded))
}

func TestSaveReplacesPreviousSnapshot(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, testTables))

	latest := []benchtable.Table{{
		Name: "compile",
		Results: []benchtable.Result{
			{Name: "only", Profile: "opt", Scenario: "full", Backend: "llvm", Target: "x86_64"},
		},
	}}
	require.NoError(t, store.Save(ctx, latest))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(latest, loaded))
}

func TestOpenExistingRefusesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.db")

	_, err := OpenExisting(path)
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))

	// no empty snapshot is fabricated on disk
	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr))
}

func TestOpenExistingReadsSavedSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.db")
	ctx := context.Background()

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, testTables))
	require.NoError(t, store.Close())

	existing, err := OpenExisting(path)
	require.NoError(t, err)
	defer existing.Close()

	loaded, err := existing.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, cmp.Diff(testTables, loaded))
}

func TestLoadEmptySnapshot(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, loaded)
}
