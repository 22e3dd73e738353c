// Package snapshot persists parsed benchmark tables to a local sqlite
// file so the aggregation step can be iterated on without re-scraping.
// The file layout is an implementation detail, the only contract is
// that Load returns exactly what Save was given.
package snapshot

import (
	"context"
	"database/sql"
	"os"

	"perf-report/lib/benchtable"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS bench_table (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	position INTEGER NOT NULL,
	name TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bench_result (
	table_id INTEGER NOT NULL REFERENCES bench_table(id),
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	profile TEXT NOT NULL,
	scenario TEXT NOT NULL,
	backend TEXT NOT NULL,
	target TEXT NOT NULL,
	change REAL NOT NULL,
	significance_threshold REAL NOT NULL,
	significance_factor REAL NOT NULL,
	before_raw REAL NOT NULL,
	after_raw REAL NOT NULL
);
`

type Store struct {
	db *sql.DB
}

func Open(path string) (Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return Store{}, err
	}
	// sqlite allows one writer, and a single connection keeps
	// :memory: stores coherent in tests
	db.SetMaxOpenConns(1)

	_, err = db.Exec(schema)
	if err != nil {
		db.Close()
		return Store{}, err
	}
	return Store{db: db}, nil
}

// OpenExisting opens a snapshot file that must already exist. Unlike
// Open it never creates one, so a mistyped path fails instead of
// reading back an empty snapshot.
func OpenExisting(path string) (Store, error) {
	_, err := os.Stat(path)
	if err != nil {
		return Store{}, err
	}
	return Open(path)
}

func (s Store) Close() error {
	return s.db.Close()
}

// Save replaces the snapshot's contents with the given tables. A
// snapshot file holds exactly one snapshot.
func (s Store) Save(ctx context.Context, tables []benchtable.Table) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM bench_result`)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM bench_table`)
	if err != nil {
		return err
	}

	for tablePos, table := range tables {
		res, err := tx.ExecContext(
			ctx,
			`INSERT INTO bench_table (position, name) VALUES (?, ?)`,
			tablePos, table.Name,
		)
		if err != nil {
			return err
		}
		tableId, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for resultPos, result := range table.Results {
			_, err := tx.ExecContext(
				ctx,
				`INSERT INTO bench_result (
					table_id, position,
					name, profile, scenario, backend, target,
					change, significance_threshold, significance_factor,
					before_raw, after_raw
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				tableId, resultPos,
				result.Name, result.Profile, result.Scenario,
				result.Backend, result.Target,
				result.Change, result.SignificanceThreshold,
				result.SignificanceFactor,
				result.BeforeRaw, result.AfterRaw,
			)
			if err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Load reads the persisted tables back in their original order.
func (s Store) Load(ctx context.Context) ([]benchtable.Table, error) {
	type storedTable struct {
		id   int64
		name string
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, name FROM bench_table ORDER BY position`,
	)
	if err != nil {
		return nil, err
	}
	var stored []storedTable
	for rows.Next() {
		var t storedTable
		err := rows.Scan(&t.id, &t.name)
		if err != nil {
			rows.Close()
			return nil, err
		}
		stored = append(stored, t)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var tables []benchtable.Table
	for _, t := range stored {
		results, err := s.loadResults(ctx, t.id)
		if err != nil {
			return nil, err
		}
		tables = append(tables, benchtable.Table{
			Name:    t.name,
			Results: results,
		})
	}
	return tables, nil
}

func (s Store) loadResults(ctx context.Context, tableId int64) ([]benchtable.Result, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT
			name, profile, scenario, backend, target,
			change, significance_threshold, significance_factor,
			before_raw, after_raw
		FROM bench_result WHERE table_id = ? ORDER BY position`,
		tableId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []benchtable.Result
	for rows.Next() {
		var r benchtable.Result
		err := rows.Scan(
			&r.Name, &r.Profile, &r.Scenario, &r.Backend, &r.Target,
			&r.Change, &r.SignificanceThreshold, &r.SignificanceFactor,
			&r.BeforeRaw, &r.AfterRaw,
		)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
