package report

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cwbudde/algo-bench/measure/sweep"
)

// Store archives sweep runs in a SQLite database.
type Store struct {
	db *sql.DB
}

// OpenStore opens (or creates) the database at path and ensures the schema
// exists. Use ":memory:" for an ephemeral store.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = initSchema(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS sweep_runs (
		id           INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at   INTEGER NOT NULL,
		points       INTEGER NOT NULL,
		knee_low_hz  REAL,
		knee_high_hz REAL,
		knee_ref_db  REAL
	);
	CREATE TABLE IF NOT EXISTS sweep_rows (
		run_id    INTEGER NOT NULL REFERENCES sweep_runs(id),
		freq_hz   REAL NOT NULL,
		vrms      REAL,
		pkpk      REAL,
		thd_ratio REAL
	);
	CREATE INDEX IF NOT EXISTS idx_sweep_rows_run ON sweep_rows(run_id);`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	return nil
}

// SaveRun records a completed sweep and returns the new run id. NaN metrics
// are stored as NULL.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, res sweep.Result) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var kneeLow, kneeHigh, refDB any
	if res.Knees != nil {
		kneeLow = nullable(res.Knees.LowHz)
		kneeHigh = nullable(res.Knees.HighHz)
		refDB = nullable(res.Knees.RefDB)
	}

	row := tx.QueryRowContext(ctx,
		`INSERT INTO sweep_runs (started_at, points, knee_low_hz, knee_high_hz, knee_ref_db)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		startedAt.Unix(), len(res.Rows), kneeLow, kneeHigh, refDB)

	var runID int64

	err = row.Scan(&runID)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sweep_rows (run_id, freq_hz, vrms, pkpk, thd_ratio) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("prepare row insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range res.Rows {
		_, err = stmt.ExecContext(ctx, runID, r.FreqHz, nullable(r.Vrms), nullable(r.Vpp), nullable(r.THD))
		if err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}

	return runID, nil
}

// Rows loads the recorded rows of a run in sweep order. NULL metrics come
// back as NaN, mirroring what the sweep produced.
func (s *Store) Rows(ctx context.Context, runID int64) ([]sweep.Row, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT freq_hz, vrms, pkpk, thd_ratio FROM sweep_rows WHERE run_id = ? ORDER BY rowid`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out []sweep.Row

	for rows.Next() {
		var freq float64
		var vrms, vpp, thd sql.NullFloat64

		err = rows.Scan(&freq, &vrms, &vpp, &thd)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		out = append(out, sweep.Row{
			FreqHz: freq,
			Vrms:   orNaN(vrms),
			Vpp:    orNaN(vpp),
			THD:    orNaN(thd),
		})
	}

	return out, rows.Err()
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullable(v float64) any {
	if math.IsNaN(v) {
		return nil
	}

	return v
}

func orNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}

	return v.Float64
}
