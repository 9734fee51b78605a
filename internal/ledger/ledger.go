// Package ledger keeps a SQLite record of runs and their per-sample
// outcomes, so repeated batches over the same samples can be compared.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Run is one invocation of the tool.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	OK         int
	StopCodon  int
	Failed     int
}

// SampleResult is one sample's row within a run.
type SampleResult struct {
	RunID      string
	SampleID   string
	Mode       string
	Status     string
	Kind       string
	MitoContig string
	Contig     string
	Start0     int
	End        int
	Strand     string
	Score      float64
	Error      string
}

type Store struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("ledger path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveRun records a run and all its sample rows in one transaction.
// Saving the same run id again replaces its rows.
func (s *Store) SaveRun(ctx context.Context, run Run, results []SampleResult) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, finished_at, ok, stop_codon, failed)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			ok = excluded.ok,
			stop_codon = excluded.stop_codon,
			failed = excluded.failed
	`, run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.OK, run.StopCodon, run.Failed); err != nil {
		return fmt.Errorf("save run %s: %w", run.ID, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sample_results WHERE run_id = ?`, run.ID); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sample_results
			(run_id, sample_id, mode, status, kind, mito_contig, contig, start0, end_pos, strand, score, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, r := range results {
		if _, err := stmt.ExecContext(ctx, run.ID, r.SampleID, r.Mode, r.Status, r.Kind, r.MitoContig,
			r.Contig, r.Start0, r.End, r.Strand, r.Score, r.Error); err != nil {
			return fmt.Errorf("save result %s/%s: %w", run.ID, r.SampleID, err)
		}
	}
	return tx.Commit()
}

// GetRun returns the run with id, if recorded.
func (s *Store) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}
	var (
		r                 Run
		started, finished string
	)
	err = db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at, ok, stop_codon, failed FROM runs WHERE id = ?`, id,
	).Scan(&r.ID, &started, &finished, &r.OK, &r.StopCodon, &r.Failed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}
	if r.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return Run{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return Run{}, false, fmt.Errorf("decode run %s: %w", id, err)
	}
	return r, true, nil
}

// Results lists the sample rows of a run ordered by sample id.
func (s *Store) Results(ctx context.Context, runID string) ([]SampleResult, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, `
		SELECT run_id, sample_id, mode, status, kind, mito_contig, contig, start0, end_pos, strand, score, error
		FROM sample_results
		WHERE run_id = ?
		ORDER BY sample_id ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SampleResult
	for rows.Next() {
		var r SampleResult
		if err := rows.Scan(&r.RunID, &r.SampleID, &r.Mode, &r.Status, &r.Kind, &r.MitoContig,
			&r.Contig, &r.Start0, &r.End, &r.Strand, &r.Score, &r.Error); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, errors.New("ledger is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	started_at TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	ok INTEGER NOT NULL,
	stop_codon INTEGER NOT NULL,
	failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS sample_results (
	run_id TEXT NOT NULL,
	sample_id TEXT NOT NULL,
	mode TEXT NOT NULL,
	status TEXT NOT NULL,
	kind TEXT NOT NULL,
	mito_contig TEXT NOT NULL,
	contig TEXT NOT NULL,
	start0 INTEGER NOT NULL,
	end_pos INTEGER NOT NULL,
	strand TEXT NOT NULL,
	score REAL NOT NULL,
	error TEXT NOT NULL,
	PRIMARY KEY (run_id, sample_id),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_sample_results_sample ON sample_results(sample_id);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}
