// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists completed conversion runs in SQLite and exports
// them as YAML or JSON.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/barbaragodoy/markdowngo/internal/batch"
	"github.com/barbaragodoy/markdowngo/pkg/types"
)

const dbFile = "history.db"

// ErrNotFound is returned when a run id is not in the store.
var ErrNotFound = errors.New("run not found")

// Store manages the history SQLite database.
type Store struct {
	db  *sql.DB
	dir string
}

// NewStore opens or creates dir/history.db and its schema.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dir: cfg.Dir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Dir returns the directory holding the database and exports.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			status TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			markdown TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS run_files (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			format TEXT,
			size INTEGER,
			success INTEGER NOT NULL,
			error TEXT,
			kind TEXT,
			warnings TEXT,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE TABLE IF NOT EXISTS run_events (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			id TEXT NOT NULL,
			timestamp TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_run_events_severity ON run_events(severity)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rep with its files and events in one transaction. Recording
// the same run id again replaces the earlier copy.
func (s *Store) Record(ctx context.Context, rep batch.Report) error {
	if rep.ID == "" {
		return errors.New("recording run: empty run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, rep.ID); err != nil {
		return fmt.Errorf("deleting previous run: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, status, started_at, finished_at, succeeded, failed, markdown)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rep.ID, string(rep.Status), formatTime(rep.StartedAt), formatTime(rep.FinishedAt),
		rep.Succeeded(), rep.Failed(), rep.Markdown,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	fileStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_files (run_id, position, name, format, size, success, error, kind, warnings)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing file insert: %w", err)
	}
	defer fileStmt.Close()

	for i, f := range rep.Files {
		warningsJSON, _ := json.Marshal(f.Result.Warnings)
		_, err := fileStmt.ExecContext(ctx,
			rep.ID, i, f.Name, string(f.Format), f.Size, f.Result.Success,
			f.Result.Error, string(f.Result.Kind), string(warningsJSON),
		)
		if err != nil {
			return fmt.Errorf("inserting file %s: %w", f.Name, err)
		}
	}

	eventStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_events (run_id, position, id, timestamp, severity, message)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing event insert: %w", err)
	}
	defer eventStmt.Close()

	for i, e := range rep.Events {
		_, err := eventStmt.ExecContext(ctx,
			rep.ID, i, e.ID, formatTime(e.Timestamp), string(e.Severity), e.Message,
		)
		if err != nil {
			return fmt.Errorf("inserting event %s: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// RunSummary is one row of the run listing.
type RunSummary struct {
	ID         string            `json:"id" yaml:"id"`
	Status     types.BatchStatus `json:"status" yaml:"status"`
	StartedAt  time.Time         `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time         `json:"finished_at" yaml:"finished_at"`
	Succeeded  int               `json:"succeeded" yaml:"succeeded"`
	Failed     int               `json:"failed" yaml:"failed"`
}

// List returns up to limit runs, most recent first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, status, started_at, finished_at, succeeded, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			r                 RunSummary
			status            string
			started, finished string
		)
		if err := rows.Scan(&r.ID, &status, &started, &finished, &r.Succeeded, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Status = types.BatchStatus(status)
		r.StartedAt = parseTime(started)
		r.FinishedAt = parseTime(finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Get loads the full report of run id.
func (s *Store) Get(ctx context.Context, id string) (batch.Report, error) {
	var (
		rep               batch.Report
		status            string
		started, finished string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, status, started_at, finished_at, markdown FROM runs WHERE id = ?`, id,
	).Scan(&rep.ID, &status, &started, &finished, &rep.Markdown)
	if errors.Is(err, sql.ErrNoRows) {
		return batch.Report{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return batch.Report{}, fmt.Errorf("loading run %s: %w", id, err)
	}
	rep.Status = types.BatchStatus(status)
	rep.StartedAt = parseTime(started)
	rep.FinishedAt = parseTime(finished)

	if rep.Files, err = s.files(ctx, id); err != nil {
		return batch.Report{}, err
	}
	if rep.Events, err = s.Events(ctx, id); err != nil {
		return batch.Report{}, err
	}
	return rep, nil
}

func (s *Store) files(ctx context.Context, runID string) ([]batch.FileResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, format, size, success, error, kind, warnings
		 FROM run_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading files: %w", err)
	}
	defer rows.Close()

	var out []batch.FileResult
	for rows.Next() {
		var (
			f                              batch.FileResult
			format, errMsg, kind, warnings sql.NullString
			size                           sql.NullInt64
		)
		if err := rows.Scan(&f.Name, &format, &size, &f.Result.Success, &errMsg, &kind, &warnings); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Format = types.Format(format.String)
		f.Size = int(size.Int64)
		f.Result.Error = errMsg.String
		f.Result.Kind = types.ErrorKind(kind.String)
		if warnings.String != "" {
			_ = json.Unmarshal([]byte(warnings.String), &f.Result.Warnings)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// Events returns the log events of run id in emission order.
func (s *Store) Events(ctx context.Context, runID string) ([]types.LogEvent, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, timestamp, severity, message
		 FROM run_events WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading events: %w", err)
	}
	defer rows.Close()

	var out []types.LogEvent
	for rows.Next() {
		var (
			e                   types.LogEvent
			timestamp, severity string
		)
		if err := rows.Scan(&e.ID, &timestamp, &severity, &e.Message); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		e.Timestamp = parseTime(timestamp)
		e.Severity = types.Severity(severity)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Delete removes run id with its files and events.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// timeLayout is fixed width so stored timestamps sort lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}
