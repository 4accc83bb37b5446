// Package history persists validation runs to a local sqlite database.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/devos-project/devosctl/internal/validator"
)

// Run is a recorded validation run.
type Run struct {
	ID         string    `json:"id"`
	Root       string    `json:"root"`
	StartedAt  time.Time `json:"started_at"`
	DurationMs int64     `json:"duration_ms"`
	ChecksRun  int       `json:"checks_run"`
	Parse      int       `json:"parse_findings"`
	Schema     int       `json:"schema_findings"`
	Reference  int       `json:"reference_findings"`
	OK         bool      `json:"ok"`
}

// Findings returns the total finding count.
func (r Run) Findings() int {
	return r.Parse + r.Schema + r.Reference
}

// Store wraps the history database.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (and if needed creates) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		duration_ms INTEGER NOT NULL,
		checks_run INTEGER NOT NULL,
		parse_findings INTEGER NOT NULL DEFAULT 0,
		schema_findings INTEGER NOT NULL DEFAULT 0,
		reference_findings INTEGER NOT NULL DEFAULT 0,
		ok INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at DESC);

	CREATE TABLE IF NOT EXISTS findings (
		run_id TEXT NOT NULL,
		check_name TEXT NOT NULL,
		kind TEXT NOT NULL,
		file TEXT,
		subject TEXT,
		message TEXT NOT NULL,
		FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun persists a report and its findings.
func (s *Store) RecordRun(ctx context.Context, report *validator.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	counts := report.Counts()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root, started_at, duration_ms, checks_run,
			parse_findings, schema_findings, reference_findings, ok)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Root, report.StartedAt.UTC(), report.DurationMs,
		len(report.ChecksRun), counts[validator.KindParse],
		counts[validator.KindSchema], counts[validator.KindReference],
		boolToInt(report.OK()))
	if err != nil {
		return err
	}

	for _, f := range report.Findings {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO findings (run_id, check_name, kind, file, subject, message)
			VALUES (?, ?, ?, ?, ?, ?)
		`, report.ID, f.Check, string(f.Kind), f.File, f.Subject, f.Message)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, root, started_at, duration_ms, checks_run,
			parse_findings, schema_findings, reference_findings, ok
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ok int
		if err := rows.Scan(&r.ID, &r.Root, &r.StartedAt, &r.DurationMs,
			&r.ChecksRun, &r.Parse, &r.Schema, &r.Reference, &ok); err != nil {
			return nil, err
		}
		r.OK = ok != 0
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunFindings returns the findings recorded for one run.
func (s *Store) RunFindings(ctx context.Context, runID string) ([]validator.Finding, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT check_name, kind, file, subject, message
		FROM findings WHERE run_id = ?
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var findings []validator.Finding
	for rows.Next() {
		var f validator.Finding
		var kind string
		if err := rows.Scan(&f.Check, &kind, &f.File, &f.Subject, &f.Message); err != nil {
			return nil, err
		}
		f.Kind = validator.Kind(kind)
		findings = append(findings, f)
	}
	return findings, rows.Err()
}

// Prune deletes runs beyond the newest keep, with their findings.
func (s *Store) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}

	_, err := s.db.ExecContext(ctx, `
		DELETE FROM findings WHERE run_id IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT -1 OFFSET ?
		)
	`, keep)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		DELETE FROM runs WHERE id IN (
			SELECT id FROM runs ORDER BY started_at DESC LIMIT -1 OFFSET ?
		)
	`, keep)
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Summary formats a run as a single log-friendly line.
func (r Run) Summary() string {
	status := "ok"
	if !r.OK {
		status = fmt.Sprintf("%d finding(s)", r.Findings())
	}
	return strings.Join([]string{
		r.StartedAt.Local().Format("2006-01-02 15:04:05"),
		r.ID,
		fmt.Sprintf("%d checks", r.ChecksRun),
		status,
	}, "  ")
}
