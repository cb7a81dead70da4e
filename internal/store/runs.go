package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

var (
	// ErrRunNotFound is returned by ReadRun for an unknown ID.
	ErrRunNotFound = errors.New("run not found")

	// ErrMissingID is returned by RecordRun when Run.ID is empty.
	ErrMissingID = errors.New("run id is required")
)

// Run is one recorded application of a table to a document.
type Run struct {
	ID           string `json:"id"`
	Seq          int64  `json:"seq"`
	Path         string `json:"path"`
	TableDigest  string `json:"table_digest"`
	InputSHA256  string `json:"input_sha256"`
	OutputSHA256 string `json:"output_sha256"`
	Replacements int    `json:"replacements"`
	Passes       []Pass `json:"passes,omitempty"`
}

// Pass is a table entry that replaced at least one occurrence in a run.
type Pass struct {
	Index int    `json:"index"`
	Match string `json:"match"`
	Count int    `json:"count"`
}

// RecordRun appends run to the ledger and returns it with Seq assigned.
// Passes with a zero count are skipped. A second run with the same ID
// fails.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		return Run{}, fmt.Errorf("record run: %w", ErrMissingID)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("record run: next seq: %w", err)
	}
	run.Seq = seq

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, path, table_digest, input_sha256, output_sha256, replacements)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Seq,
		run.Path,
		run.TableDigest,
		run.InputSHA256,
		run.OutputSHA256,
		run.Replacements,
	)
	if err != nil {
		return Run{}, fmt.Errorf("record run: %w", err)
	}

	var kept []Pass
	for _, p := range run.Passes {
		if p.Count <= 0 {
			continue
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_passes (run_id, pass_index, match_text, count)
			VALUES (?, ?, ?, ?)
		`, run.ID, p.Index, p.Match, p.Count)
		if err != nil {
			return Run{}, fmt.Errorf("record run: pass %d: %w", p.Index, err)
		}
		kept = append(kept, p)
	}
	run.Passes = kept

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("record run: commit: %w", err)
	}
	return run, nil
}

// ReadRun returns one run with its passes.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, path, table_digest, input_sha256, output_sha256, replacements
		FROM runs
		WHERE id = ?
	`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", id, err)
	}

	run.Passes, err = s.readPasses(ctx, id)
	if err != nil {
		return Run{}, err
	}
	return run, nil
}

// ListRuns returns recorded runs oldest first. A non-empty path restricts
// the listing to that document. Passes are not loaded.
//
// Returns an empty slice (not nil) when nothing matches.
func (s *Store) ListRuns(ctx context.Context, path string) ([]Run, error) {
	query := `
		SELECT id, seq, path, table_digest, input_sha256, output_sha256, replacements
		FROM runs
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
	args := []any{}
	if path != "" {
		query = `
		SELECT id, seq, path, table_digest, input_sha256, output_sha256, replacements
		FROM runs
		WHERE path = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`
		args = append(args, path)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (s *Store) readPasses(ctx context.Context, runID string) ([]Pass, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT pass_index, match_text, count
		FROM run_passes
		WHERE run_id = ?
		ORDER BY pass_index ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query passes: %w", err)
	}
	defer rows.Close()

	passes := []Pass{}
	for rows.Next() {
		var p Pass
		if err := rows.Scan(&p.Index, &p.Match, &p.Count); err != nil {
			return nil, fmt.Errorf("scan pass: %w", err)
		}
		passes = append(passes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate passes: %w", err)
	}
	return passes, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.Path,
		&run.TableDigest,
		&run.InputSHA256,
		&run.OutputSHA256,
		&run.Replacements,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	return run, nil
}
