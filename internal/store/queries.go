package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Timestamps are stored as RFC3339 strings in UTC. sqlite has no native
// time type, and scanning expressions like COALESCE or MAX into time.Time
// fails once the declared column affinity is lost, so every read scans a
// string and parses it.

// BeginRun inserts a new run row and returns its ID.
func (s *Store) BeginRun(startedAt time.Time, dryRun bool) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (started_at, dry_run) VALUES (?, ?)`,
		startedAt.UTC().Format(time.RFC3339), dryRun,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// FinishRun fills in the final counters of a run.
func (s *Store) FinishRun(run *Run) error {
	_, err := s.db.Exec(
		`UPDATE runs
		 SET finished_at = ?, scanned = ?, kept = ?, removed = ?, errors = ?, bytes_freed = ?
		 WHERE id = ?`,
		run.FinishedAt.UTC().Format(time.RFC3339),
		run.Scanned, run.Kept, run.Removed, run.Errors, run.BytesFreed, run.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish run %d: %w", run.ID, err)
	}
	return nil
}

// GetRun returns a single run by ID.
func (s *Store) GetRun(id int64) (*Run, error) {
	row := s.db.QueryRow(
		`SELECT id, started_at, COALESCE(finished_at, started_at),
		        scanned, kept, removed, errors, bytes_freed, dry_run
		 FROM runs WHERE id = ?`, id,
	)

	run := &Run{}
	var startedAt, finishedAt string
	err := row.Scan(&run.ID, &startedAt, &finishedAt,
		&run.Scanned, &run.Kept, &run.Removed, &run.Errors, &run.BytesFreed, &run.DryRun)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %d: %w", id, err)
	}

	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at for run %d: %w", id, err)
	}
	run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse finished_at for run %d: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first, up to limit.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	rows, err := s.db.Query(
		`SELECT id, started_at, COALESCE(finished_at, started_at),
		        scanned, kept, removed, errors, bytes_freed, dry_run
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &startedAt, &finishedAt,
			&run.Scanned, &run.Kept, &run.Removed, &run.Errors, &run.BytesFreed, &run.DryRun); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse started_at for run %d: %w", run.ID, err)
		}
		run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at for run %d: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// InsertRemoval records the outcome of one deletion attempt.
func (s *Store) InsertRemoval(r *Removal) error {
	_, err := s.db.Exec(
		`INSERT INTO removals (run_id, path, size_bytes, age_days, reason, success)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Path, r.SizeBytes, r.AgeDays, r.Reason, r.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to insert removal for %s: %w", r.Path, err)
	}
	return nil
}

// ListRemovals returns the removals recorded for a run, in insertion order.
func (s *Store) ListRemovals(runID int64) ([]*Removal, error) {
	rows, err := s.db.Query(
		`SELECT id, run_id, path, size_bytes, age_days, COALESCE(reason, ''), success
		 FROM removals WHERE run_id = ? ORDER BY id`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list removals: %w", err)
	}
	defer rows.Close()

	var removals []*Removal
	for rows.Next() {
		r := &Removal{}
		if err := rows.Scan(&r.ID, &r.RunID, &r.Path, &r.SizeBytes, &r.AgeDays, &r.Reason, &r.Success); err != nil {
			return nil, fmt.Errorf("failed to scan removal: %w", err)
		}
		removals = append(removals, r)
	}
	return removals, rows.Err()
}

// InsertActivityEvent records one watcher observation.
func (s *Store) InsertActivityEvent(e *ActivityEvent) error {
	_, err := s.db.Exec(
		`INSERT INTO activity_events (path, op, observed_at) VALUES (?, ?, ?)`,
		e.Path, e.Op, e.ObservedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity event for %s: %w", e.Path, err)
	}
	return nil
}

// CountActivitySince returns per-path activity event counts observed at or
// after the given time.
func (s *Store) CountActivitySince(since time.Time) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT path, COUNT(*) FROM activity_events
		 WHERE observed_at >= ? GROUP BY path ORDER BY path`,
		since.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count activity: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var path string
		var count int
		if err := rows.Scan(&path, &count); err != nil {
			return nil, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[path] = count
	}
	return counts, rows.Err()
}

// LastActivity returns the newest observation time per path.
func (s *Store) LastActivity() (map[string]time.Time, error) {
	rows, err := s.db.Query(
		`SELECT path, MAX(observed_at) FROM activity_events GROUP BY path`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query last activity: %w", err)
	}
	defer rows.Close()

	last := make(map[string]time.Time)
	for rows.Next() {
		var path, observedAt string
		if err := rows.Scan(&path, &observedAt); err != nil {
			return nil, fmt.Errorf("failed to scan last activity: %w", err)
		}
		at, err := time.Parse(time.RFC3339, observedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse observed_at for %s: %w", path, err)
		}
		last[path] = at
	}
	return last, rows.Err()
}
