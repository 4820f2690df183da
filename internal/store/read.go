package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/roach88/gambit/internal/engine"
)

// Every run query selects the same columns in the same order and joins
// the solutions table so solved runs come back with their canonical key.
const runSelect = `
	SELECT
		r.id, r.fingerprint, r.width, r.presets, r.scorers, r.outcome,
		r.solution, r.solution_hash, s.canonical_key,
		r.nodes_visited, r.candidates_scored, r.backtracks,
		r.blacklist_entries, r.blacklist_nodes, r.blacklist_bytes,
		r.elapsed_ns, r.created_at
	FROM runs r
	LEFT JOIN solutions s ON r.solution_hash = s.hash
`

// GetRun retrieves a single run by ID.
// Returns sql.ErrNoRows if not found.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, runSelect+`WHERE r.id = ?`, id)
	return scanRun(row)
}

// GetRunByFingerprint retrieves the run recorded for an instance
// fingerprint. Returns sql.ErrNoRows if the instance was never run
// against this store.
func (s *Store) GetRunByFingerprint(ctx context.Context, fingerprint string) (Run, error) {
	row := s.db.QueryRowContext(ctx, runSelect+`WHERE r.fingerprint = ?`, fingerprint)
	return scanRun(row)
}

// ListRuns returns runs newest first. A non-positive limit returns
// everything. Ordering is deterministic: created_at DESC, then id
// COLLATE BINARY for rows sharing a timestamp.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, runSelect+`
		ORDER BY r.created_at DESC, r.id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ListRunsByWidth returns runs for one board width, newest first.
// A non-positive limit returns everything.
func (s *Store) ListRunsByWidth(ctx context.Context, width, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, runSelect+`
		WHERE r.width = ?
		ORDER BY r.created_at DESC, r.id COLLATE BINARY ASC
		LIMIT ?
	`, width, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs by width: %w", err)
	}
	defer rows.Close()

	return collectRuns(rows)
}

// ListSolutions returns recorded canonical solutions. A positive width
// filters to that board size. Ordered by width, then key text.
func (s *Store) ListSolutions(ctx context.Context, width int) ([]Solution, error) {
	query := `
		SELECT hash, width, canonical_key, first_seen_at
		FROM solutions
		ORDER BY width ASC, canonical_key COLLATE BINARY ASC
	`
	args := []any{}
	if width > 0 {
		query = `
			SELECT hash, width, canonical_key, first_seen_at
			FROM solutions
			WHERE width = ?
			ORDER BY canonical_key COLLATE BINARY ASC
		`
		args = append(args, width)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query solutions: %w", err)
	}
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		var sol Solution
		var firstSeen string
		if err := rows.Scan(&sol.Hash, &sol.Width, &sol.CanonicalKey, &firstSeen); err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		sol.FirstSeenAt, err = parseTime(firstSeen)
		if err != nil {
			return nil, fmt.Errorf("scan solution: %w", err)
		}
		solutions = append(solutions, sol)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate solutions: %w", err)
	}

	if solutions == nil {
		solutions = []Solution{}
	}
	return solutions, nil
}

// CountRuns returns the number of recorded runs.
func (s *Store) CountRuns(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}

// rowScanner is satisfied by both sql.Row and sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run record in runSelect column order.
func scanRun(sc rowScanner) (Run, error) {
	var (
		run          Run
		presets      string
		scorers      string
		outcome      string
		solution     sql.NullString
		solutionHash sql.NullString
		canonicalKey sql.NullString
		elapsedNS    int64
		createdAt    string
	)

	err := sc.Scan(
		&run.ID,
		&run.Fingerprint,
		&run.Width,
		&presets,
		&scorers,
		&outcome,
		&solution,
		&solutionHash,
		&canonicalKey,
		&run.Metrics.NodesVisited,
		&run.Metrics.CandidatesScored,
		&run.Metrics.Backtracks,
		&run.Metrics.BlacklistEntries,
		&run.Metrics.BlacklistNodes,
		&run.Metrics.BlacklistBytes,
		&elapsedNS,
		&createdAt,
	)
	if err != nil {
		// Pass sql.ErrNoRows through untouched for callers to detect.
		if err == sql.ErrNoRows {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	run.Outcome = engine.State(outcome)
	run.Metrics.Elapsed = time.Duration(elapsedNS)

	if run.Presets, err = unmarshalIntColumn(presets); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if run.Scorers, err = unmarshalStringColumn(scorers); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if solution.Valid {
		if run.Solution, err = unmarshalIntColumn(solution.String); err != nil {
			return Run{}, fmt.Errorf("scan run: %w", err)
		}
	}
	if solutionHash.Valid {
		run.SolutionHash = solutionHash.String
	}
	if canonicalKey.Valid {
		run.CanonicalKey = canonicalKey.String
	}
	if run.CreatedAt, err = parseTime(createdAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	return run, nil
}

// collectRuns drains a runs query.
func collectRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
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

	// Return empty slice instead of nil
	if runs == nil {
		runs = []Run{}
	}
	return runs, nil
}
