package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/gambit/internal/engine"
)

// WriteRun atomically persists a run and, for solved runs, its
// canonical solution.
//
// Uses ON CONFLICT(fingerprint) DO NOTHING for idempotency: the search
// is deterministic, so a second run of the same instance adds nothing
// the first record does not already say. Returns the run's ID (new or
// existing) and whether a new record was inserted.
//
// A run with an empty ID is assigned a fresh uuid.
func (s *Store) WriteRun(ctx context.Context, run Run) (id string, inserted bool, err error) {
	if err := validateRun(run); err != nil {
		return "", false, fmt.Errorf("write run: %w", err)
	}

	presetsJSON, err := marshalIntColumn(run.Presets)
	if err != nil {
		return "", false, fmt.Errorf("write run: %w", err)
	}
	scorersJSON, err := marshalStringColumn(run.Scorers)
	if err != nil {
		return "", false, fmt.Errorf("write run: %w", err)
	}

	id = run.ID
	if id == "" {
		id = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", false, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Solved runs reference their solution row, so that goes first.
	// ON CONFLICT(hash) DO NOTHING keeps the first sighting.
	var solutionJSON, solutionHash any
	if run.Outcome == engine.StateSolved {
		sj, err := marshalIntColumn(run.Solution)
		if err != nil {
			return "", false, fmt.Errorf("write run: %w", err)
		}
		solutionJSON, solutionHash = sj, run.SolutionHash

		_, err = tx.ExecContext(ctx, `
			INSERT INTO solutions
			(hash, width, canonical_key, first_seen_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(hash) DO NOTHING
		`,
			run.SolutionHash,
			run.Width,
			run.CanonicalKey,
			formatTime(run.CreatedAt),
		)
		if err != nil {
			return "", false, fmt.Errorf("write run: insert solution: %w", err)
		}
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, fingerprint, width, presets, scorers, outcome,
		 solution, solution_hash,
		 nodes_visited, candidates_scored, backtracks,
		 blacklist_entries, blacklist_nodes, blacklist_bytes,
		 elapsed_ns, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO NOTHING
	`,
		id,
		run.Fingerprint,
		run.Width,
		presetsJSON,
		scorersJSON,
		string(run.Outcome),
		solutionJSON,
		solutionHash,
		run.Metrics.NodesVisited,
		run.Metrics.CandidatesScored,
		run.Metrics.Backtracks,
		run.Metrics.BlacklistEntries,
		run.Metrics.BlacklistNodes,
		run.Metrics.BlacklistBytes,
		run.Metrics.Elapsed.Nanoseconds(),
		formatTime(run.CreatedAt),
	)
	if err != nil {
		return "", false, fmt.Errorf("write run: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return "", false, fmt.Errorf("write run: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Conflict - the instance was already recorded, fetch its ID.
		err = tx.QueryRowContext(ctx, `
			SELECT id FROM runs WHERE fingerprint = ?
		`, run.Fingerprint).Scan(&id)
		if err != nil {
			return "", false, fmt.Errorf("write run: select existing: %w", err)
		}
		inserted = false
	} else {
		inserted = true
	}

	if err := tx.Commit(); err != nil {
		return "", false, fmt.Errorf("write run: commit: %w", err)
	}

	return id, inserted, nil
}

// validateRun rejects records that would violate the outcome rules
// before they reach SQL.
func validateRun(run Run) error {
	if run.Fingerprint == "" {
		return fmt.Errorf("fingerprint is empty")
	}
	if !run.Outcome.Terminal() {
		return fmt.Errorf("outcome %q is not terminal", run.Outcome)
	}
	if run.Outcome == engine.StateSolved {
		if len(run.Solution) == 0 {
			return fmt.Errorf("solved run has no solution")
		}
		if run.SolutionHash == "" {
			return fmt.Errorf("solved run has no solution hash")
		}
		if run.CanonicalKey == "" {
			return fmt.Errorf("solved run has no canonical key")
		}
	} else if run.Solution != nil || run.SolutionHash != "" {
		return fmt.Errorf("%s run carries solution data", run.Outcome)
	}
	return nil
}
