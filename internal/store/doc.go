// Package store provides SQLite-backed run history.
//
// The store is an append-only log with:
//   - Runs: one record per search instance, keyed by content fingerprint
//   - Solutions: canonical solutions deduplicated across runs
//
// # Critical Patterns
//
// Fingerprint-Level Idempotency
//   - UNIQUE(fingerprint) constraint on runs
//   - Re-solving an identical instance never duplicates history; the
//     search is deterministic, so the stored outcome already covers it
//
// Deterministic Query Results
//   - List queries order by created_at, then id COLLATE BINARY
//   - Ensures identical listings across processes
//
// Canonical Columns
//   - presets, scorers and solution are stored as RFC 8785 canonical
//     JSON so stored text can be compared and re-hashed byte for byte
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Fingerprints and solution hashes are computed by internal/canon using
// RFC 8785 canonical JSON and SHA-256 with domain separation.
package store
