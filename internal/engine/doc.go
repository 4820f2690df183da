// Package engine implements the best-first backtracking search.
//
// The engine orchestrates the three structural dependencies: it asks the
// board for legal moves, discards moves leading into blacklisted
// branches, ranks the survivors with the score registry, and expands the
// best one. When a position has no viable moves its canonical key is
// recorded in the blacklist and the engine backtracks.
//
// ARCHITECTURE:
//
// Explicit State Machine:
// Root -> Expanding -> Backtrack -> {Solved, Exhausted, Cancelled}.
// Control flow is a loop over a tagged state, not recursion. Backtrack
// points and cancellation checkpoints are explicit, observable states.
//
// Single-Threaded Traversal:
// One goroutine owns the board, the blacklist and the registry for the
// whole run. There is no internal parallelism; scorer invocation is
// synchronous. All run state lives in the Engine value, never in
// package globals, so independent runs coexist safely.
//
// CRITICAL PATTERNS:
//
// Deterministic Selection:
// Candidates are enumerated in ascending column order and ranked by
// composite score with a strict greater-than comparison, so ties keep
// the smallest column. Identical inputs always produce identical runs.
//
// No Already-Tried Set:
// After backtracking, the abandoned branch is excluded from
// re-expansion only because its key is now blacklisted. The blacklist
// is both the dedup structure and the sole memory of past failures.
//
// Cooperative Cancellation:
// The context is polled once per state step, between row transitions,
// never mid-placement. A cancelled run reports StateCancelled with the
// board and blacklist in a consistent state.
package engine
