// Package board models an N×N chessboard filled one queen per row.
//
// The board is the structural foundation of the solver - it validates
// placements, tracks attacked cells, and produces the canonical encodings
// used to deduplicate symmetric branches.
//
// ARCHITECTURE:
//
// Incremental Row Filling:
// A board starts empty except for preset queens fixed at construction.
// The search layer fills the remaining rows in ascending order, one queen
// per row, and unwinds them in reverse via Undo. Preset queens are never
// unwound.
//
// Attack Tracking:
// Every cell carries a per-direction attack counter (horizontal, vertical,
// principal diagonal, anti-diagonal). Place increments the counters along
// all four rays through the new queen; Undo decrements them. Counters make
// Place/Undo exact inverses even where rays overlap, so legality is a
// single cell lookup.
//
// CRITICAL PATTERNS:
//
// Fill-Order Keys:
// The raw key of a position is the sequence of placed columns in fill
// order: presets by ascending row first, then search placements in the
// order they happened. Placing a queen appends exactly one element, so
// key-prefix relations coincide with ancestor relations in the search
// tree even when presets occupy middle rows.
//
// Symmetry Groups by Placement Pattern:
// Partial boards canonicalize over {identity, column mirror} only - the
// two transforms that commute with row-prefix extension. Complete boards
// canonicalize over the full dihedral group of the square (8 transforms).
// Applying the full group to a partial, row-ordered board would merge
// prefixes with different completion sets and prune real solutions.
package board
