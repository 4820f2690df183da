// Package blacklist stores canonical encodings of board prefixes proven
// unsolvable, deduplicating dead branches across the search space.
//
// The store is a radix trie: edges carry compressed column-sequence
// labels, so the enormous number of keys sharing prefixes (every sibling
// branch under a common ancestor) costs one shared path instead of one
// copy per key. Fan-out per node is bounded by the board width.
//
// ARCHITECTURE:
//
// Arena Nodes:
// Nodes live in one flat slice and link to each other by index
// (first-child/next-sibling), not by pointer. At the store's expected
// scale - millions of entries on hard widths - per-node allocations and
// pointer chasing dominate; a flat arena keeps the per-entry overhead at
// a few dozen bytes and lets the host read the footprint cheaply.
//
// CRITICAL PATTERNS:
//
// Monotonic Growth:
// Entries are append-only. There is no deletion and no rebalancing;
// memory grows without bound in the worst case. That risk is accepted -
// the host watches Len/Nodes/SizeBytes and aborts when its budget is
// exceeded.
//
// Prefix Implication:
// A dead ancestor implies every descendant is dead. ContainsPrefix
// answers exactly that query, and Insert exploits it: inserting under a
// dead ancestor is a no-op, and marking a node dead makes its existing
// subtree redundant (it is kept, never walked past a dead mark).
package blacklist
