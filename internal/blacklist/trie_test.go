package blacklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/gambit/internal/board"
)

// ============================================================
// Membership semantics
// ============================================================

func TestTrie_Empty(t *testing.T) {
	tr := NewTrie()
	assert.False(t, tr.ContainsPrefix(board.Key{0}))
	assert.False(t, tr.ContainsPrefix(board.Key{}))
	assert.Zero(t, tr.Len())
	assert.Equal(t, 1, tr.Nodes(), "arena starts with the root")
}

func TestTrie_InsertExactMatch(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1, 3, 0})

	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0}))
	assert.Equal(t, 1, tr.Len())
}

func TestTrie_PrefixImplication(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1, 3})

	// Every extension of a dead key is implicitly dead.
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0}))
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0, 2}))
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3}))

	// Strict ancestors and siblings are not.
	assert.False(t, tr.ContainsPrefix(board.Key{1}))
	assert.False(t, tr.ContainsPrefix(board.Key{1, 2}))
	assert.False(t, tr.ContainsPrefix(board.Key{2, 3}))
}

func TestTrie_AncestorNotImpliedByDescendant(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1, 3, 0})

	// The key ends inside the edge; only the full node is dead.
	assert.False(t, tr.ContainsPrefix(board.Key{1}))
	assert.False(t, tr.ContainsPrefix(board.Key{1, 3}))
}

func TestTrie_Insert_Idempotent(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{2, 0})
	entries, nodes := tr.Len(), tr.Nodes()

	tr.Insert(board.Key{2, 0})
	assert.Equal(t, entries, tr.Len())
	assert.Equal(t, nodes, tr.Nodes())
}

func TestTrie_Insert_UnderDeadAncestorIsNoop(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1})
	entries, nodes := tr.Len(), tr.Nodes()

	tr.Insert(board.Key{1, 3, 0})
	assert.Equal(t, entries, tr.Len(), "descendant of a dead key adds nothing")
	assert.Equal(t, nodes, tr.Nodes())
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0}))
}

func TestTrie_Insert_EmptyKeyKillsEverything(t *testing.T) {
	// The root itself can be proven dead (a run with no solution under
	// the presets exhausts the root's candidates).
	tr := NewTrie()
	tr.Insert(board.Key{})

	assert.True(t, tr.ContainsPrefix(board.Key{}))
	assert.True(t, tr.ContainsPrefix(board.Key{0}))
	assert.True(t, tr.ContainsPrefix(board.Key{3, 1, 4}))
	assert.Equal(t, 1, tr.Len())
}

// ============================================================
// Radix compression
// ============================================================

func TestTrie_SharedPrefixCompression(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1, 3, 0, 2})
	require.Equal(t, 2, tr.Nodes(), "one compressed edge for the whole key")

	tr.Insert(board.Key{1, 3, 2, 0})
	// Split produces: root -> [1,3] -> {[0,2], [2,0]}.
	assert.Equal(t, 4, tr.Nodes())
	assert.Equal(t, 2, tr.Len())

	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0, 2}))
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 2, 0}))
	assert.False(t, tr.ContainsPrefix(board.Key{1, 3}))
	assert.False(t, tr.ContainsPrefix(board.Key{1, 3, 1}))
}

func TestTrie_Insert_ShorterKeyCoarsensBranch(t *testing.T) {
	tr := NewTrie()
	tr.Insert(board.Key{1, 3, 0})
	tr.Insert(board.Key{1})

	assert.True(t, tr.ContainsPrefix(board.Key{1}))
	assert.True(t, tr.ContainsPrefix(board.Key{1, 2}), "coarser dead key covers siblings")
	assert.True(t, tr.ContainsPrefix(board.Key{1, 3, 0}))
	assert.Equal(t, 2, tr.Len())
}

func TestTrie_SiblingOrderIndependent(t *testing.T) {
	// Lookup behavior must not depend on insertion order of siblings.
	forward := NewTrie()
	forward.Insert(board.Key{0, 2})
	forward.Insert(board.Key{0, 5})
	forward.Insert(board.Key{0, 4})

	backward := NewTrie()
	backward.Insert(board.Key{0, 4})
	backward.Insert(board.Key{0, 5})
	backward.Insert(board.Key{0, 2})

	for _, probe := range []board.Key{{0, 2}, {0, 4}, {0, 5}, {0, 3}, {0}} {
		assert.Equal(t, forward.ContainsPrefix(probe), backward.ContainsPrefix(probe), "probe %v", probe)
	}
}

// ============================================================
// Monotonicity and metrics
// ============================================================

func TestTrie_MonotonicMembership(t *testing.T) {
	tr := NewTrie()
	keys := []board.Key{{1, 3}, {2, 0, 3}, {0}, {1, 2, 2}}

	for i, key := range keys {
		tr.Insert(key)
		// Everything inserted so far stays a member.
		for j := 0; j <= i; j++ {
			assert.True(t, tr.ContainsPrefix(keys[j]), "key %v lost after inserting %v", keys[j], key)
		}
	}
}

func TestTrie_Metrics_GrowMonotonically(t *testing.T) {
	tr := NewTrie()
	lastNodes, lastBytes := tr.Nodes(), tr.SizeBytes()

	for _, key := range []board.Key{{1, 3, 0, 2}, {1, 3, 2}, {4, 0}, {1}} {
		tr.Insert(key)
		assert.GreaterOrEqual(t, tr.Nodes(), lastNodes)
		assert.GreaterOrEqual(t, tr.SizeBytes(), lastBytes)
		lastNodes, lastBytes = tr.Nodes(), tr.SizeBytes()
	}
	assert.Positive(t, tr.SizeBytes())
}

func TestTrie_DeepKeys(t *testing.T) {
	// A long chain split repeatedly at every depth.
	tr := NewTrie()
	long := make(board.Key, 64)
	for i := range long {
		long[i] = uint16(i % 7)
	}
	tr.Insert(long)

	for cut := 1; cut < len(long); cut++ {
		branched := append(long[:cut:cut], 7) // 7 never appears in the chain
		tr.Insert(branched)
		assert.True(t, tr.ContainsPrefix(branched))
	}
	assert.True(t, tr.ContainsPrefix(long))
	assert.False(t, tr.ContainsPrefix(long[:10]))
}
