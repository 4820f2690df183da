package board

import (
	"strconv"
	"strings"
)

// Key is a canonical board encoding: one column index per placed queen,
// in fill order for partial boards and row order for complete ones.
// Keys are the Blacklist Store's key type.
type Key []uint16

// Clone returns a copy of the key.
func (k Key) Clone() Key {
	return append(Key(nil), k...)
}

// Equal reports element-wise equality.
func (k Key) Equal(other Key) bool {
	return CompareKeys(k, other) == 0
}

// IsPrefixOf reports whether k is a (non-strict) prefix of other.
func (k Key) IsPrefixOf(other Key) bool {
	if len(k) > len(other) {
		return false
	}
	for i, v := range k {
		if other[i] != v {
			return false
		}
	}
	return true
}

// String renders the key as comma-separated columns, e.g. "1,3,0,2".
func (k Key) String() string {
	var sb strings.Builder
	for i, v := range k {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(v)))
	}
	return sb.String()
}

// CompareKeys orders keys lexicographically, shorter prefix first.
func CompareKeys(a, b Key) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// CanonicalKey returns the symmetry-canonical encoding of the current
// position: the lexicographically minimal key across every transform in
// the group valid for the board's placement pattern.
//
// Partial boards use {identity, column mirror}. The mirror commutes with
// appending a row, so canonical keys of a branch stay prefixes of the
// canonical keys of its sub-branches - the property the Blacklist Store's
// prefix-implication queries rely on. Complete boards use the full
// 8-element dihedral group over the row-order column sequence; those keys
// identify solutions up to symmetry and are never inserted as blacklist
// prefixes (a complete board reached by Place is already a solution).
func (b *Board) CanonicalKey() Key {
	if b.IsComplete() {
		return canonicalComplete(b.seq.rowOrder(b), b.width)
	}
	return canonicalPrefix(b.seq, b.width)
}

// Sequence returns the raw fill-order column sequence (no symmetry
// applied). Mostly useful for diagnostics and tests.
func (b *Board) Sequence() Key {
	return b.seq.Clone()
}

// canonicalPrefix picks the smaller of the sequence and its column mirror.
func canonicalPrefix(seq Key, width int) Key {
	mirrored := mirrorKey(seq, width)
	if CompareKeys(mirrored, seq) < 0 {
		return mirrored
	}
	return seq.Clone()
}

// mirrorKey maps every column c to width-1-c.
func mirrorKey(seq Key, width int) Key {
	out := make(Key, len(seq))
	for i, c := range seq {
		out[i] = uint16(width-1) - c
	}
	return out
}

// rowOrder converts the fill-order sequence to row order using the
// board's row assignments. Only valid for complete boards.
func (k Key) rowOrder(b *Board) Key {
	out := make(Key, b.width)
	for row, col := range b.rows {
		out[row] = uint16(col)
	}
	return out
}

// canonicalComplete returns the minimum over the 8 symmetry transforms
// of a complete row-order column sequence.
func canonicalComplete(cols Key, width int) Key {
	best := cols
	for _, t := range [...]func(Key, int) Key{
		rotate90, rotate180, rotate270,
		mirrorColumns, mirrorRows, transpose, antiTranspose,
	} {
		candidate := t(cols, width)
		if CompareKeys(candidate, best) < 0 {
			best = candidate
		}
	}
	return best.Clone()
}

// The complete-board transforms below map a queen at (row, col) to its
// image square. Completeness guarantees one queen per row AND per column,
// so every image is again a valid row-order sequence.

func rotate90(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[col] = uint16(width - 1 - row)
	}
	return out
}

func rotate180(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[width-1-row] = uint16(width-1) - col
	}
	return out
}

func rotate270(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[width-1-int(col)] = uint16(row)
	}
	return out
}

func mirrorColumns(cols Key, width int) Key {
	return mirrorKey(cols, width)
}

func mirrorRows(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[width-1-row] = col
	}
	return out
}

func transpose(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[col] = uint16(row)
	}
	return out
}

func antiTranspose(cols Key, width int) Key {
	out := make(Key, width)
	for row, col := range cols {
		out[width-1-int(col)] = uint16(width - 1 - row)
	}
	return out
}
