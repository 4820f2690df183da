package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================
// Construction and preset validation
// ============================================================

func TestNew_EmptyBoard(t *testing.T) {
	b, err := New(8, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, b.Width())
	assert.Equal(t, 0, b.Placed())
	assert.False(t, b.IsComplete())

	row, ok := b.NextRow()
	require.True(t, ok)
	assert.Equal(t, 0, row)
}

func TestNew_InvalidWidth(t *testing.T) {
	for _, width := range []int{0, -1} {
		_, err := New(width, nil)
		require.Error(t, err)
		assert.True(t, IsInvalidPreset(err), "width %d should be rejected as INVALID_PRESET", width)
	}
}

func TestNew_PresetOutOfRange(t *testing.T) {
	_, err := New(4, []int{16})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))

	_, err = New(4, []int{-1})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))
}

func TestNew_PresetDuplicate(t *testing.T) {
	_, err := New(4, []int{5, 5})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))
}

func TestNew_PresetConflict(t *testing.T) {
	// Same column.
	_, err := New(4, []int{0, 4})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))

	// Same row.
	_, err = New(4, []int{0, 2})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))

	// Same principal diagonal.
	_, err = New(4, []int{0, 5})
	require.Error(t, err)
	assert.True(t, IsInvalidPreset(err))
}

func TestNew_ValidPresets(t *testing.T) {
	// Width 4, queens at (0,1) and (1,3): part of a real solution.
	b, err := New(4, []int{1, 7})
	require.NoError(t, err)

	assert.Equal(t, 2, b.Placed())
	assert.True(t, b.IsPreset(0))
	assert.True(t, b.IsPreset(1))
	assert.False(t, b.IsPreset(2))

	col, ok := b.QueenAt(0)
	require.True(t, ok)
	assert.Equal(t, 1, col)

	row, ok := b.NextRow()
	require.True(t, ok)
	assert.Equal(t, 2, row, "next unfilled row skips preset rows")
}

// ============================================================
// Place / Undo
// ============================================================

func TestBoard_Place_TracksAttacks(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)

	require.NoError(t, b.Place(0, 1))

	assert.True(t, b.IsQueen(b.Index(0, 1)))
	assert.True(t, b.Attacked(b.Index(0, 3), RayHorizontal))
	assert.True(t, b.Attacked(b.Index(2, 1), RayVertical))
	assert.True(t, b.Attacked(b.Index(2, 3), RayPrincipal))
	assert.True(t, b.Attacked(b.Index(1, 0), RayAntidiagonal))
	assert.False(t, b.Attacked(b.Index(2, 0), RayAntidiagonal))
}

func TestBoard_Place_Conflict(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 1))

	err = b.Place(1, 1) // same column
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	err = b.Place(1, 2) // principal diagonal
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	err = b.Place(1, 0) // anti-diagonal
	require.Error(t, err)
	assert.True(t, IsConflict(err))

	require.NoError(t, b.Place(1, 3))
}

func TestBoard_Place_RowAlreadyFilled(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 1))

	err = b.Place(0, 3)
	require.Error(t, err)
	assert.True(t, IsConflict(err))
}

func TestBoard_Undo_RestoresExactState(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)

	before := b.LegalMoves(1)
	require.NoError(t, b.Place(0, 1))
	require.NoError(t, b.Place(1, 3))

	require.NoError(t, b.Undo())
	require.NoError(t, b.Undo())

	assert.Equal(t, 0, b.Placed())
	assert.Equal(t, before, b.LegalMoves(1), "undo must restore attack state exactly")
	for i := 0; i < 16; i++ {
		assert.True(t, b.Cell(i).IsFree(), "cell %d should be free after full unwind", i)
	}
}

func TestBoard_Undo_AtRoot(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)

	err = b.Undo()
	require.Error(t, err)
	assert.True(t, IsNothingToUndo(err))
}

func TestBoard_Undo_NeverRemovesPresets(t *testing.T) {
	b, err := New(4, []int{1}) // preset queen at (0,1)
	require.NoError(t, err)
	require.NoError(t, b.Place(1, 3))

	require.NoError(t, b.Undo())

	err = b.Undo()
	require.Error(t, err)
	assert.True(t, IsNothingToUndo(err), "presets stay when only preset rows remain")
	assert.True(t, b.IsQueen(1), "preset queen survives the unwind")
}

func TestBoard_Undo_OverlappingRays(t *testing.T) {
	// Two queens attack (3,2) along different directions. Undoing one
	// must keep the other's attack in place.
	b, err := New(4, nil)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 2)) // vertical attack on (3,2)
	require.NoError(t, b.Place(1, 0)) // principal attack on (3,2)

	target := b.Index(3, 2)
	assert.Equal(t, 2, b.AttackVectors(target))

	require.NoError(t, b.Undo()) // removes (1,0)
	assert.True(t, b.Attacked(target, RayVertical), "remaining queen still attacks")
	assert.False(t, b.Attacked(target, RayPrincipal))
}

// ============================================================
// Move enumeration
// ============================================================

func TestBoard_LegalMoves_Ascending(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 1))

	moves := b.LegalMoves(1)
	assert.Equal(t, []int{3}, moves)

	// Restartable: identical on every call.
	assert.Equal(t, moves, b.LegalMoves(1))
}

func TestBoard_LegalMoves_EmptyRowFullChoice(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, b.LegalMoves(0))
}

func TestBoard_LegalMoves_FilledRow(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	require.NoError(t, b.Place(0, 1))
	assert.Nil(t, b.LegalMoves(0))
}

func TestBoard_IsComplete(t *testing.T) {
	b, err := New(4, nil)
	require.NoError(t, err)
	for _, step := range []Move{{0, 1}, {1, 3}, {2, 0}, {3, 2}} {
		assert.False(t, b.IsComplete())
		require.NoError(t, b.Place(step.Row, step.Col))
	}
	assert.True(t, b.IsComplete())

	_, ok := b.NextRow()
	assert.False(t, ok)
	assert.Equal(t, []int{1, 3, 0, 2}, b.Columns())
}

func TestMove_Index(t *testing.T) {
	assert.Equal(t, 0, Move{Row: 0, Col: 0}.Index(8))
	assert.Equal(t, 11, Move{Row: 1, Col: 3}.Index(8))
}
